// Package celebrations loads the static celebration registry: which
// games exist, who plays in each, the entry password hash, and which
// remote document each one lives in. The registry is read once at
// startup and is immutable afterwards.
package celebrations

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/AJV009/oracle11/internal/models"
	"gopkg.in/yaml.v3"
)

// ErrCelebrationNotFound is returned when a celebration ID is unknown
var ErrCelebrationNotFound = errors.New("celebration not found")

// registryFile is the on-disk shape of the registry
type registryFile struct {
	Celebrations []*models.Celebration `yaml:"celebrations"`
}

// Registry holds every configured celebration, keyed by ID, preserving
// the configured order for listing
type Registry struct {
	byID  map[string]*models.Celebration
	order []string
}

// Load reads and validates the registry from a YAML file
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read celebrations file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse celebrations file: %w", err)
	}

	registry := &Registry{
		byID: make(map[string]*models.Celebration, len(file.Celebrations)),
	}

	for _, celebration := range file.Celebrations {
		if celebration.ID == "" {
			return nil, errors.New("celebration ID cannot be empty")
		}
		if len(celebration.Participants) == 0 {
			return nil, fmt.Errorf("celebration %s has no participants", celebration.ID)
		}
		if celebration.PasswordHash == "" {
			return nil, fmt.Errorf("celebration %s has no password hash", celebration.ID)
		}
		if celebration.ResourceID == "" {
			return nil, fmt.Errorf("celebration %s has no resource ID", celebration.ID)
		}
		if _, exists := registry.byID[celebration.ID]; exists {
			return nil, fmt.Errorf("duplicate celebration ID %s", celebration.ID)
		}

		seen := make(map[string]struct{}, len(celebration.Participants))
		for _, participant := range celebration.Participants {
			if participant == "" {
				return nil, fmt.Errorf("celebration %s has an empty participant", celebration.ID)
			}
			if _, dup := seen[participant]; dup {
				return nil, fmt.Errorf("celebration %s lists participant %s twice", celebration.ID, participant)
			}
			seen[participant] = struct{}{}
		}

		registry.byID[celebration.ID] = celebration
		registry.order = append(registry.order, celebration.ID)
	}

	return registry, nil
}

// Get returns a celebration by ID
func (r *Registry) Get(id string) (*models.Celebration, error) {
	celebration, ok := r.byID[id]
	if !ok {
		return nil, ErrCelebrationNotFound
	}
	return celebration, nil
}

// List returns all celebrations in configured order
func (r *Registry) List() []*models.Celebration {
	celebrations := make([]*models.Celebration, 0, len(r.order))
	for _, id := range r.order {
		celebrations = append(celebrations, r.byID[id])
	}
	return celebrations
}

// HashPassword returns the hex-encoded SHA-256 of a password, the
// format password hashes are configured in
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword checks a plaintext password against a configured hash
func VerifyPassword(password, passwordHash string) bool {
	return HashPassword(password) == passwordHash
}
