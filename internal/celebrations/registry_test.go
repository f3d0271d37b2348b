package celebrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRegistry = `
celebrations:
  - id: christmas2025
    name: "Christmas 2025"
    participants: [alice, bob, carol, dave]
    passwordHash: "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
    resourceId: "bin-christmas-2025"
  - id: nye2025
    name: "New Year's Eve 2025"
    participants: [erin, frank]
    passwordHash: "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
    resourceId: "bin-nye-2025"
`

func writeRegistry(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "celebrations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	registry, err := Load(writeRegistry(t, validRegistry))
	require.NoError(t, err)

	celebration, err := registry.Get("christmas2025")
	require.NoError(t, err)
	assert.Equal(t, "Christmas 2025", celebration.Name)
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, celebration.Participants)
	assert.Equal(t, "bin-christmas-2025", celebration.ResourceID)

	assert.True(t, celebration.HasParticipant("alice"))
	assert.False(t, celebration.HasParticipant("mallory"))
}

func TestLoadPreservesOrder(t *testing.T) {
	registry, err := Load(writeRegistry(t, validRegistry))
	require.NoError(t, err)

	listed := registry.List()
	require.Len(t, listed, 2)
	assert.Equal(t, "christmas2025", listed[0].ID)
	assert.Equal(t, "nye2025", listed[1].ID)
}

func TestGetUnknownCelebration(t *testing.T) {
	registry, err := Load(writeRegistry(t, validRegistry))
	require.NoError(t, err)

	_, err = registry.Get("easter2026")
	assert.ErrorIs(t, err, ErrCelebrationNotFound)
}

func TestLoadRejectsInvalidRegistries(t *testing.T) {
	cases := map[string]string{
		"missing participants": `
celebrations:
  - id: broken
    name: "Broken"
    passwordHash: "abc"
    resourceId: "bin-1"
`,
		"missing resource ID": `
celebrations:
  - id: broken
    name: "Broken"
    participants: [alice]
    passwordHash: "abc"
`,
		"duplicate IDs": `
celebrations:
  - id: twice
    name: "One"
    participants: [alice]
    passwordHash: "abc"
    resourceId: "bin-1"
  - id: twice
    name: "Two"
    participants: [bob]
    passwordHash: "abc"
    resourceId: "bin-2"
`,
		"duplicate participant": `
celebrations:
  - id: broken
    name: "Broken"
    participants: [alice, alice]
    passwordHash: "abc"
    resourceId: "bin-1"
`,
	}

	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeRegistry(t, contents))
			assert.Error(t, err)
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	// sha256("password")
	hash := "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"

	assert.True(t, VerifyPassword("password", hash))
	assert.False(t, VerifyPassword("hunter2", hash))
	assert.Equal(t, hash, HashPassword("password"))
}
