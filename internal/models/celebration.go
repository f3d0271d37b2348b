package models

// Celebration is one independent instance of the game, with its own
// participant set and its own shared remote document. Celebrations are
// read from static configuration at startup and never change afterwards.
type Celebration struct {
	// ID is the registry key for the celebration (e.g. "christmas2025")
	ID string `yaml:"id"`

	// Name is the display name shown to players
	Name string `yaml:"name"`

	// Participants is the fixed identifier set for this celebration,
	// in configured order
	Participants []string `yaml:"participants"`

	// PasswordHash is the hex-encoded SHA-256 of the entry password
	PasswordHash string `yaml:"passwordHash"`

	// ResourceID identifies the shared document on the remote host
	ResourceID string `yaml:"resourceId"`
}

// HasParticipant reports whether codename belongs to this celebration.
func (c *Celebration) HasParticipant(codename string) bool {
	for _, p := range c.Participants {
		if p == codename {
			return true
		}
	}
	return false
}
