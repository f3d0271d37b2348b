package models

import (
	"time"
)

// Session records one browser's progress through the celebration gate:
// which celebration it unlocked, which codename was picked, and whether
// it holds admin rights. Sessions expire server-side after a TTL.
type Session struct {
	// Token is the opaque session identifier handed to the client
	Token string

	// CelebrationID is the celebration this session is bound to
	CelebrationID string

	// Codename is the participant identifier the user picked; empty
	// until one is chosen
	Codename string

	// Admin is true for sessions created through the admin login
	Admin bool

	// CreatedAt is when the session was issued
	CreatedAt time.Time
}
