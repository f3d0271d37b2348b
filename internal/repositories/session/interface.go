package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/AJV009/oracle11/internal/repositories/session Repository

import (
	"context"

	"github.com/AJV009/oracle11/internal/models"
)

// Repository defines the interface for session persistence
type Repository interface {
	// SaveSession persists a session
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by token
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error
}
