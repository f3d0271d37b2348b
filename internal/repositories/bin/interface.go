package bin

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/AJV009/oracle11/internal/repositories/bin Repository

import (
	"context"

	"github.com/AJV009/oracle11/internal/models"
)

// Repository defines the interface for the remote document host
type Repository interface {
	// GetLatest retrieves the latest version of a shared document
	GetLatest(ctx context.Context, input *GetLatestInput) (*models.GameDocument, error)

	// Update replaces a shared document wholesale
	Update(ctx context.Context, input *UpdateInput) error
}
