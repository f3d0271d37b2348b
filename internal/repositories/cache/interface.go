package cache

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/AJV009/oracle11/internal/repositories/cache Repository

import (
	"context"
)

// Repository defines the interface for the local document cache.
// Entries are scoped per celebration and never expire on their own;
// staleness is the caller's decision, because an arbitrarily old entry
// still serves the degraded-mode fallback.
type Repository interface {
	// GetDocument retrieves the cached document for a celebration
	GetDocument(ctx context.Context, input *GetDocumentInput) (*GetDocumentOutput, error)

	// SetDocument stores a document for a celebration
	SetDocument(ctx context.Context, input *SetDocumentInput) error

	// DeleteDocument drops the cache entry for a celebration
	DeleteDocument(ctx context.Context, input *DeleteDocumentInput) error
}
