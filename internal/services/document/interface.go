package document

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/AJV009/oracle11/internal/services/document Service

import "context"

// Service is the single point of read/write access to a celebration's
// shared remote document, with a short-lived local cache for latency
// and degraded availability
type Service interface {
	// Fetch returns the document, serving from cache inside the
	// freshness window unless SkipCache is set, and falling back to any
	// cached copy when the remote host is unreachable
	Fetch(ctx context.Context, input *FetchInput) (*FetchOutput, error)

	// Put replaces the document wholesale and refreshes the cache
	Put(ctx context.Context, input *PutInput) error

	// Reset replaces the document with a fresh default and drops the
	// cache entry for the scope
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)
}
