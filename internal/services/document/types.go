package document

import (
	"time"

	"github.com/AJV009/oracle11/internal/common/clock"
	"github.com/AJV009/oracle11/internal/models"
	binRepo "github.com/AJV009/oracle11/internal/repositories/bin"
	cacheRepo "github.com/AJV009/oracle11/internal/repositories/cache"
)

// Config holds configuration for the document service
type Config struct {
	// FreshnessWindow is how long a cached document is served without a
	// remote read; defaults to 30 seconds
	FreshnessWindow time.Duration

	// Repository dependencies
	BinRepo   binRepo.Repository
	CacheRepo cacheRepo.Repository

	// Clock dependency
	Clock clock.Clock
}

// Scope identifies which celebration's document an operation targets:
// the celebration ID keys the cache, the resource ID names the remote
// document
type Scope struct {
	CelebrationID string
	ResourceID    string
}

type FetchInput struct {
	Scope Scope

	// SkipCache forces a remote read regardless of cache freshness
	SkipCache bool
}

type FetchOutput struct {
	Document *models.GameDocument

	// FromCache is true when the document came from the local cache,
	// either inside the freshness window or as a degraded fallback
	FromCache bool

	// Degraded is true when the remote read failed and an arbitrarily
	// stale cached copy was served instead
	Degraded bool
}

type PutInput struct {
	Scope    Scope
	Document *models.GameDocument
}

type ResetInput struct {
	Scope Scope
}

type ResetOutput struct {
	Document *models.GameDocument
}
