package document

import (
	"context"
	"fmt"
	"time"

	"github.com/AJV009/oracle11/internal/common/clock"
	"github.com/AJV009/oracle11/internal/models"
	binRepo "github.com/AJV009/oracle11/internal/repositories/bin"
	cacheRepo "github.com/AJV009/oracle11/internal/repositories/cache"
	"github.com/rs/zerolog/log"
)

const defaultFreshnessWindow = 30 * time.Second

// service implements the Service interface
type service struct {
	freshnessWindow time.Duration
	binRepo         binRepo.Repository
	cacheRepo       cacheRepo.Repository
	clock           clock.Clock
}

// New creates a new document service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.BinRepo == nil {
		return nil, ErrNilBinRepo
	}

	if cfg.CacheRepo == nil {
		return nil, ErrNilCacheRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	freshnessWindow := cfg.FreshnessWindow
	if freshnessWindow == 0 {
		freshnessWindow = defaultFreshnessWindow
	}

	return &service{
		freshnessWindow: freshnessWindow,
		binRepo:         cfg.BinRepo,
		cacheRepo:       cfg.CacheRepo,
		clock:           cfg.Clock,
	}, nil
}

// Fetch returns the document for a scope. The cache is consulted first:
// inside the freshness window it answers directly (unless SkipCache),
// and on a remote failure any cached copy, however old, serves as the
// degraded fallback. Only a failure with an empty cache propagates.
func (s *service) Fetch(ctx context.Context, input *FetchInput) (*FetchOutput, error) {
	if input == nil || input.Scope.CelebrationID == "" || input.Scope.ResourceID == "" {
		return nil, fmt.Errorf("input and scope cannot be empty")
	}

	// Look up the cache up front; the entry doubles as the fallback if
	// the remote read fails below
	cached, cacheErr := s.cacheRepo.GetDocument(ctx, &cacheRepo.GetDocumentInput{
		CelebrationID: input.Scope.CelebrationID,
	})

	if !input.SkipCache && cacheErr == nil {
		age := s.clock.Now().Sub(cached.StoredAt)
		if age < s.freshnessWindow {
			return &FetchOutput{
				Document:  cached.Document,
				FromCache: true,
			}, nil
		}
	}

	doc, err := s.binRepo.GetLatest(ctx, &binRepo.GetLatestInput{
		ResourceID: input.Scope.ResourceID,
	})
	if err != nil {
		if cacheErr == nil {
			log.Warn().
				Err(err).
				Str("celebration_id", input.Scope.CelebrationID).
				Msg("remote fetch failed, serving cached document")
			return &FetchOutput{
				Document:  cached.Document,
				FromCache: true,
				Degraded:  true,
			}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrNoCacheAvailable, err)
	}

	doc.Normalize()

	// A cache write failure only costs the next read a remote call
	if err := s.cacheRepo.SetDocument(ctx, &cacheRepo.SetDocumentInput{
		CelebrationID: input.Scope.CelebrationID,
		Document:      doc,
		StoredAt:      s.clock.Now(),
	}); err != nil {
		log.Warn().
			Err(err).
			Str("celebration_id", input.Scope.CelebrationID).
			Msg("failed to update document cache")
	}

	return &FetchOutput{Document: doc}, nil
}

// Put replaces the document wholesale. The cache is updated only after
// the remote write succeeds, so a failed write leaves the cached copy
// stale but valid.
func (s *service) Put(ctx context.Context, input *PutInput) error {
	if input == nil || input.Scope.CelebrationID == "" || input.Scope.ResourceID == "" {
		return fmt.Errorf("input and scope cannot be empty")
	}

	if input.Document == nil {
		return fmt.Errorf("document cannot be nil")
	}

	err := s.binRepo.Update(ctx, &binRepo.UpdateInput{
		ResourceID: input.Scope.ResourceID,
		Document:   input.Document,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	if err := s.cacheRepo.SetDocument(ctx, &cacheRepo.SetDocumentInput{
		CelebrationID: input.Scope.CelebrationID,
		Document:      input.Document,
		StoredAt:      s.clock.Now(),
	}); err != nil {
		log.Warn().
			Err(err).
			Str("celebration_id", input.Scope.CelebrationID).
			Msg("failed to update document cache after write")
	}

	return nil
}

// Reset writes a fresh default document and clears the cache entry for
// the scope
func (s *service) Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error) {
	if input == nil || input.Scope.CelebrationID == "" || input.Scope.ResourceID == "" {
		return nil, fmt.Errorf("input and scope cannot be empty")
	}

	doc := models.NewGameDocument(s.clock.Now())

	err := s.binRepo.Update(ctx, &binRepo.UpdateInput{
		ResourceID: input.Scope.ResourceID,
		Document:   doc,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	if err := s.cacheRepo.DeleteDocument(ctx, &cacheRepo.DeleteDocumentInput{
		CelebrationID: input.Scope.CelebrationID,
	}); err != nil {
		log.Warn().
			Err(err).
			Str("celebration_id", input.Scope.CelebrationID).
			Msg("failed to clear document cache after reset")
	}

	return &ResetOutput{Document: doc}, nil
}
