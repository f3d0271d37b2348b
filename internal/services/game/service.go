package game

import (
	"context"
	"time"

	"github.com/AJV009/oracle11/internal/common/clock"
	"github.com/AJV009/oracle11/internal/models"
	"github.com/AJV009/oracle11/internal/scoring"
	documentService "github.com/AJV009/oracle11/internal/services/document"
	"github.com/rs/zerolog/log"
)

const (
	defaultMaxRetries  = 2
	defaultBackoffUnit = 100 * time.Millisecond
)

// service implements the Service interface
type service struct {
	maxRetries  int
	backoffUnit time.Duration
	documents   documentService.Service
	clock       clock.Clock
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.DocumentService == nil {
		return nil, ErrNilDocumentService
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}

	backoffUnit := cfg.BackoffUnit
	if backoffUnit == 0 {
		backoffUnit = defaultBackoffUnit
	}

	return &service{
		maxRetries:  maxRetries,
		backoffUnit: backoffUnit,
		documents:   cfg.DocumentService,
		clock:       cfg.Clock,
	}, nil
}

func scopeFor(celebration *models.Celebration) documentService.Scope {
	return documentService.Scope{
		CelebrationID: celebration.ID,
		ResourceID:    celebration.ResourceID,
	}
}

// GetDocument returns the current game document for a celebration
func (s *service) GetDocument(ctx context.Context, input *GetDocumentInput) (*GetDocumentOutput, error) {
	if input == nil || input.Celebration == nil {
		return nil, ErrNilCelebration
	}

	out, err := s.documents.Fetch(ctx, &documentService.FetchInput{
		Scope:     scopeFor(input.Celebration),
		SkipCache: input.SkipCache,
	})
	if err != nil {
		return nil, err
	}

	return &GetDocumentOutput{
		Document:  out.Document,
		FromCache: out.FromCache,
		Degraded:  out.Degraded,
	}, nil
}

// SubmitPrediction merges one participant's prediction into the shared
// document. The document has no field-level patch, so two participants
// submitting at once can each base their write on the same version and
// the later full-document put silently drops the earlier entry. The
// loop catches that: write, re-read, and check that our timestamp
// survived; when it did not, back off and replay against the fresh
// document.
func (s *service) SubmitPrediction(ctx context.Context, input *SubmitPredictionInput) (*SubmitPredictionOutput, error) {
	if input == nil || input.Celebration == nil {
		return nil, ErrNilCelebration
	}

	if err := s.validatePrediction(input); err != nil {
		return nil, err
	}

	prediction := &models.Prediction{
		Timestamp: s.clock.Now().UTC(),
		Guesses:   input.Guesses,
	}
	scope := scopeFor(input.Celebration)

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			s.clock.Sleep(time.Duration(attempt) * s.backoffUnit)
		}

		// Always merge against the freshest remote state
		fetched, err := s.documents.Fetch(ctx, &documentService.FetchInput{
			Scope:     scope,
			SkipCache: true,
		})
		if err != nil {
			lastErr = err
			continue
		}

		doc := fetched.Document
		doc.Predictions[input.Codename] = prediction
		doc.LastUpdated = s.clock.Now().UTC()

		if err := s.documents.Put(ctx, &documentService.PutInput{
			Scope:    scope,
			Document: doc,
		}); err != nil {
			lastErr = err
			continue
		}

		verified, err := s.documents.Fetch(ctx, &documentService.FetchInput{
			Scope:     scope,
			SkipCache: true,
		})
		if err != nil {
			lastErr = err
			continue
		}

		saved, ok := verified.Document.Predictions[input.Codename]
		if ok && saved.Timestamp.Equal(prediction.Timestamp) {
			return &SubmitPredictionOutput{
				Document:   doc,
				Prediction: prediction,
			}, nil
		}

		log.Info().
			Str("celebration_id", input.Celebration.ID).
			Str("codename", input.Codename).
			Int("attempt", attempt+1).
			Msg("prediction overwritten by a concurrent writer, retrying")
		lastErr = ErrMergeConflict
	}

	return nil, lastErr
}

func (s *service) validatePrediction(input *SubmitPredictionInput) error {
	celebration := input.Celebration

	if !celebration.HasParticipant(input.Codename) {
		return ErrUnknownParticipant
	}

	for _, santa := range celebration.Participants {
		if input.Guesses[santa] == "" {
			return ErrIncompletePrediction
		}
	}

	for santa, recipient := range input.Guesses {
		if !celebration.HasParticipant(santa) || !celebration.HasParticipant(recipient) {
			return ErrInvalidGuess
		}
	}

	return nil
}

// ApplyAdminUpdate merges confirmed pairings and visibility changes
// into the shared document. Unlike predictions, the write is not
// re-verified: admin edits come from one operator at a time and
// last-writer-wins is accepted for them. Transient transport failures
// still retry.
func (s *service) ApplyAdminUpdate(ctx context.Context, input *ApplyAdminUpdateInput) (*ApplyAdminUpdateOutput, error) {
	if input == nil || input.Celebration == nil {
		return nil, ErrNilCelebration
	}

	celebration := input.Celebration
	for santa, recipient := range input.Pairings {
		if !celebration.HasParticipant(santa) || !celebration.HasParticipant(recipient) {
			return nil, ErrInvalidPairing
		}
	}

	scope := scopeFor(celebration)

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			s.clock.Sleep(time.Duration(attempt) * s.backoffUnit)
		}

		fetched, err := s.documents.Fetch(ctx, &documentService.FetchInput{
			Scope:     scope,
			SkipCache: true,
		})
		if err != nil {
			lastErr = err
			continue
		}

		doc := fetched.Document

		// New pairings overlay whatever is already confirmed
		for santa, recipient := range input.Pairings {
			doc.ActualPairings[santa] = recipient
		}

		if input.LeaderboardVisible != nil {
			doc.LeaderboardVisible = input.LeaderboardVisible
		}

		doc.WinnersRevealed = scoring.CalculateRevealState(doc, celebration.Participants).Complete
		doc.LastUpdated = s.clock.Now().UTC()

		if err := s.documents.Put(ctx, &documentService.PutInput{
			Scope:    scope,
			Document: doc,
		}); err != nil {
			lastErr = err
			continue
		}

		return &ApplyAdminUpdateOutput{Document: doc}, nil
	}

	return nil, lastErr
}

// GetLeaderboard returns the gate-checked leaderboard view: aggregated
// guesses before the reveal starts, scores from the first confirmed
// pairing onwards
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil || input.Celebration == nil {
		return nil, ErrNilCelebration
	}

	fetched, err := s.documents.Fetch(ctx, &documentService.FetchInput{
		Scope: scopeFor(input.Celebration),
	})
	if err != nil {
		return nil, err
	}

	doc := fetched.Document
	if !input.BypassGate && !scoring.LeaderboardAccessible(doc) {
		return nil, ErrLeaderboardHidden
	}

	reveal := scoring.CalculateRevealState(doc, input.Celebration.Participants)

	out := &GetLeaderboardOutput{
		Reveal:   reveal,
		Degraded: fetched.Degraded,
	}

	if reveal.Started {
		out.View = LeaderboardViewScores
		out.Scores = scoring.CalculateScores(doc, input.Celebration.Participants)
	} else {
		out.View = LeaderboardViewPredictions
		out.Tallies = scoring.AggregateGuesses(doc, input.Celebration.Participants)
	}

	return out, nil
}

// GetStats returns reveal progress for the admin view
func (s *service) GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error) {
	if input == nil || input.Celebration == nil {
		return nil, ErrNilCelebration
	}

	fetched, err := s.documents.Fetch(ctx, &documentService.FetchInput{
		Scope: scopeFor(input.Celebration),
	})
	if err != nil {
		return nil, err
	}

	return &GetStatsOutput{
		Submissions: fetched.Document.SubmissionCount(),
		Reveal:      scoring.CalculateRevealState(fetched.Document, input.Celebration.Participants),
	}, nil
}

// ResetGame replaces the document with a fresh default
func (s *service) ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error) {
	if input == nil || input.Celebration == nil {
		return nil, ErrNilCelebration
	}

	out, err := s.documents.Reset(ctx, &documentService.ResetInput{
		Scope: scopeFor(input.Celebration),
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("celebration_id", input.Celebration.ID).
		Msg("game document reset to default")

	return &ResetGameOutput{Document: out.Document}, nil
}
