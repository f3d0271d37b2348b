package game

import (
	"time"

	"github.com/AJV009/oracle11/internal/common/clock"
	"github.com/AJV009/oracle11/internal/models"
	documentService "github.com/AJV009/oracle11/internal/services/document"
)

// LeaderboardView names which of the two leaderboard renderings applies
type LeaderboardView string

const (
	// LeaderboardViewPredictions shows aggregated guess tallies, used
	// until the reveal starts
	LeaderboardViewPredictions LeaderboardView = "predictions"

	// LeaderboardViewScores shows per-player scores, used from the
	// first confirmed pairing onwards
	LeaderboardViewScores LeaderboardView = "scores"
)

// Config holds configuration for the game service
type Config struct {
	// MaxRetries is how many times a failed merge-write is retried;
	// defaults to 2
	MaxRetries int

	// BackoffUnit scales the linear retry delay (attempt * unit);
	// defaults to 100ms
	BackoffUnit time.Duration

	// Service dependencies
	DocumentService documentService.Service

	// Clock dependency
	Clock clock.Clock
}

type GetDocumentInput struct {
	Celebration *models.Celebration

	// SkipCache forces a remote read
	SkipCache bool
}

type GetDocumentOutput struct {
	Document *models.GameDocument

	// FromCache is true when the document was served from the local
	// cache rather than the remote store
	FromCache bool

	// Degraded is true when the document came from a stale cache after
	// a remote failure
	Degraded bool
}

type SubmitPredictionInput struct {
	Celebration *models.Celebration

	// Codename is the submitting participant
	Codename string

	// Guesses maps every santa in the celebration to a guessed recipient
	Guesses map[string]string
}

type SubmitPredictionOutput struct {
	Document   *models.GameDocument
	Prediction *models.Prediction
}

type ApplyAdminUpdateInput struct {
	Celebration *models.Celebration

	// Pairings are confirmed santa to recipient entries; they overlay
	// the pairings already in the document
	Pairings map[string]string

	// LeaderboardVisible, when non-nil, overrides the visibility gate
	LeaderboardVisible *bool
}

type ApplyAdminUpdateOutput struct {
	Document *models.GameDocument
}

type GetLeaderboardInput struct {
	Celebration *models.Celebration

	// BypassGate skips the visibility check, for admin callers
	BypassGate bool
}

type GetLeaderboardOutput struct {
	// View says which of the two renderings the caller should show
	View LeaderboardView

	// Tallies is populated for the predictions view
	Tallies []models.GiverTally

	// Scores is populated for the scores view, best first
	Scores []models.PlayerScore

	Reveal models.RevealState

	// Degraded is true when the underlying document came from a stale cache
	Degraded bool
}

type GetStatsInput struct {
	Celebration *models.Celebration
}

type GetStatsOutput struct {
	Submissions int
	Reveal      models.RevealState
}

type ResetGameInput struct {
	Celebration *models.Celebration
}

type ResetGameOutput struct {
	Document *models.GameDocument
}
