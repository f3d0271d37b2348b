package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/AJV009/oracle11/internal/services/game Service

import "context"

// Service defines the interface for game operations
type Service interface {
	// GetDocument returns the current game document for a celebration
	GetDocument(ctx context.Context, input *GetDocumentInput) (*GetDocumentOutput, error)

	// SubmitPrediction merges one participant's prediction into the
	// shared document, verifying after the write that it survived any
	// concurrent writer and retrying when it did not
	SubmitPrediction(ctx context.Context, input *SubmitPredictionInput) (*SubmitPredictionOutput, error)

	// ApplyAdminUpdate merges confirmed pairings and visibility changes
	// into the shared document
	ApplyAdminUpdate(ctx context.Context, input *ApplyAdminUpdateInput) (*ApplyAdminUpdateOutput, error)

	// GetLeaderboard returns the gate-checked leaderboard view
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// GetStats returns reveal progress for the admin view
	GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error)

	// ResetGame replaces the document with a fresh default
	ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error)
}
