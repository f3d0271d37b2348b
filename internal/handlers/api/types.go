package api

import (
	"github.com/AJV009/oracle11/internal/common/clock"
	"github.com/AJV009/oracle11/internal/common/uuid"
	"github.com/AJV009/oracle11/internal/models"
	sessionRepo "github.com/AJV009/oracle11/internal/repositories/session"
	gameService "github.com/AJV009/oracle11/internal/services/game"
)

// Config holds the configuration for the API handler
type Config struct {
	// Game service
	GameService gameService.Service

	// Session repository
	SessionRepo sessionRepo.Repository

	// Registry of configured celebrations
	Registry CelebrationRegistry

	// AdminPasswordHash is the hex-encoded SHA-256 gating admin logins
	AdminPasswordHash string

	// UUID generator for session tokens
	UUID uuid.UUID

	// Clock dependency
	Clock clock.Clock
}

// CelebrationRegistry is the read-only view of configured celebrations
// the handler needs
type CelebrationRegistry interface {
	Get(id string) (*models.Celebration, error)
	List() []*models.Celebration
}

type celebrationSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ParticipantCount int    `json:"participantCount"`
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token        string   `json:"token"`
	Participants []string `json:"participants"`
}

type codenameRequest struct {
	Codename string `json:"codename"`
}

type predictionRequest struct {
	Guesses map[string]string `json:"guesses"`
}

type pairingsRequest struct {
	Pairings           map[string]string `json:"pairings"`
	LeaderboardVisible *bool             `json:"leaderboardVisible,omitempty"`
}

type leaderboardResponse struct {
	View    gameService.LeaderboardView `json:"view"`
	Tallies []models.GiverTally         `json:"tallies,omitempty"`
	Scores  []models.PlayerScore        `json:"scores,omitempty"`
	Reveal  models.RevealState          `json:"reveal"`
}

type statsResponse struct {
	Submissions int                `json:"submissions"`
	Reveal      models.RevealState `json:"reveal"`
}

type errorResponse struct {
	Error string `json:"error"`
}
