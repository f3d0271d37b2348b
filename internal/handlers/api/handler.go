package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AJV009/oracle11/internal/celebrations"
	"github.com/AJV009/oracle11/internal/common/clock"
	"github.com/AJV009/oracle11/internal/common/uuid"
	"github.com/AJV009/oracle11/internal/models"
	sessionRepo "github.com/AJV009/oracle11/internal/repositories/session"
	documentService "github.com/AJV009/oracle11/internal/services/document"
	gameService "github.com/AJV009/oracle11/internal/services/game"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

const sessionTokenHeader = "X-Session-Token"

// degradedHeader flags responses built from a stale cached document
const degradedHeader = "X-Degraded"

// fromCacheHeader flags documents served from the local cache
const fromCacheHeader = "X-From-Cache"

// Handler serves the game's HTTP API
type Handler struct {
	gameService       gameService.Service
	sessionRepo       sessionRepo.Repository
	registry          CelebrationRegistry
	adminPasswordHash string
	uuid              uuid.UUID
	clock             clock.Clock
}

// New creates a new API handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}

	if cfg.Registry == nil {
		return nil, errors.New("celebration registry cannot be nil")
	}

	if cfg.AdminPasswordHash == "" {
		return nil, errors.New("admin password hash cannot be empty")
	}

	if cfg.UUID == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	return &Handler{
		gameService:       cfg.GameService,
		sessionRepo:       cfg.SessionRepo,
		registry:          cfg.Registry,
		adminPasswordHash: cfg.AdminPasswordHash,
		uuid:              cfg.UUID,
		clock:             cfg.Clock,
	}, nil
}

// Routes builds the router for the API
func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.GET("/api/celebrations", h.listCelebrations)
	router.POST("/api/celebrations/:id/login", h.login)
	router.POST("/api/celebrations/:id/admin/login", h.adminLogin)
	router.POST("/api/session/codename", h.chooseCodename)
	router.GET("/api/celebrations/:id/document", h.getDocument)
	router.PUT("/api/celebrations/:id/predictions", h.submitPrediction)
	router.GET("/api/celebrations/:id/leaderboard", h.getLeaderboard)
	router.GET("/api/celebrations/:id/stats", h.getStats)
	router.POST("/api/celebrations/:id/admin/pairings", h.adminPairings)
	router.POST("/api/celebrations/:id/admin/reset", h.adminReset)

	return h.withLogging(router)
}

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := h.clock.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", h.clock.Now().Sub(start)).
			Msg("handled request")
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps service errors onto HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, celebrations.ErrCelebrationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, sessionRepo.ErrSessionNotFound),
		errors.Is(err, errInvalidCredentials),
		errors.Is(err, errSessionRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, errAdminRequired),
		errors.Is(err, errWrongCelebration),
		errors.Is(err, gameService.ErrLeaderboardHidden):
		status = http.StatusForbidden
	case errors.Is(err, gameService.ErrMergeConflict):
		status = http.StatusConflict
	case errors.Is(err, gameService.ErrUnknownParticipant),
		errors.Is(err, gameService.ErrIncompletePrediction),
		errors.Is(err, gameService.ErrInvalidGuess),
		errors.Is(err, gameService.ErrInvalidPairing),
		errors.Is(err, errCodenameRequired),
		errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, documentService.ErrFetchFailed),
		errors.Is(err, documentService.ErrNoCacheAvailable):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, into any) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return errBadRequest
	}
	return nil
}

func (h *Handler) listCelebrations(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	listed := h.registry.List()

	summaries := make([]celebrationSummary, 0, len(listed))
	for _, celebration := range listed {
		summaries = append(summaries, celebrationSummary{
			ID:               celebration.ID,
			Name:             celebration.Name,
			ParticipantCount: len(celebration.Participants),
		})
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	celebration, err := h.registry.Get(params.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if !celebrations.VerifyPassword(req.Password, celebration.PasswordHash) {
		writeError(w, errInvalidCredentials)
		return
	}

	h.issueSession(w, r, celebration, false)
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	celebration, err := h.registry.Get(params.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if !celebrations.VerifyPassword(req.Password, h.adminPasswordHash) {
		writeError(w, errInvalidCredentials)
		return
	}

	h.issueSession(w, r, celebration, true)
}

func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, celebration *models.Celebration, admin bool) {
	session := &models.Session{
		Token:         h.uuid.NewUUID(),
		CelebrationID: celebration.ID,
		Admin:         admin,
		CreatedAt:     h.clock.Now(),
	}

	if err := h.sessionRepo.SaveSession(r.Context(), &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		writeError(w, err)
		return
	}

	log.Info().
		Str("celebration_id", celebration.ID).
		Bool("admin", admin).
		Msg("session issued")

	writeJSON(w, http.StatusOK, loginResponse{
		Token:        session.Token,
		Participants: celebration.Participants,
	})
}

// authorize resolves the request's session and, when celebrationID is
// non-empty, checks the session belongs to that celebration
func (h *Handler) authorize(r *http.Request, celebrationID string, requireAdmin bool) (*models.Session, *models.Celebration, error) {
	token := r.Header.Get(sessionTokenHeader)
	if token == "" {
		return nil, nil, errSessionRequired
	}

	session, err := h.sessionRepo.GetSession(r.Context(), &sessionRepo.GetSessionInput{
		Token: token,
	})
	if err != nil {
		return nil, nil, err
	}

	if celebrationID != "" && session.CelebrationID != celebrationID {
		return nil, nil, errWrongCelebration
	}

	if requireAdmin && !session.Admin {
		return nil, nil, errAdminRequired
	}

	celebration, err := h.registry.Get(session.CelebrationID)
	if err != nil {
		return nil, nil, err
	}

	return session, celebration, nil
}

func (h *Handler) chooseCodename(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, celebration, err := h.authorize(r, "", false)
	if err != nil {
		writeError(w, err)
		return
	}

	var req codenameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if !celebration.HasParticipant(req.Codename) {
		writeError(w, gameService.ErrUnknownParticipant)
		return
	}

	session.Codename = req.Codename
	if err := h.sessionRepo.SaveSession(r.Context(), &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	_, celebration, err := h.authorize(r, params.ByName("id"), false)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.gameService.GetDocument(r.Context(), &gameService.GetDocumentInput{
		Celebration: celebration,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if out.FromCache {
		w.Header().Set(fromCacheHeader, "true")
	}
	if out.Degraded {
		w.Header().Set(degradedHeader, "true")
	}
	writeJSON(w, http.StatusOK, out.Document)
}

func (h *Handler) submitPrediction(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	session, celebration, err := h.authorize(r, params.ByName("id"), false)
	if err != nil {
		writeError(w, err)
		return
	}

	if session.Codename == "" {
		writeError(w, errCodenameRequired)
		return
	}

	var req predictionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.gameService.SubmitPrediction(r.Context(), &gameService.SubmitPredictionInput{
		Celebration: celebration,
		Codename:    session.Codename,
		Guesses:     req.Guesses,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Document)
}

func (h *Handler) getLeaderboard(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	session, celebration, err := h.authorize(r, params.ByName("id"), false)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.gameService.GetLeaderboard(r.Context(), &gameService.GetLeaderboardInput{
		Celebration: celebration,
		BypassGate:  session.Admin,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if out.Degraded {
		w.Header().Set(degradedHeader, "true")
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{
		View:    out.View,
		Tallies: out.Tallies,
		Scores:  out.Scores,
		Reveal:  out.Reveal,
	})
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	_, celebration, err := h.authorize(r, params.ByName("id"), true)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.gameService.GetStats(r.Context(), &gameService.GetStatsInput{
		Celebration: celebration,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Submissions: out.Submissions,
		Reveal:      out.Reveal,
	})
}

func (h *Handler) adminPairings(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	_, celebration, err := h.authorize(r, params.ByName("id"), true)
	if err != nil {
		writeError(w, err)
		return
	}

	var req pairingsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.gameService.ApplyAdminUpdate(r.Context(), &gameService.ApplyAdminUpdateInput{
		Celebration:        celebration,
		Pairings:           req.Pairings,
		LeaderboardVisible: req.LeaderboardVisible,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Document)
}

func (h *Handler) adminReset(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	_, celebration, err := h.authorize(r, params.ByName("id"), true)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.gameService.ResetGame(r.Context(), &gameService.ResetGameInput{
		Celebration: celebration,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Document)
}
