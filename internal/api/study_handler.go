// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/recallhq/recall-api/internal/api/shared"
	"github.com/recallhq/recall-api/internal/config"
	"github.com/recallhq/recall-api/internal/domain"
	"github.com/recallhq/recall-api/internal/domain/scheduler"
	"github.com/recallhq/recall-api/internal/platform/logger"
	"github.com/recallhq/recall-api/internal/service/study"
)

// StudyHandler handles study session HTTP requests
type StudyHandler struct {
	studyService study.Service
	defaultLimit int
	maxLimit     int
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(
	studyService study.Service,
	cfg config.SchedulerConfig,
	logger *slog.Logger,
) *StudyHandler {
	if studyService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("studyService cannot be nil for StudyHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}

	defaultLimit := cfg.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 25
	}
	maxLimit := cfg.MaxLimit
	if maxLimit <= 0 {
		maxLimit = 100
	}

	return &StudyHandler{
		studyService: studyService,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       logger.With(slog.String("component", "study_handler")),
	}
}

// CreateSession handles POST /study/session requests.
// It builds a study session from the JSON request body.
func (h *StudyHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StudySessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode session request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.buildSession(w, r, req)
}

// GetSession handles GET /study/session requests.
// It accepts the same request fields as query parameters: deck_id,
// category_ids (comma separated), virtual_deck and limit.
func (h *StudyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := StudySessionRequest{
		DeckID:      query.Get("deck_id"),
		VirtualDeck: query.Get("virtual_deck"),
	}
	if raw := query.Get("category_ids"); raw != "" {
		req.CategoryIDs = strings.Split(raw, ",")
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Limit must be a number")
			return
		}
		req.Limit = limit
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.buildSession(w, r, req)
}

// buildSession translates the transport request into a service request,
// invokes the study service and writes the response.
func (h *StudyHandler) buildSession(
	w http.ResponseWriter,
	r *http.Request,
	req StudySessionRequest,
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := r.Context().Value(shared.LearnerIDContextKey).(uuid.UUID)
	if !ok || learnerID == uuid.Nil {
		log.Warn("learner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Learner ID not found or invalid")
		return
	}
	tenantID, ok := r.Context().Value(shared.TenantIDContextKey).(uuid.UUID)
	if !ok || tenantID == uuid.Nil {
		log.Warn("tenant ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Tenant ID not found or invalid")
		return
	}

	serviceReq, err := h.toServiceRequest(req, learnerID, tenantID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	result, err := h.studyService.BuildSession(r.Context(), serviceReq)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to build study session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("study session built",
		slog.String("learner_id", learnerID.String()),
		slog.Int("batch_size", len(result.Cards)),
		slog.Int("total_due", result.TotalDue),
		slog.Int("total_new", result.TotalNew))

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(result))
}

// toServiceRequest parses identifiers and applies the limit defaults.
func (h *StudyHandler) toServiceRequest(
	req StudySessionRequest,
	learnerID, tenantID uuid.UUID,
) (study.SessionRequest, error) {
	serviceReq := study.SessionRequest{
		LearnerID: learnerID,
		TenantID:  tenantID,
		Limit:     req.Limit,
	}

	if serviceReq.Limit == 0 {
		serviceReq.Limit = h.defaultLimit
	}
	if serviceReq.Limit < 0 {
		return study.SessionRequest{}, study.ErrInvalidLimit
	}
	if serviceReq.Limit > h.maxLimit {
		serviceReq.Limit = h.maxLimit
	}

	if req.DeckID != "" {
		deckID, err := uuid.Parse(req.DeckID)
		if err != nil {
			return study.SessionRequest{}, domain.NewValidationError(
				"deck_id", "has invalid format", domain.ErrInvalidID)
		}
		serviceReq.DeckID = &deckID
	}

	for _, raw := range req.CategoryIDs {
		categoryID, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return study.SessionRequest{}, domain.NewValidationError(
				"category_ids", "has invalid format", domain.ErrInvalidID)
		}
		serviceReq.CategoryIDs = append(serviceReq.CategoryIDs, categoryID)
	}

	if req.VirtualDeck != "" {
		mode, err := scheduler.ParseVirtualDeck(req.VirtualDeck)
		if err != nil {
			return study.SessionRequest{}, err
		}
		serviceReq.VirtualDeck = mode
	}

	return serviceReq, nil
}

// sessionToResponse converts a service session result to the response shape.
func sessionToResponse(result *study.SessionResult) StudySessionResponse {
	response := StudySessionResponse{
		Cards:    make([]SessionCardResponse, 0, len(result.Cards)),
		TotalDue: result.TotalDue,
		TotalNew: result.TotalNew,
	}
	for _, card := range result.Cards {
		response.Cards = append(response.Cards, SessionCardResponse{
			ID:           card.ID.String(),
			Question:     card.Question,
			Answer:       card.Answer,
			CategoryID:   card.CategoryID.String(),
			CategoryName: card.CategoryName,
			Tags:         card.Tags,
			Difficulty:   card.Difficulty,
		})
	}
	return response
}
