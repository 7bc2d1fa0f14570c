package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/dkotenko/timekit-be/internal/auth"
	"github.com/dkotenko/timekit-be/internal/services"
)

// TimerHandler handles the REST surface of the timer ledger.
type TimerHandler struct {
	timers services.TimerServiceProvider
}

// NewTimerHandler creates a new TimerHandler.
func NewTimerHandler(timers services.TimerServiceProvider) *TimerHandler {
	return &TimerHandler{timers: timers}
}

// CreateTimerPayload defines the structure for timer creation requests.
type CreateTimerPayload struct {
	Description string `json:"description"`
}

// List returns all of the caller's timers with derived fields.
func (h *TimerHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	timers, err := h.timers.ListTimers(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list timers")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, timers)
}

// Create starts a new timer for the caller. The description may be empty.
func (h *TimerHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var payload CreateTimerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	timer, err := h.timers.CreateTimer(user.ID, payload.Description)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create timer")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, timer)
}

// Stop transitions one of the caller's active timers to stopped. A timer that
// is missing, foreign or already stopped all answer 404.
func (h *TimerHandler) Stop(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	timerID := chi.URLParam(r, "id")
	timer, err := h.timers.StopTimer(timerID, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrTimerNotFound) {
			writeError(w, http.StatusNotFound, "Timer not found")
			return
		}
		log.Error().Err(err).Str("timer_id", timerID).Str("user_id", user.ID).Msg("Failed to stop timer")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, timer)
}
