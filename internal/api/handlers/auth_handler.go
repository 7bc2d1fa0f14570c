package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dkotenko/timekit-be/internal/auth"
	"github.com/dkotenko/timekit-be/internal/services"
)

// AuthHandler handles signup, login and logout.
type AuthHandler struct {
	users    services.UserServiceProvider
	sessions services.SessionServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, sessions services.SessionServiceProvider) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// CredentialsPayload defines the structure for signup and login requests.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// The same opaque message is used for a taken username and for bad login
// credentials so the API never confirms whether a username exists.
const opaqueCredentialsError = "Invalid username or password"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Signup registers a new user and opens a session for them.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Username == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.CreateUser(payload.Username, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateUser):
			log.Warn().Str("username", payload.Username).Msg("Signup with taken username")
			writeError(w, http.StatusBadRequest, opaqueCredentialsError)
		case errors.Is(err, services.ErrInvalidPassword):
			writeError(w, http.StatusBadRequest, "Username and password are required")
		default:
			log.Error().Err(err).Msg("Failed to create user")
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	token, err := h.sessions.CreateSession(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create session")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"sessionToken": token})
}

// Login verifies credentials and opens a new session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Username == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.AuthenticateUser(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			writeError(w, http.StatusBadRequest, opaqueCredentialsError)
			return
		}
		log.Error().Err(err).Msg("Failed to authenticate user")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := h.sessions.CreateSession(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create session")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"sessionToken": token})
}

// Logout revokes the current session, if any. Always answers 200 with an
// empty object; revoking nothing is not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := auth.TokenFromContext(r.Context()); token != "" {
		if err := h.sessions.RevokeSession(token); err != nil {
			log.Error().Err(err).Msg("Failed to revoke session")
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{})
}
