package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkotenko/timekit-be/internal/models"
)

// SessionServiceProvider defines the interface for session services.
type SessionServiceProvider interface {
	CreateSession(userID string) (string, error)
	ResolveSession(token string) (*models.User, error)
	RevokeSession(token string) error
}

// SessionService issues and resolves opaque session tokens backed by the
// sessions table. Tokens live until explicitly revoked.
type SessionService struct {
	db *sql.DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *sql.DB) *SessionService {
	return &SessionService{db: db}
}

// newSessionToken returns an unguessable opaque token: 244 random bits as
// 64 hex characters.
func newSessionToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// CreateSession allocates a new token bound to the given user and persists
// the binding. Transporting the token back to the client is the caller's job.
func (s *SessionService) CreateSession(userID string) (string, error) {
	token := newSessionToken()
	_, err := s.db.Exec("INSERT INTO sessions(id, user_id) VALUES(?, ?)", token, userID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ResolveSession returns the user a token is bound to, or nil when the token
// is unknown or its user no longer exists. nil is not an error: callers treat
// it as "unauthenticated".
func (s *SessionService) ResolveSession(token string) (*models.User, error) {
	var user models.User
	row := s.db.QueryRow(`
		SELECT u.id, u.username, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = ?`, token)
	err := row.Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// RevokeSession deletes the token binding. Revoking a token that does not
// exist is a no-op.
func (s *SessionService) RevokeSession(token string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", token)
	return err
}

// DeleteSessionsBefore removes all sessions created before the cutoff and
// reports how many were deleted. Used by the optional TTL sweeper.
func (s *SessionService) DeleteSessionsBefore(cutoff time.Time) (int64, error) {
	// created_at is populated by CURRENT_TIMESTAMP; bind the cutoff in the
	// same "YYYY-MM-DD HH:MM:SS" UTC format so the comparison is sound.
	res, err := s.db.Exec("DELETE FROM sessions WHERE created_at < ?", cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
