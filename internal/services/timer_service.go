package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dkotenko/timekit-be/internal/models"
)

// TimerServiceProvider defines the interface for timer services.
type TimerServiceProvider interface {
	ListTimers(userID string) ([]models.Timer, error)
	CreateTimer(userID, description string) (models.Timer, error)
	StopTimer(timerID, userID string) (models.Timer, error)
}

// TimerService is the source of truth for timer state. Both the REST
// handlers and the realtime channel read and mutate through it; there is no
// in-memory copy of timer state anywhere else.
type TimerService struct {
	db *sql.DB
}

// NewTimerService creates a new TimerService.
func NewTimerService(db *sql.DB) *TimerService {
	return &TimerService{db: db}
}

// withDerived fills in Progress (active) or Duration (stopped) in
// milliseconds relative to now.
func withDerived(t models.Timer, now time.Time) models.Timer {
	if t.IsActive {
		p := now.Sub(t.Start).Milliseconds()
		t.Progress = &p
	} else if t.End != nil {
		d := t.End.Sub(t.Start).Milliseconds()
		t.Duration = &d
	}
	return t
}

func scanTimer(row interface{ Scan(...any) error }) (models.Timer, error) {
	var t models.Timer
	var startMs int64
	var endMs sql.NullInt64
	if err := row.Scan(&t.ID, &t.UserID, &t.Description, &startMs, &endMs, &t.IsActive); err != nil {
		return models.Timer{}, err
	}
	t.Start = time.UnixMilli(startMs)
	if endMs.Valid {
		end := time.UnixMilli(endMs.Int64)
		t.End = &end
	}
	return t, nil
}

// ListTimers returns every timer owned by the user in insertion order, with
// derived fields computed against a single read-time instant.
func (s *TimerService) ListTimers(userID string) ([]models.Timer, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, description, start_ms, end_ms, is_active
		FROM timers WHERE user_id = ? ORDER BY start_ms, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	timers := make([]models.Timer, 0)
	for rows.Next() {
		t, err := scanTimer(rows)
		if err != nil {
			return nil, err
		}
		timers = append(timers, withDerived(t, now))
	}
	return timers, rows.Err()
}

// CreateTimer starts a new active timer for the user. An empty description is
// allowed on purpose.
func (s *TimerService) CreateTimer(userID, description string) (models.Timer, error) {
	now := time.Now()
	timer := models.Timer{
		ID:          uuid.New().String(),
		UserID:      userID,
		Description: description,
		Start:       time.UnixMilli(now.UnixMilli()),
		IsActive:    true,
	}

	_, err := s.db.Exec(
		"INSERT INTO timers(id, user_id, description, start_ms, is_active) VALUES(?, ?, ?, ?, 1)",
		timer.ID, timer.UserID, timer.Description, now.UnixMilli())
	if err != nil {
		return models.Timer{}, err
	}

	return withDerived(timer, now), nil
}

// StopTimer transitions a timer from active to stopped. The update is a
// single conditional statement on (id, user_id, is_active), so of any number
// of concurrent stop attempts exactly one observes success; the rest get
// ErrTimerNotFound, the same answer as for a missing or foreign timer.
func (s *TimerService) StopTimer(timerID, userID string) (models.Timer, error) {
	now := time.Now()
	res, err := s.db.Exec(
		"UPDATE timers SET end_ms = ?, is_active = 0 WHERE id = ? AND user_id = ? AND is_active = 1",
		now.UnixMilli(), timerID, userID)
	if err != nil {
		return models.Timer{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Timer{}, err
	}
	if affected == 0 {
		return models.Timer{}, ErrTimerNotFound
	}

	row := s.db.QueryRow(`
		SELECT id, user_id, description, start_ms, end_ms, is_active
		FROM timers WHERE id = ? AND user_id = ?`, timerID, userID)
	timer, err := scanTimer(row)
	if err != nil {
		return models.Timer{}, err
	}
	return withDerived(timer, now), nil
}
