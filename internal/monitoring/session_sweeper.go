package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// SessionPruner is the slice of the session manager the sweeper needs.
type SessionPruner interface {
	DeleteSessionsBefore(cutoff time.Time) (int64, error)
}

// SessionSweeper deletes sessions older than a configured TTL on a cron
// schedule. The default deployment runs without it: sessions then live until
// explicit logout, which is the reference behavior of this service.
type SessionSweeper struct {
	sessions SessionPruner
	ttl      time.Duration
	schedule cron.Schedule
	ticker   *time.Ticker
	done     chan bool
}

// NewSessionSweeper creates a sweeper from a standard cron expression.
func NewSessionSweeper(sessions SessionPruner, ttl time.Duration, cronExpr string) (*SessionSweeper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &SessionSweeper{
		sessions: sessions,
		ttl:      ttl,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the sweeping loop. Callers must not start the sweeper with a
// non-positive TTL.
func (s *SessionSweeper) Run() {
	log.Info().Dur("ttl", s.ttl).Msg("Starting background session sweeper...")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	next := s.schedule.Next(time.Now())

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping background session sweeper.")
			return
		case now := <-s.ticker.C:
			if now.After(next) {
				s.sweep(now)
				next = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the sweeper.
func (s *SessionSweeper) Stop() {
	s.done <- true
}

func (s *SessionSweeper) sweep(now time.Time) {
	deleted, err := s.sessions.DeleteSessionsBefore(now.Add(-s.ttl))
	if err != nil {
		log.Error().Err(err).Msg("SessionSweeper: failed to prune sessions")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("SessionSweeper: pruned expired sessions")
	}
}
