package websocket

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkotenko/timekit-be/internal/models"
)

// TimerLister is the slice of the timer ledger the broadcaster needs.
type TimerLister interface {
	ListTimers(userID string) ([]models.Timer, error)
}

// Broadcaster owns the periodic live-snapshot task of one connection. Every
// tick re-reads the ledger, so the frames are always consistent with what the
// REST surface would answer at the same instant; there is no cached copy.
type Broadcaster struct {
	client   *Client
	timers   TimerLister
	userID   string
	interval time.Duration
	done     chan struct{}
	stopped  chan struct{}
}

// NewBroadcaster creates a broadcaster for one authenticated connection.
func NewBroadcaster(client *Client, timers TimerLister, userID string, interval time.Duration) *Broadcaster {
	return &Broadcaster{
		client:   client,
		timers:   timers,
		userID:   userID,
		interval: interval,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Run ticks until Stop is called.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	defer close(b.stopped)

	for {
		select {
		case <-b.done:
			return
		case <-ticker.C:
			b.push()
		}
	}
}

// Stop cancels the periodic task and returns once it is certain no further
// frame will be enqueued. Must be called exactly once, before the client is
// unregistered.
func (b *Broadcaster) Stop() {
	close(b.done)
	<-b.stopped
}

func (b *Broadcaster) push() {
	timers, err := b.timers.ListTimers(b.userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", b.userID).Msg("Broadcaster: failed to list timers")
		return
	}

	message, err := NewActiveTimersMessage(timers)
	if err != nil {
		log.Error().Err(err).Msg("Broadcaster: failed to encode frame")
		return
	}

	b.client.Enqueue(message)
}
