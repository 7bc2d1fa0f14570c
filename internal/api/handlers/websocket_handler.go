package handlers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkotenko/timekit-be/internal/services"
	ws "github.com/dkotenko/timekit-be/internal/websocket"
)

// WebSocketHandler upgrades HTTP connections to the realtime timer feed.
type WebSocketHandler struct {
	hub      *ws.Hub
	sessions services.SessionServiceProvider
	timers   services.TimerServiceProvider
	interval time.Duration
}

// NewWebSocketHandler creates a new WebSocketHandler. interval is the period
// of the live-progress broadcast.
func NewWebSocketHandler(hub *ws.Hub, sessions services.SessionServiceProvider, timers services.TimerServiceProvider, interval time.Duration) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		sessions: sessions,
		timers:   timers,
		interval: interval,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the WebSocket connection request.
//
// The session token travels as the connection's sub-protocol, not in the
// body: a request that offers no sub-protocol is rejected before the upgrade,
// and a token that does not resolve closes the socket before any frame is
// sent.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	protocols := websocket.Subprotocols(r)
	if len(protocols) == 0 {
		http.Error(w, "Missing session token", http.StatusBadRequest)
		return
	}
	token := protocols[0]

	// Echo the offered protocol so the handshake negotiates it.
	conn, err := upgrader.Upgrade(w, r, http.Header{"Sec-WebSocket-Protocol": {token}})
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	user, err := h.sessions.ResolveSession(token)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve websocket session")
		conn.Close()
		return
	}
	if user == nil {
		conn.Close()
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client

	// Full snapshot straight away, before any tick or inbound message.
	h.sendSnapshot(client, user.ID)

	broadcaster := ws.NewBroadcaster(client, h.timers, user.ID, h.interval)
	go broadcaster.Run()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		client.WritePump()
	}()
	go func() {
		defer wg.Done()
		client.ReadPump(func(c *ws.Client, message []byte) {
			h.handleIncoming(c, user.ID, message)
		})
	}()

	// Cleanup on disconnect. The broadcaster must be fully stopped before the
	// hub closes the client's Send channel.
	go func() {
		wg.Wait()
		broadcaster.Stop()
		h.hub.Unregister <- client
	}()
}

// handleIncoming processes one client frame. Malformed or unknown frames are
// swallowed; a mutation failure is logged but never reported back on this
// channel.
func (h *WebSocketHandler) handleIncoming(client *ws.Client, userID string, message []byte) {
	msg := ws.DecodeInbound(message)

	switch msg.Action {
	case ws.ActionCreateTimer:
		if _, err := h.timers.CreateTimer(userID, msg.Description); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Websocket: failed to create timer")
			return
		}
		h.sendSnapshot(client, userID)

	case ws.ActionStopTimer:
		if _, err := h.timers.StopTimer(msg.TimerID, userID); err != nil {
			if errors.Is(err, services.ErrTimerNotFound) {
				log.Warn().Str("timer_id", msg.TimerID).Str("user_id", userID).Msg("Websocket: stop for unstoppable timer")
			} else {
				log.Error().Err(err).Str("timer_id", msg.TimerID).Msg("Websocket: failed to stop timer")
				return
			}
		}
		h.sendSnapshot(client, userID)

	default:
		log.Warn().Str("action", msg.Action).Msg("Unknown websocket action received")
	}
}

// sendSnapshot enqueues a full all_timers frame for the client.
func (h *WebSocketHandler) sendSnapshot(client *ws.Client, userID string) {
	timers, err := h.timers.ListTimers(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Websocket: failed to list timers for snapshot")
		return
	}

	message, err := ws.NewAllTimersMessage(timers)
	if err != nil {
		log.Error().Err(err).Msg("Websocket: failed to encode snapshot")
		return
	}

	client.Enqueue(message)
}
