package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dkotenko/timekit-be/internal/api/handlers"
	"github.com/dkotenko/timekit-be/internal/auth"
	"github.com/dkotenko/timekit-be/internal/services"
	"github.com/dkotenko/timekit-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, userService services.UserServiceProvider, sessionService services.SessionServiceProvider, timerService services.TimerServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Every route sees the session middleware; it only rejects requests that
	// present a token which does not resolve.
	r.Use(auth.SessionMiddleware(sessionService))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, sessionService)
	timerHandler := handlers.NewTimerHandler(timerService)
	wsHandler := handlers.NewWebSocketHandler(hub, sessionService, timerService, time.Second)

	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	// WebSocket connection endpoint
	r.Get("/ws", wsHandler.Serve)

	r.Route("/api/timers", func(r chi.Router) {
		r.Get("/", timerHandler.List)
		r.Post("/", timerHandler.Create)
		r.Post("/{id}/stop", timerHandler.Stop)
	})

	return r
}
