/*
Package handler provides the HTTP handlers and routing setup for the user
synchronization server.

This file defines the main Router, applying middleware like logging, CORS,
and IP-based rate limiting before delegating requests to the WebSocket
endpoint, the avatar presign API, and the static asset file server.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"usersync/internal/pkg/limiter"
	"usersync/internal/pkg/logx"
	"usersync/internal/pkg/resp"
)

const (
	// ConnectRate limits how often one IP may open new WebSocket connections.
	ConnectRate  = 1.0
	ConnectBurst = 5

	// PresignRate limits avatar presign requests per IP.
	PresignRate  = 0.5
	PresignBurst = 3
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global
// and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)
	presignLimiter := limiter.NewIPRateLimiter(rate.Limit(PresignRate), PresignBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"status":  "ok",
			"service": "User Sync Server",
			"clients": deps.Hub.ClientCount(),
		}
		resp.RespondSuccess(w, r, data)
	})

	if deps.Storage != nil {
		r.Route("/api/avatar", func(avatar chi.Router) {
			avatar.Use(presignLimiter.Middleware)
			avatar.Post("/presign-upload", HandlePresignAvatarUpload(deps))
			avatar.Get("/presign-download", HandlePresignAvatarDownload(deps))
		})
	}

	// synchronization endpoint; path matches the original frontend
	r.Get("/user", HandleWebSocket(wsUpgrader, connectLimiter, deps))

	// everything else is served from the static asset directory
	fileServer := http.FileServer(http.Dir(deps.Config.StaticDir))
	r.Handle("/*", fileServer)

	return r
}
