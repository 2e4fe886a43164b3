/*
Package handler provides the HTTP handlers and routing setup for the user
synchronization server.

This file contains HandleWebSocket, which rate limits and upgrades incoming
HTTP connections to WebSocket and then runs the connection session: register
with the hub, start the outbound pump, and block on the inbound read loop.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"usersync/internal/app/hub"
	"usersync/internal/pkg/errs"
	"usersync/internal/pkg/limiter"
	"usersync/internal/pkg/logx"
	"usersync/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc that processes WebSocket
// connection requests on the synchronization endpoint.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied to the client.
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := hub.NewClient(deps.Hub, deps.Handler, conn)

		go client.WritePump()

		logx.Info("WebSocket connection established", "client_id", client.ID())

		client.ReadPump()
	}
}
