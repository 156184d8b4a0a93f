package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"wordduel/internal/dependencies/ids"
)

// Handler upgrades HTTP requests to WebSocket connections and hands them
// to the gateway.
type Handler struct {
	gateway  *Gateway
	ids      ids.Source
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(gateway *Gateway, src ids.Source, logger *slog.Logger) *Handler {
	return &Handler{
		gateway: gateway,
		ids:     src,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for development
				// In production, you should validate the origin
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	connID := h.ids.ConnID()
	client := NewClient(conn, h.gateway, connID, h.logger)
	h.gateway.Register(client)

	h.logger.Info("websocket connected", slog.String("conn_id", string(connID)))

	client.Run()
}
