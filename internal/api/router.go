package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"wordduel/internal/api/response"
	"wordduel/internal/middleware"
	"wordduel/internal/services/registry"
	"wordduel/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	RegistryController registry.ControllerInterface
	WSHandler          *ws.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	r.Use(middleware.Logging(cfg.Logger))

	// Open-match listing for clients polling before they connect
	r.HandleFunc("/api/matches", listOpenMatchesHandler(cfg.RegistryController)).Methods(http.MethodGet)

	// All gameplay happens over the WebSocket
	r.Handle("/ws", cfg.WSHandler).Methods(http.MethodGet)

	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)

	return r
}

func listOpenMatchesHandler(reg registry.ControllerInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		open, err := reg.ListOpen(r.Context())
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "failed to list matches")
			return
		}
		response.JSON(w, http.StatusOK, response.OpenMatchListFromModel(open))
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
