package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/chitgames/chit-backend/internal/hub"
	"github.com/chitgames/chit-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, log *zap.Logger, originPatterns []string) http.Handler {
	r := chi.NewRouter()

	r.Get("/ws", ws.Handler(h, log, originPatterns))
	r.Get("/healthz", Healthz)
	r.Get("/presets", ListPresets)
	return r
}
