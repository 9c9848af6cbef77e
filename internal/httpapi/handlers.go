package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/chitgames/chit-backend/internal/preset"
)

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ListPresets serves the built-in role catalogs so clients can prefill the
// chit list before the host submits it over the socket.
func ListPresets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(preset.All())
}
