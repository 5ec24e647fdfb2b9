package handlers

import "net/http"

// GET /healthz
func Health(storeConfigured bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "store": storeConfigured})
	}
}
