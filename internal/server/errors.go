package server

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// writeError writes the JSON error envelope: error code, message, status,
// request id and any extra details.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	payload := map[string]any{
		"error":   code,
		"message": message,
		"status":  status,
	}
	if id := chimw.GetReqID(r.Context()); id != "" {
		payload["request_id"] = id
	}
	for k, v := range details {
		payload[k] = v
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
