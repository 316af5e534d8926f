package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a uniform machine-readable error body. Error codes
// are deliberately coarse; internal causes go to the logs, not the wire.
func WriteError(w http.ResponseWriter, status int, code string) {
	NoCache(w)
	WriteJSON(w, status, map[string]string{"error": code})
}

// NoCache marks a response as non-cacheable. Required for anything
// carrying tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
