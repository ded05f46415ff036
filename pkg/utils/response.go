package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// MaxUploadBytes caps request bodies that may carry media. The client
// stores media inline, so anything larger would not fit its persisted
// log either.
const MaxUploadBytes = 5 << 20

// RespondJSON writes a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError writes a JSON error response.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}
