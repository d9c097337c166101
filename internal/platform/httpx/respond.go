// Package httpx provides helpers for the service's JSON response envelope.
// Every response carries a boolean `success` discriminator; failures carry a
// sanitized `message` and nothing else.
package httpx

import (
	"encoding/json"
	"net/http"
)

type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Fail sends the failure envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, failure{Success: false, Message: message})
}

// DecodeJSON decodes JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
