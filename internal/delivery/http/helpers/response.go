package helpers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the envelope for every failed API response. Reason is only
// set on conflicts (409) and carries a machine-readable cause the client can
// branch on.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes payload as the response body.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteJSONError writes a failure envelope with the given message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Success: false, Error: message})
}

// WriteJSONConflict writes a 409 failure envelope with a machine-readable reason.
func WriteJSONConflict(w http.ResponseWriter, reason, message string) {
	WriteJSON(w, http.StatusConflict, ErrorResponse{Success: false, Error: message, Reason: reason})
}
