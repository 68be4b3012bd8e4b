package transport

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in kiosk error bodies.
const (
	CodeUnauthorized    = "unauthorized"
	CodeInvalidRequest  = "invalid_request"
	CodeProjectNotFound = "project_not_found"
	CodeUnavailable     = "unavailable"
	CodeInternal        = "internal"
)

// ErrorResponse is the body of a non-2xx kiosk response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError writes an error response.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}
