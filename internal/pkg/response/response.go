// Package response provides JSON response helpers for API handlers.
package response

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
)

// Response represents the standard API response envelope. Every route answers
// with {success, data} on the happy path or {success, message} on failure, so
// callers can branch on the success flag as well as the HTTP status.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// JSON writes a success envelope with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Response{Success: true, Data: data}); err != nil {
		// Log error but can't do much else at this point
		http.Error(w, `{"success":false,"code":"internal_error","message":"Failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Message writes a success envelope carrying only a human-readable message.
func Message(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Response{Success: true, Message: message}); err != nil {
		http.Error(w, `{"success":false,"code":"internal_error","message":"Failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes an error envelope. The status code and wire shape come from the
// APIError taxonomy; unknown errors collapse to a generic internal error.
func Error(w http.ResponseWriter, err error) {
	apiErr := apierrors.AsAPIError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	json.NewEncoder(w).Encode(Response{
		Success: false,
		Message: apiErr.Message,
		Code:    apiErr.Code,
		Details: apiErr.Details,
	})
}

// OK writes a 200 OK response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
