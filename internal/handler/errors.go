package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/communitas/admin-gateway/internal/domain"
	"github.com/communitas/admin-gateway/internal/service"
	"github.com/communitas/admin-gateway/internal/upstream"
)

// ErrorDetail is the machine-readable part of an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
// Fields and FirstField are present only for validation failures: the
// dashboard renders Fields inline per input and scrolls to FirstField.
type ErrorResponse struct {
	Error      ErrorDetail        `json:"error"`
	Fields     domain.FieldErrors `json:"fields,omitempty"`
	FirstField string             `json:"firstField,omitempty"`
}

// writeJSON writes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps a service error onto the HTTP surface:
//
//	*domain.ValidationError → 422 with the field map
//	domain.ErrNotFound      → 404
//	upstream 404            → 404 (the upstream resource is gone)
//	other upstream failures → 502 with the upstream message
//	anything else           → 500
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:      ErrorDetail{Code: "validation_error", Message: "validation failed"},
			Fields:     vErr.Fields,
			FirstField: vErr.Fields.First(service.FieldOrder),
		})
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: ErrorDetail{Code: "not_found", Message: "not found"},
		})
		return
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			writeJSON(w, http.StatusNotFound, ErrorResponse{
				Error: ErrorDetail{Code: "not_found", Message: apiErr.Message},
			})
			return
		}
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error: ErrorDetail{Code: "upstream_error", Message: apiErr.Message},
		})
		return
	}
	if errors.Is(err, domain.ErrUpstream) {
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error: ErrorDetail{Code: "upstream_error", Message: "upstream request failed"},
		})
		return
	}

	slog.ErrorContext(r.Context(), "internal error", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
	})
}

// requestError rejects a bad request before it reaches the service layer
// (malformed query parameter, unreadable multipart body).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{Code: "bad_request", Message: message},
	})
}
