package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/leiscope/domain-resolver/internal/domain"
	"github.com/leiscope/domain-resolver/pkg/ctxutil"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps domain errors to HTTP status codes. Unrecognized
// errors are logged and hidden behind a generic 500.
func writeError(ctx context.Context, w http.ResponseWriter, log *slog.Logger, err error) {
	detail := errorDetail{RequestID: ctxutil.RequestIDFromCtx(ctx)}

	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		detail.Code = "VALIDATION"
		detail.Message = vErr.Errors[0].Message
		detail.Field = vErr.Errors[0].Field
		writeJSON(w, http.StatusBadRequest, errorBody{Error: detail})
	case errors.Is(err, domain.ErrValidation):
		detail.Code = "VALIDATION"
		detail.Message = err.Error()
		writeJSON(w, http.StatusBadRequest, errorBody{Error: detail})
	case errors.Is(err, domain.ErrNotFound):
		detail.Code = "NOT_FOUND"
		detail.Message = "resource not found"
		writeJSON(w, http.StatusNotFound, errorBody{Error: detail})
	case errors.Is(err, domain.ErrAlreadyRunning):
		detail.Code = "ALREADY_RUNNING"
		detail.Message = "batch is already being processed"
		writeJSON(w, http.StatusConflict, errorBody{Error: detail})
	case errors.Is(err, domain.ErrAlreadyExists):
		detail.Code = "ALREADY_EXISTS"
		detail.Message = "resource already exists"
		writeJSON(w, http.StatusConflict, errorBody{Error: detail})
	default:
		log.ErrorContext(ctx, "request failed",
			slog.String("error", err.Error()),
			slog.String("request_id", detail.RequestID))
		detail.Code = "INTERNAL"
		detail.Message = "internal server error"
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: detail})
	}
}
