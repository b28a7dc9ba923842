package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aussiebroadwan/miniblog/internal/blog/service"
	"github.com/aussiebroadwan/miniblog/pkg/httpx"
	"github.com/aussiebroadwan/miniblog/pkg/slogx"
)

// ErrorResponse is the uniform error envelope. TraceID carries the
// request id so a client report can be matched to a log line.
type ErrorResponse struct {
	StatusCode int       `json:"status_code"`
	Message    string    `json:"message"`
	TraceID    string    `json:"trace_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`

	// Details is only populated outside production deployments.
	Details []string `json:"details,omitempty"`
}

// errWriter decides how much an error response reveals. In dev mode it
// includes per-field validation details and the underlying error string
// for 500s; in production those stay in the logs.
type errWriter struct {
	dev bool
}

func (e errWriter) write(ctx context.Context, w http.ResponseWriter, status int, message string, details ...string) {
	resp := ErrorResponse{
		StatusCode: status,
		Message:    message,
		TraceID:    slogx.RequestIDFromContext(ctx),
		Timestamp:  time.Now().UTC(),
	}
	if e.dev {
		resp.Details = details
	}
	httpx.WriteJSON(w, status, resp)
}

// writeServiceError maps a service-layer error onto a status code and
// envelope. Anything unrecognized is a 500 with a generic message.
func (e errWriter) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var nf *service.NotFoundError

	switch {
	case errors.As(err, &nf):
		e.write(ctx, w, http.StatusNotFound, nf.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		e.write(ctx, w, http.StatusConflict, "username is already taken")
	case errors.Is(err, service.ErrEmailTaken):
		e.write(ctx, w, http.StatusConflict, "email is already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		e.write(ctx, w, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, service.ErrForbidden):
		e.write(ctx, w, http.StatusForbidden, "you do not own this resource")
	default:
		slogx.FromContext(ctx).Error("request failed", slog.Any("err", err))
		e.write(ctx, w, http.StatusInternalServerError, "internal server error", err.Error())
	}
}

// writeValidationError flattens validator.ValidationErrors into a 400.
func (e errWriter) writeValidationError(ctx context.Context, w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		e.write(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldError(fe))
	}
	e.write(ctx, w, http.StatusBadRequest, "validation failed", details...)
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "email":
		return fe.Field() + " must be a valid email address"
	default:
		return fe.Field() + " is invalid"
	}
}
