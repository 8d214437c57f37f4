package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Bhanuvikas1/job-tracker/internal/adapter/metrics"
	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/Bhanuvikas1/job-tracker/internal/platform/correlation"
	apperrors "github.com/Bhanuvikas1/job-tracker/internal/platform/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const ctxKeyUserID = "userID"

// correlationMiddleware reuses a sane incoming X-Request-ID and echoes it back.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := correlation.FromIncoming(c.Request().Header.Get(correlation.Header))
		c.Response().Header().Set(correlation.Header, id)
		c.SetRequest(c.Request().WithContext(correlation.WithID(c.Request().Context(), id)))
		return next(c)
	}
}

// ErrorHandlingMiddleware renders handler errors as structured JSON. m may be nil.
func ErrorHandlingMiddleware(m *metrics.HTTPMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				err = WrapHTTPError(httpErr)
			}

			structuredErr := toStructuredError(err)
			logError(c, structuredErr)
			if m != nil {
				m.RecordError(string(structuredErr.Type))
			}

			if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}

// toStructuredError maps domain and validation errors onto response categories.
func toStructuredError(err error) *apperrors.Error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return apperrors.ValidationError("invalid request").WithField("fields", fields)
	case errors.Is(err, domain.ErrApplicationNotFound):
		return apperrors.NotFoundError("application not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NotFoundError("user not found")
	case errors.Is(err, domain.ErrInvalidApplication),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidAccount):
		return apperrors.ValidationError(err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		return apperrors.ConflictError(domain.ErrEmailTaken.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.UnauthenticatedError(domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		return apperrors.UnauthenticatedError("authentication required")
	}
	return apperrors.AsStructuredError(err)
}

func logError(c echo.Context, err *apperrors.Error) {
	ctx := c.Request().Context()
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	if userID := c.Get(ctxKeyUserID); userID != nil {
		attrs = append(attrs, "user_id", userID)
	}

	switch err.Type {
	case apperrors.TypeValidation:
		slog.InfoContext(ctx, "Validation error", attrs...)
	case apperrors.TypeNotFound:
		slog.InfoContext(ctx, "Not found", attrs...)
	case apperrors.TypeUnauthenticated:
		slog.InfoContext(ctx, "Unauthenticated", attrs...)
	case apperrors.TypeConflict:
		slog.WarnContext(ctx, "Conflict", attrs...)
	case apperrors.TypeUnavailable, apperrors.TypeInternal, apperrors.TypeExternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "Request failed", attrs...)
	default:
		slog.ErrorContext(ctx, "Unknown error type", attrs...)
	}
}

// WrapHTTPError converts errors raised by echo itself (unknown route, bad method, rate limits).
func WrapHTTPError(httpErr *echo.HTTPError) *apperrors.Error {
	message := http.StatusText(httpErr.Code)
	if msg, ok := httpErr.Message.(string); ok && msg != "" {
		message = msg
	}

	var errType apperrors.ErrorType
	switch httpErr.Code {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		errType = apperrors.TypeValidation
	case http.StatusUnauthorized:
		errType = apperrors.TypeUnauthenticated
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		errType = apperrors.TypeNotFound
	case http.StatusConflict:
		errType = apperrors.TypeConflict
	case http.StatusServiceUnavailable:
		errType = apperrors.TypeUnavailable
	case http.StatusBadGateway:
		errType = apperrors.TypeExternal
	default:
		errType = apperrors.TypeInternal
	}

	return &apperrors.Error{
		Type:    errType,
		Message: message,
		Cause:   httpErr.Internal,
		Context: make(map[string]any),
	}
}

// requireAuth resolves the session cookie to a user. Sessions of deleted users are destroyed.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		token := s.sessionToken(c)
		if token == "" {
			return apperrors.UnauthenticatedError("authentication required")
		}

		userID, err := s.sessions.Resolve(ctx, token)
		if errors.Is(err, domain.ErrSessionNotFound) {
			return apperrors.UnauthenticatedError("authentication required")
		}
		if err != nil {
			return apperrors.UnavailableError("session store unavailable", err)
		}

		user, err := s.accounts.GetUserByID(ctx, userID)
		if errors.Is(err, domain.ErrUserNotFound) {
			slog.WarnContext(ctx, "Session references unknown user, invalidating", "user_id", userID)
			if err := s.sessions.Delete(ctx, token); err != nil {
				slog.ErrorContext(ctx, "Failed to delete stale session", "error", err)
			}
			s.clearSessionCookie(c)
			return apperrors.UnauthenticatedError("authentication required")
		}
		if err != nil {
			return err
		}

		c.Set(ctxKeyUserID, user.ID)
		return next(c)
	}
}

// callerID returns the user resolved by requireAuth.
func callerID(c echo.Context) uuid.UUID {
	id, _ := c.Get(ctxKeyUserID).(uuid.UUID)
	return id
}
