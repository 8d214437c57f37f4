package httpserver

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Bhanuvikas1/job-tracker/internal/app"
	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	apperrors "github.com/Bhanuvikas1/job-tracker/internal/platform/errors"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (s *Server) registerAuthRoutes(rateLimiter echo.MiddlewareFunc) {
	g := s.echo.Group("/api/auth")
	g.POST("/register", s.handleRegister, rateLimiter)
	g.POST("/login", s.handleLogin, rateLimiter)
	g.POST("/logout", s.handleLogout)
	g.GET("/me", s.handleMe, s.requireAuth)
}

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := s.accounts.Register(c.Request().Context(), app.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	if err := s.startSession(c, user.ID); err != nil {
		return err
	}

	if err := c.JSON(http.StatusCreated, toUserResponse(user)); err != nil {
		return fmt.Errorf("failed to write register response: %w", err)
	}
	return nil
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := s.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	if err := s.startSession(c, user.ID); err != nil {
		return err
	}

	slog.InfoContext(c.Request().Context(), "User logged in", "user_id", user.ID)
	if err := c.JSON(http.StatusOK, toUserResponse(user)); err != nil {
		return fmt.Errorf("failed to write login response: %w", err)
	}
	return nil
}

// handleLogout always succeeds; an unknown or missing session is already logged out.
func (s *Server) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()
	if token := s.sessionToken(c); token != "" {
		if err := s.sessions.Delete(ctx, token); err != nil {
			return apperrors.UnavailableError("session store unavailable", err)
		}
	}
	s.clearSessionCookie(c)

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleMe(c echo.Context) error {
	user, err := s.accounts.GetUserByID(c.Request().Context(), callerID(c))
	if err != nil {
		return err
	}
	if err := c.JSON(http.StatusOK, toUserResponse(user)); err != nil {
		return fmt.Errorf("failed to write user response: %w", err)
	}
	return nil
}

// startSession replaces any previous session with a fresh token, so a token
// planted before login is worthless afterwards.
func (s *Server) startSession(c echo.Context, userID uuid.UUID) error {
	ctx := c.Request().Context()

	if old := s.sessionToken(c); old != "" {
		if err := s.sessions.Delete(ctx, old); err != nil {
			slog.WarnContext(ctx, "Failed to delete previous session", "error", err)
		}
	}

	token, err := s.sessions.Create(ctx, userID, s.config.SessionMaxAge)
	if err != nil {
		return apperrors.UnavailableError("session store unavailable", err)
	}

	session, err := s.sessionStore.New(c.Request(), sessionName)
	if err != nil {
		slog.DebugContext(ctx, "Discarding undecodable session cookie", "error", err)
	}
	session.Values[sessionKeyToken] = token
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("failed to save session", err)
	}
	return nil
}

// sessionToken returns the token from the session cookie, or "" when there is none.
func (s *Server) sessionToken(c echo.Context) string {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		return ""
	}
	token, _ := session.Values[sessionKeyToken].(string)
	return token
}

func (s *Server) clearSessionCookie(c echo.Context) {
	session, _ := s.sessionStore.New(c.Request(), sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.ErrorContext(c.Request().Context(), "Failed to clear session cookie", "error", err)
	}
}
