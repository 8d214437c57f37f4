package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (s *Server) registerApplicationRoutes() {
	g := s.echo.Group("/api/applications", s.requireAuth)
	g.GET("", s.handleListApplications)
	g.POST("", s.handleCreateApplication)
	g.GET("/summary", s.handleSummary)
	g.GET("/:id", s.handleGetApplication)
	g.DELETE("/:id", s.handleDeleteApplication)
	g.PUT("/:id/status", s.handleUpdateStatus)
	g.GET("/:id/history", s.handleListHistory)
}

type applicationResponse struct {
	ID        uuid.UUID     `json:"id"`
	Company   string        `json:"company"`
	Role      string        `json:"role"`
	Status    domain.Status `json:"status"`
	Notes     *string       `json:"notes"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func toApplicationResponse(a *domain.JobApplication) applicationResponse {
	resp := applicationResponse{
		ID:        a.ID,
		Company:   a.Company,
		Role:      a.Role,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Notes != "" {
		notes := a.Notes
		resp.Notes = &notes
	}
	return resp
}

type historyEntryResponse struct {
	ID        int64         `json:"id"`
	Status    domain.Status `json:"status"`
	ChangedAt time.Time     `json:"changedAt"`
}

type summaryResponse struct {
	Total    int                   `json:"total"`
	ByStatus map[domain.Status]int `json:"byStatus"`
}

func (s *Server) handleListApplications(c echo.Context) error {
	apps, err := s.apps.List(c.Request().Context(), callerID(c))
	if err != nil {
		return err
	}

	resp := make([]applicationResponse, len(apps))
	for i := range apps {
		resp[i] = toApplicationResponse(&apps[i])
	}
	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to write applications response: %w", err)
	}
	return nil
}

func (s *Server) handleCreateApplication(c echo.Context) error {
	var req createApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	created, err := s.apps.Create(c.Request().Context(), callerID(c), domain.ApplicationDraft{
		Company: req.Company,
		Role:    req.Role,
		Status:  status,
		Notes:   req.Notes,
	})
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusCreated, toApplicationResponse(created)); err != nil {
		return fmt.Errorf("failed to write application response: %w", err)
	}
	return nil
}

func (s *Server) handleSummary(c echo.Context) error {
	summary, err := s.apps.Summary(c.Request().Context(), callerID(c))
	if err != nil {
		return err
	}
	if err := c.JSON(http.StatusOK, summaryResponse{Total: summary.Total, ByStatus: summary.ByStatus}); err != nil {
		return fmt.Errorf("failed to write summary response: %w", err)
	}
	return nil
}

func (s *Server) handleGetApplication(c echo.Context) error {
	id, err := applicationIDParam(c)
	if err != nil {
		return err
	}

	app, err := s.apps.GetOwned(c.Request().Context(), callerID(c), id)
	if err != nil {
		return err
	}
	if err := c.JSON(http.StatusOK, toApplicationResponse(app)); err != nil {
		return fmt.Errorf("failed to write application response: %w", err)
	}
	return nil
}

func (s *Server) handleUpdateStatus(c echo.Context) error {
	id, err := applicationIDParam(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	updated, err := s.apps.UpdateStatus(c.Request().Context(), callerID(c), id, status)
	if err != nil {
		return err
	}
	if err := c.JSON(http.StatusOK, toApplicationResponse(updated)); err != nil {
		return fmt.Errorf("failed to write application response: %w", err)
	}
	return nil
}

func (s *Server) handleDeleteApplication(c echo.Context) error {
	id, err := applicationIDParam(c)
	if err != nil {
		return err
	}

	if err := s.apps.Delete(c.Request().Context(), callerID(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListHistory(c echo.Context) error {
	id, err := applicationIDParam(c)
	if err != nil {
		return err
	}

	entries, err := s.apps.ListHistory(c.Request().Context(), callerID(c), id)
	if err != nil {
		return err
	}

	resp := make([]historyEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = historyEntryResponse{ID: e.ID, Status: e.Status, ChangedAt: e.ChangedAt}
	}
	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to write history response: %w", err)
	}
	return nil
}

// applicationIDParam treats a malformed id like an unknown one.
func applicationIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domain.ErrApplicationNotFound
	}
	return id, nil
}
