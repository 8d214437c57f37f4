package httpserver

import (
	apperrors "github.com/Bhanuvikas1/job-tracker/internal/platform/errors"
	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=6,max=200"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createApplicationRequest struct {
	Company string `json:"company" validate:"required,max=200"`
	Role    string `json:"role" validate:"required,max=200"`
	Status  string `json:"status" validate:"required"`
	Notes   string `json:"notes" validate:"max=2000"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// bindAndValidate decodes the JSON body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	return c.Validate(req)
}
