package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/tasktrack/tasktrack-api/internal/constants"
	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

// respondServiceError maps a service error onto the API error envelope.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidationError(err):
		apierrors.InvalidQuery(c, err.Error())
	case errors.Is(err, services.ErrInvalidID):
		apierrors.InvalidID(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.EmailTaken(c)
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "")
	case errors.Is(err, services.ErrRoleMismatch):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrMissingCredentials),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		apierrors.Timeout(c)
	default:
		apierrors.InternalError(c, "")
	}
}
