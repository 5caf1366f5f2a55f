package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/schoolsys/registrar/internal/pkg/apperrors"
	"github.com/schoolsys/registrar/internal/pkg/flash"
	"github.com/schoolsys/registrar/internal/pkg/logger"
)

// HandleError converts a service error into a flash message plus a redirect to
// a safe prior view. Every storage-facing fault ends here; nothing propagates
// to a generic crash handler.
func HandleError(c *gin.Context, err error, redirectTo string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		flash.Set(c, "danger", "Invalid username or password")
	case errors.Is(err, apperrors.ErrDuplicateIdentity):
		flash.Set(c, "danger", "A record with that identifier or email already exists")
	case errors.Is(err, apperrors.ErrPasswordMismatch):
		flash.Set(c, "danger", "New passwords do not match")
	case errors.Is(err, apperrors.ErrStaleSession):
		flash.Set(c, "danger", "Invalid user session. Please log in again.")
		redirectTo = "/login"
	case errors.Is(err, apperrors.ErrNotFound):
		flash.Set(c, "danger", "Record not found")
	case errors.Is(err, apperrors.ErrValidationFailed):
		flash.Set(c, "danger", validationMessage(err))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled request error")
		flash.Set(c, "danger", "Something went wrong. Please try again.")
	}

	c.Redirect(http.StatusFound, redirectTo)
}

// validationMessage extracts the human-readable part of a validation error
func validationMessage(err error) string {
	msg := err.Error()
	if rest, found := strings.CutPrefix(msg, apperrors.ErrValidationFailed.Error()+": "); found {
		return "Validation failed: " + rest
	}
	return "Validation failed. Please check the form and try again."
}
