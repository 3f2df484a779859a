package handlers

import (
	"errors"

	apierrors "github.com/bodavargasprado/wedding-api/internal/errors"
	"github.com/bodavargasprado/wedding-api/internal/services"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps service sentinels to HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadyConfirmed):
		apierrors.AlreadyConfirmed(c, "La invitación ya está confirmada")
	case errors.Is(err, services.ErrPrimaryGuestRequired),
		errors.Is(err, services.ErrInvalidMaxGuests),
		errors.Is(err, services.ErrMaxGuestsBelowConfirmed),
		errors.Is(err, services.ErrNoGuests),
		errors.Is(err, services.ErrTooManyGuests),
		errors.Is(err, services.ErrCannotRemovePrimaryGuest),
		errors.Is(err, services.ErrSectionNameRequired),
		errors.Is(err, services.ErrInvalidMediaType),
		errors.Is(err, services.ErrMediaLocationRequired),
		errors.Is(err, services.ErrInvalidMediaSize),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrUnsupportedFileType):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvitationNotFound),
		errors.Is(err, services.ErrGuestNotFound),
		errors.Is(err, services.ErrSectionNotFound),
		errors.Is(err, services.ErrMediaNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicateCode):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUploadNotAllowed):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidAdminSecret):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrAdminUnauthorized):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrStorageUnavailable):
		apierrors.ServiceUnavailable(c, services.ErrStorageUnavailable.Error(), err)
	default:
		apierrors.InternalError(c, "Internal server error", err)
	}
}
