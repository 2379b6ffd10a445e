package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses. Every controller
// funnels service errors through here so the taxonomy maps to status codes
// in exactly one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrEventNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrParticipationNotFound,
		apperrors.ErrNotificationNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, notFoundMessage(err)),
		})
	case errors.Is(err, apperrors.ErrAlreadyJoined):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeAlreadyJoined, "Already joined this event"),
		})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is disabled"),
		})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})
	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found"),
		})
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, validationMessage(err)),
		})
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"),
		})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		c.JSON(503, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeStoreUnavailable, "Store unavailable"),
		})
	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

// notFoundMessage keeps the specific resource name when the sentinel carries one
func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		return "Event not found"
	case errors.Is(err, apperrors.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, apperrors.ErrParticipationNotFound):
		return "Participation not found"
	case errors.Is(err, apperrors.ErrNotificationNotFound):
		return "Notification not found"
	default:
		return "Resource not found"
	}
}

// validationMessage surfaces the wrapped detail when a CustomError carries one
func validationMessage(err error) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return "Validation failed"
}
