package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/app/services"
	"github.com/derin/volunteerhub/internal/middleware"
)

// UserController handles account and profile related operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// currentUser pulls the authenticated identity out of the request context.
// Returns false (after writing the 401) when the auth middleware did not run.
func currentUser(ctx *gin.Context) (int64, models.RoleType, bool) {
	userIDValue, exists := ctx.Get("userID")
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, "", false
	}

	userID, ok := userIDValue.(int64)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Invalid user ID format")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return 0, "", false
	}

	role := models.RoleVolunteer
	if roleValue, exists := ctx.Get("roleType"); exists {
		if roleStr, ok := roleValue.(string); ok {
			role = models.RoleType(roleStr)
		}
	}

	return userID, role, true
}

// GetMyProfile handles retrieving the authenticated user's profile
// @Summary Get my profile
// @Description Retrieves the account with its volunteer profile. Profile fields are empty until first saved.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (c *UserController) GetMyProfile(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	profile, err := c.userService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateMyProfile handles saving the authenticated user's profile
// @Summary Update my profile
// @Description Applies non-null fields to the account and profile. The profile row is created on first save.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me [put]
func (c *UserController) UpdateMyProfile(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.userService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}
