package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/app/services"
	"github.com/colloq/colloq/internal/middleware"
)

// UserController handles profile operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetMe returns the caller's own profile
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	user, err := c.userService.GetProfile(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user)))
}

// UpdateMe updates the caller's own profile
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Nickname already taken"
// @Router /users/me [put]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	user, err := c.userService.UpdateProfile(ctx, middleware.GetUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user)))
}

// ListFavorites returns the approved notes the caller has favorited
// @Summary List own favorite notes
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.NoteResponse} "Favorites retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me/favorites [get]
func (c *UserController) ListFavorites(ctx *gin.Context) {
	notes, err := c.userService.ListFavorites(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, dto.NewNoteResponse(n, ""))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}
