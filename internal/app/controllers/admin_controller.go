package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/app/services"
	"github.com/colloq/colloq/internal/middleware"
)

// AdminController handles the moderation endpoints. Routing guarantees every
// handler here runs behind JWTAuth and AdminRequired.
type AdminController struct {
	moderationService services.ModerationService
}

// NewAdminController creates a new AdminController
func NewAdminController(moderationService services.ModerationService) *AdminController {
	return &AdminController{moderationService: moderationService}
}

// PendingItems returns everything awaiting moderation
// @Summary List pending submissions
// @Description Aggregates every unapproved entity across all moderated types plus pending image-replacement requests, grouped by type
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PendingItemsResponse} "Pending items retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/pending_items [get]
func (c *AdminController) PendingItems(ctx *gin.Context) {
	pending, err := c.moderationService.ListPending(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(pending))
}

// Approve makes an entity visible
// @Summary Approve an entity
// @Description Sets the entity's approval flag. Approving an already approved entity succeeds without effect.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param type path string true "Entity type" Enums(university, faculty, field_of_study, subject, note)
// @Param id path int true "Entity ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Entity approved"
// @Failure 400 {object} dto.ErrorResponse "Unknown entity type"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Entity not found"
// @Router /admin/approve/{type}/{id} [post]
func (c *AdminController) Approve(ctx *gin.Context) {
	kind, id, ok := c.parseKindAndID(ctx)
	if !ok {
		return
	}

	if err := c.moderationService.Approve(ctx, kind, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Entity approved"}))
}

// Reject hard-deletes an entity and its descendants
// @Summary Reject an entity
// @Description Deletes the entity; descendants and engagement records are removed by cascade
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param type path string true "Entity type" Enums(university, faculty, field_of_study, subject, note)
// @Param id path int true "Entity ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Entity rejected"
// @Failure 400 {object} dto.ErrorResponse "Unknown entity type"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Entity not found"
// @Router /admin/reject/{type}/{id} [delete]
func (c *AdminController) Reject(ctx *gin.Context) {
	kind, id, ok := c.parseKindAndID(ctx)
	if !ok {
		return
	}

	if err := c.moderationService.Reject(ctx, kind, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Entity rejected"}))
}

// ApproveImageRequest applies a proposed image and settles the request
// @Summary Approve an image-replacement request
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image request ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Request approved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already settled"
// @Router /admin/image-requests/{id}/approve [post]
func (c *AdminController) ApproveImageRequest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.moderationService.ApproveImageRequest(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Image request approved"}))
}

// RejectImageRequest settles the request without touching the university
// @Summary Reject an image-replacement request
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image request ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Request rejected"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already settled"
// @Router /admin/image-requests/{id}/reject [post]
func (c *AdminController) RejectImageRequest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.moderationService.RejectImageRequest(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Image request rejected"}))
}

func (c *AdminController) parseKindAndID(ctx *gin.Context) (models.ModeratedKind, int64, bool) {
	kind, err := models.ParseModeratedKind(ctx.Param("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return "", 0, false
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return "", 0, false
	}
	return kind, id, true
}
