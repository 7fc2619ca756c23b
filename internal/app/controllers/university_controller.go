package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/app/services"
	"github.com/colloq/colloq/internal/middleware"
)

// UniversityController handles the university directory
type UniversityController struct {
	universityService services.UniversityService
}

// NewUniversityController creates a new UniversityController
func NewUniversityController(universityService services.UniversityService) *UniversityController {
	return &UniversityController{universityService: universityService}
}

// List returns approved universities
// @Summary List universities
// @Description Lists approved universities, optionally filtered by a case-insensitive search over name and city
// @Tags universities
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {object} dto.APIResponse{data=[]dto.UniversityResponse} "Universities retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /universities [get]
func (c *UniversityController) List(ctx *gin.Context) {
	universities, err := c.universityService.List(ctx, ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUniversityResponses(universities)))
}

// Get returns a single approved university
// @Summary Get university details
// @Tags universities
// @Produce json
// @Param id path int true "University ID"
// @Success 200 {object} dto.APIResponse{data=dto.UniversityResponse} "University retrieved"
// @Failure 404 {object} dto.ErrorResponse "University not found"
// @Router /universities/{id} [get]
func (c *UniversityController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	university, err := c.universityService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUniversityResponse(university)))
}

// Create submits a university proposal
// @Summary Propose a new university
// @Description Creates an unapproved university proposal that becomes visible once an admin approves it
// @Tags universities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUniversityRequest true "University data"
// @Success 201 {object} dto.APIResponse{data=dto.UniversityResponse} "Proposal submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "University already exists"
// @Router /universities [post]
func (c *UniversityController) Create(ctx *gin.Context) {
	var req dto.CreateUniversityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	university, err := c.universityService.Submit(ctx, req, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewUniversityResponse(university)))
}

// ListReviews returns a university's reviews
// @Summary List university reviews
// @Tags universities
// @Produce json
// @Param id path int true "University ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ReviewResponse} "Reviews retrieved"
// @Failure 404 {object} dto.ErrorResponse "University not found"
// @Router /universities/{id}/reviews [get]
func (c *UniversityController) ListReviews(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	reviews, err := c.universityService.ListReviews(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, dto.NewReviewResponse(r))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}

// AddReview appends a review to a university
// @Summary Review a university
// @Tags universities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "University ID"
// @Param request body dto.CreateReviewRequest true "Review data"
// @Success 201 {object} dto.APIResponse{data=dto.ReviewResponse} "Review created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "University not found"
// @Router /universities/{id}/reviews [post]
func (c *UniversityController) AddReview(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	review, err := c.universityService.AddReview(ctx, id, middleware.GetUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	review.AuthorNickname = middleware.GetNickname(ctx)

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewReviewResponse(review)))
}

// RequestImage files an image-replacement proposal for a university
// @Summary Propose a replacement image
// @Description Files a pending image-replacement request that an admin settles independently of the university's approval flag
// @Tags universities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "University ID"
// @Param request body dto.CreateImageRequestRequest true "Proposed image URL"
// @Success 201 {object} dto.APIResponse{data=dto.ImageRequestResponse} "Request filed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "University not found"
// @Router /universities/{id}/image-requests [post]
func (c *UniversityController) RequestImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateImageRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	request, err := c.universityService.RequestImage(ctx, id, middleware.GetUserID(ctx), req.ImageURL)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewImageRequestResponse(request)))
}
