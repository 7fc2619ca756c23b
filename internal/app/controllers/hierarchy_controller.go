package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/app/services"
	"github.com/colloq/colloq/internal/middleware"
)

// HierarchyController handles the faculty → field → subject levels of the tree
type HierarchyController struct {
	hierarchyService services.HierarchyService
}

// NewHierarchyController creates a new HierarchyController
func NewHierarchyController(hierarchyService services.HierarchyService) *HierarchyController {
	return &HierarchyController{hierarchyService: hierarchyService}
}

// ListFaculties returns a university's approved faculties
// @Summary List faculties of a university
// @Tags hierarchy
// @Produce json
// @Param id path int true "University ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.FacultyResponse} "Faculties retrieved"
// @Failure 404 {object} dto.ErrorResponse "University not found"
// @Router /universities/{id}/faculties [get]
func (c *HierarchyController) ListFaculties(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	faculties, err := c.hierarchyService.ListFaculties(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewFacultyResponses(faculties)))
}

// CreateFaculty submits a faculty proposal
// @Summary Propose a new faculty
// @Tags hierarchy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFacultyRequest true "Faculty data"
// @Success 201 {object} dto.APIResponse{data=dto.FacultyResponse} "Proposal submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Parent university not found or not approved"
// @Failure 409 {object} dto.ErrorResponse "Faculty already exists"
// @Router /faculties [post]
func (c *HierarchyController) CreateFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	faculty, err := c.hierarchyService.SubmitFaculty(ctx, req, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewFacultyResponse(faculty)))
}

// ListFields returns a faculty's approved fields of study
// @Summary List fields of study of a faculty
// @Tags hierarchy
// @Produce json
// @Param id path int true "Faculty ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.FieldOfStudyResponse} "Fields retrieved"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculties/{id}/fields [get]
func (c *HierarchyController) ListFields(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	fields, err := c.hierarchyService.ListFields(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewFieldOfStudyResponses(fields)))
}

// CreateField submits a field-of-study proposal
// @Summary Propose a new field of study
// @Tags hierarchy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFieldOfStudyRequest true "Field data"
// @Success 201 {object} dto.APIResponse{data=dto.FieldOfStudyResponse} "Proposal submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Parent faculty not found or not approved"
// @Failure 409 {object} dto.ErrorResponse "Field already exists"
// @Router /fields [post]
func (c *HierarchyController) CreateField(ctx *gin.Context) {
	var req dto.CreateFieldOfStudyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	field, err := c.hierarchyService.SubmitField(ctx, req, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewFieldOfStudyResponse(field)))
}

// ListSubjects returns a field's approved subjects
// @Summary List subjects of a field of study
// @Tags hierarchy
// @Produce json
// @Param id path int true "Field of study ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.SubjectResponse} "Subjects retrieved"
// @Failure 404 {object} dto.ErrorResponse "Field not found"
// @Router /fields/{id}/subjects [get]
func (c *HierarchyController) ListSubjects(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	subjects, err := c.hierarchyService.ListSubjects(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewSubjectResponses(subjects)))
}

// CreateSubject submits a subject proposal
// @Summary Propose a new subject
// @Tags hierarchy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSubjectRequest true "Subject data"
// @Success 201 {object} dto.APIResponse{data=dto.SubjectResponse} "Proposal submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Parent field not found or not approved"
// @Failure 409 {object} dto.ErrorResponse "Subject already exists"
// @Router /subjects [post]
func (c *HierarchyController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	subject, err := c.hierarchyService.SubmitSubject(ctx, req, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewSubjectResponse(subject)))
}
