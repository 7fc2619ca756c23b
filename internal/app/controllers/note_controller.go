package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/app/services"
	"github.com/colloq/colloq/internal/middleware"
)

// NoteController handles note submission and engagement
type NoteController struct {
	noteService services.NoteService
	userService services.UserService
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, userService services.UserService) *NoteController {
	return &NoteController{
		noteService: noteService,
		userService: userService,
	}
}

// List returns a page of approved notes
// @Summary List notes
// @Description Lists approved notes ordered by score descending, optionally filtered by university, subject and a case-insensitive search over title and content
// @Tags notes
// @Produce json
// @Param university_id query int false "Filter by university"
// @Param subject_id query int false "Filter by subject"
// @Param search query string false "Search term"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse{items=[]dto.NoteResponse}} "Notes retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes [get]
func (c *NoteController) List(ctx *gin.Context) {
	universityID, _ := strconv.ParseInt(ctx.Query("university_id"), 10, 64)
	subjectID, _ := strconv.ParseInt(ctx.Query("subject_id"), 10, 64)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "20"))

	notes, err := c.noteService.List(ctx, universityID, subjectID, ctx.Query("search"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notes))
}

// Get returns a single note
// @Summary Get a note
// @Description Returns an approved note by id. Admins also see notes still pending moderation.
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse} "Note retrieved"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{id} [get]
func (c *NoteController) Get(ctx *gin.Context) {
	noteID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	note, err := c.noteService.Get(ctx, noteID, ctx.GetBool(middleware.ContextIsAdmin))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(note))
}

// Create submits a note as multipart form data
// @Summary Submit a note
// @Description Submits a note for moderation. Text content or an image file is required; the note stays invisible until an admin approves it.
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string false "Title"
// @Param content formData string false "Text content"
// @Param universityId formData int true "University ID"
// @Param subjectId formData int false "Subject ID"
// @Param videoUrl formData string false "Video URL"
// @Param linkUrl formData string false "External link URL"
// @Param image formData file false "Image attachment"
// @Success 201 {object} dto.APIResponse{data=dto.NoteResponse} "Note submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or missing content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "University or subject not found"
// @Router /notes [post]
func (c *NoteController) Create(ctx *gin.Context) {
	var req dto.CreateNoteRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	// The image is optional; every other multipart error is a client error.
	image, err := ctx.FormFile("image")
	if err != nil && err != http.ErrMissingFile {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	author, err := c.userService.GetProfile(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	note, err := c.noteService.Create(ctx, req, image, author)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewNoteResponse(note, author.Nickname)))
}

// ToggleVote flips the caller's vote on a note
// @Summary Toggle a vote
// @Description Adds the caller's vote to the note, or removes it if already present. The note's score follows the vote count.
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleResponse} "Vote toggled"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{id}/vote [post]
func (c *NoteController) ToggleVote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.noteService.ToggleVote(ctx, id, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// ToggleFavorite flips the caller's favorite on a note
// @Summary Toggle a favorite
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleResponse} "Favorite toggled"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{id}/favorite [post]
func (c *NoteController) ToggleFavorite(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.noteService.ToggleFavorite(ctx, id, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// ListComments returns a note's comments
// @Summary List comments on a note
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse} "Comments retrieved"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{id}/comments [get]
func (c *NoteController) ListComments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	comments, err := c.noteService.ListComments(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, dto.NewCommentResponse(comment))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}

// AddComment appends a comment to a note
// @Summary Comment on a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Param request body dto.CreateCommentRequest true "Comment data"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{id}/comments [post]
func (c *NoteController) AddComment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	comment, err := c.noteService.AddComment(ctx, id, middleware.GetUserID(ctx), req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	comment.AuthorNickname = middleware.GetNickname(ctx)

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewCommentResponse(comment)))
}
