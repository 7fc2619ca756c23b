package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/app/services"
	"github.com/colloq/colloq/internal/middleware"
	"github.com/colloq/colloq/internal/pkg/aichat"
)

// ChatController handles the AI study-assistant endpoint
type ChatController struct {
	chatService services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// Chat relays a study question to the AI assistant
// @Summary Ask the AI assistant
// @Description Sends a message to the AI assistant, optionally grounding the answer on one of the caller's notes
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChatRequest true "Chat message"
// @Success 200 {object} dto.APIResponse{data=dto.ChatResponse} "Reply generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 503 {object} dto.ErrorResponse "AI assistant unavailable"
// @Router /chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	reply, err := c.chatService.Chat(ctx, req)
	if err != nil {
		if errors.Is(err, aichat.ErrNotConfigured) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "AI assistant is not configured")
			ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(reply))
}
