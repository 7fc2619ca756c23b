package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/app/services"
	"github.com/colloq/colloq/internal/middleware"
)

// MetaController serves the leaderboard and the health endpoint
type MetaController struct {
	metaService services.MetaService
}

// NewMetaController creates a new MetaController
func NewMetaController(metaService services.MetaService) *MetaController {
	return &MetaController{metaService: metaService}
}

// Leaderboard returns the top contributors
// @Summary Top contributors
// @Description Returns the five users with the most approved notes, ties broken by registration order
// @Tags meta
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.LeaderboardEntry} "Leaderboard retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /leaderboard [get]
func (c *MetaController) Leaderboard(ctx *gin.Context) {
	entries, err := c.metaService.Leaderboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(entries))
}

// Health reports liveness plus coarse counts
// @Summary Health check
// @Tags meta
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service healthy"
// @Router /health [get]
func (c *MetaController) Health(ctx *gin.Context) {
	health, err := c.metaService.Health(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, health)
}
