package handler

import (
	"context"
	"net/http"

	"marketplace/internal/reaper"
	"marketplace/services/market/helpers"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=admin_handler.go -destination=mock_sweeper.go -package=handler

type SweeperInterface interface {
	Sweep(ctx context.Context, graceMinutes int) (reaper.SweepResult, error)
}

type AdminHandler struct {
	sweeper SweeperInterface
}

func NewAdminHandler(sweeper SweeperInterface) *AdminHandler {
	return &AdminHandler{sweeper: sweeper}
}

// SweepHandler handles POST /admin/reaper/sweep. The body may override the
// configured grace window; zero keeps the default.
func (h *AdminHandler) SweepHandler(c *gin.Context) {
	var req helpers.SweepRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.HandleBindError(c, "SweepHandler", err)
			return
		}
	}

	result, err := h.sweeper.Sweep(c.Request.Context(), req.GraceMinutes)
	if err != nil {
		helpers.HandleServiceError(c, "SweepHandler", err, map[string]any{
			"grace_minutes": req.GraceMinutes,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, result, "sweep completed")
	helpers.LogSuccess("SweepHandler", "sweep completed", map[string]any{
		"reclaimed": result.Reclaimed,
	})
}
