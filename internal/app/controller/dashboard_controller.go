package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/service"
	apperrors "github.com/yucheng/cardvault-backend/internal/errors"
	"github.com/yucheng/cardvault-backend/internal/middleware"
)

type DashboardController struct {
	dashboardService service.DashboardService
}

func NewDashboardController(dashboardService service.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetOverview returns every active definition with per-status item counts
// GET /api/v1/dashboard
func (ctrl *DashboardController) GetOverview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.ListDefinitionOptions{
		Search:   c.Query("q"),
		CardType: model.CardType(c.Query("type")),
		Brand:    c.Query("brand"),
		Series:   c.Query("series"),
		Year:     c.Query("year"),
		Name:     c.Query("name"),
	}

	summaries, err := ctrl.dashboardService.Overview(opts)
	if err != nil {
		log.Error("Failed to build dashboard overview", err, nil)
		info := apperrors.ParseError(err, "dashboard overview")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	log.Info("Dashboard overview fetched successfully", map[string]interface{}{
		"count": len(summaries),
	})

	c.JSON(http.StatusOK, gin.H{
		"definitions": summaries,
		"count":       len(summaries),
	})
}
