package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/service"
	apperrors "github.com/yucheng/cardvault-backend/internal/errors"
	"github.com/yucheng/cardvault-backend/internal/middleware"
)

type FilterController struct {
	filterService service.FilterService
}

func NewFilterController(filterService service.FilterService) *FilterController {
	return &FilterController{
		filterService: filterService,
	}
}

// GetFilterOptions returns the distinct values available for each dashboard
// filter, narrowed by the current type and brand selection
// GET /api/v1/filter-options
func (ctrl *FilterController) GetFilterOptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cardType := model.CardType(c.Query("type"))
	if cardType != "" && !cardType.Valid() {
		apperrors.BadRequest(c, apperrors.CardInvalidType, "Invalid card type")
		return
	}

	options, err := ctrl.filterService.Options(cardType, c.Query("brand"))
	if err != nil {
		log.Error("Failed to compute filter options", err, map[string]interface{}{
			"card_type": cardType,
		})
		info := apperrors.ParseError(err, "filter options")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	c.JSON(http.StatusOK, options)
}
