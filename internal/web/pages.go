package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/service"
	"github.com/yucheng/cardvault-backend/internal/middleware"
)

// dashboardFilters is the current filter selection, echoed back into the
// form controls so selections survive a reload.
type dashboardFilters struct {
	Search   string
	CardType string
	Brand    string
	Series   string
	Year     string
	Name     string
}

// Dashboard handles GET /.
func (s *Server) Dashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filters := dashboardFilters{
		Search:   c.Query("q"),
		CardType: c.Query("type"),
		Brand:    c.Query("brand"),
		Series:   c.Query("series"),
		Year:     c.Query("year"),
		Name:     c.Query("name"),
	}

	summaries, err := s.dashboardService.Overview(service.ListDefinitionOptions{
		Search:   filters.Search,
		CardType: model.CardType(filters.CardType),
		Brand:    filters.Brand,
		Series:   filters.Series,
		Year:     filters.Year,
		Name:     filters.Name,
	})
	if err != nil {
		log.Error("Failed to build dashboard page", err, nil)
	}

	options, err := s.filterService.Options(model.CardType(filters.CardType), filters.Brand)
	if err != nil {
		log.Error("Failed to compute filter options for dashboard page", err, nil)
	}

	s.templates.Render(c.Writer, "dashboard.html", &struct {
		PageData
		Definitions []service.DefinitionSummary
		Filters     dashboardFilters
		Options     service.FilterOptions
		CardTypes   []model.CardType
	}{
		PageData:    pageData(c, "Collection Dashboard"),
		Definitions: summaries,
		Filters:     filters,
		Options:     options,
		CardTypes:   model.CardTypes,
	})
}

// statusGroup is one status bucket on the card detail page.
type statusGroup struct {
	Status model.ItemStatus
	Items  []model.InventoryItem
}

// CardDetail handles GET /cards/:id.
func (s *Server) CardDetail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid card id")
		return
	}

	definition, err := s.definitionService.GetDefinitionByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrDefinitionNotFound) {
			c.String(http.StatusNotFound, "card definition not found")
			return
		}
		log.Error("Failed to load card definition page", err, map[string]interface{}{
			"definition_id": id,
		})
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	definitionID := uint(id)
	items, err := s.itemService.ListItems(&definitionID)
	if err != nil {
		log.Error("Failed to load items for card definition page", err, map[string]interface{}{
			"definition_id": id,
		})
	}

	// Group items by status, in lifecycle order.
	grouped := make(map[model.ItemStatus][]model.InventoryItem)
	for _, item := range items {
		grouped[item.Status] = append(grouped[item.Status], item)
	}
	groups := make([]statusGroup, 0, len(model.ItemStatuses))
	for _, status := range model.ItemStatuses {
		if members := grouped[status]; len(members) > 0 {
			groups = append(groups, statusGroup{Status: status, Items: members})
		}
	}

	s.templates.Render(c.Writer, "card_detail.html", &struct {
		PageData
		Definition *model.CardDefinition
		Groups     []statusGroup
		ItemCount  int
		Statuses   []model.ItemStatus
	}{
		PageData:   pageData(c, definition.DisplayName()),
		Definition: definition,
		Groups:     groups,
		ItemCount:  len(items),
		Statuses:   model.ItemStatuses,
	})
}
