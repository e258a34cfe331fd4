package web

import (
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/yucheng/cardvault-backend/internal/app/service"
	"github.com/yucheng/cardvault-backend/pkg/imghost"
)

// Server holds all dependencies for page handlers.
type Server struct {
	definitionService service.CardDefinitionService
	itemService       service.InventoryItemService
	dashboardService  service.DashboardService
	filterService     service.FilterService
	imageClient       *imghost.Client
	templates         *Templates
}

func NewServer(
	definitionService service.CardDefinitionService,
	itemService service.InventoryItemService,
	dashboardService service.DashboardService,
	filterService service.FilterService,
	imageClient *imghost.Client,
) (*Server, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	return &Server{
		definitionService: definitionService,
		itemService:       itemService,
		dashboardService:  dashboardService,
		filterService:     filterService,
		imageClient:       imageClient,
		templates:         templates,
	}, nil
}

// pageData pulls the flash message carried across a form redirect.
func pageData(c *gin.Context, title string) PageData {
	return PageData{
		Title:     title,
		Flash:     c.Query("flash"),
		FlashType: c.Query("flash_type"),
	}
}

// redirectWithFlash sends the browser back to target with a one-shot
// message in the query string.
func redirectWithFlash(c *gin.Context, target, flash, flashType string) {
	c.Redirect(302, fmt.Sprintf("%s?flash=%s&flash_type=%s",
		target, url.QueryEscape(flash), url.QueryEscape(flashType)))
}
