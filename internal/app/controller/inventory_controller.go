package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/service"
	apperrors "github.com/yucheng/cardvault-backend/internal/errors"
	"github.com/yucheng/cardvault-backend/internal/middleware"
)

type InventoryController struct {
	itemService   service.InventoryItemService
	exportService service.ExportService
}

func NewInventoryController(itemService service.InventoryItemService, exportService service.ExportService) *InventoryController {
	return &InventoryController{
		itemService:   itemService,
		exportService: exportService,
	}
}

// CreateItemRequest carries a full item creation payload.
type CreateItemRequest struct {
	CardDefinitionID uint                   `json:"card_definition_id"`
	Status           string                 `json:"status"`
	SerialNumber     string                 `json:"serial_number"`
	Condition        string                 `json:"condition"`
	Defects          string                 `json:"defects"`
	PersonalGrade    string                 `json:"personal_grade"`
	IsGraded         bool                   `json:"is_graded"`
	IsInTaiwan       bool                   `json:"is_in_taiwan"`
	Notes            string                 `json:"notes"`
	CustomID         string                 `json:"custom_id"`
	Acquisition      *model.Acquisition     `json:"acquisition"`
	Grading          []model.GradingAttempt `json:"grading"`
	Disposition      *model.Disposition     `json:"disposition"`
}

func (req CreateItemRequest) toInput() service.ItemInput {
	return service.ItemInput{
		CardDefinitionID: req.CardDefinitionID,
		Status:           model.ItemStatus(req.Status),
		SerialNumber:     req.SerialNumber,
		Condition:        req.Condition,
		Defects:          req.Defects,
		PersonalGrade:    req.PersonalGrade,
		IsGraded:         req.IsGraded,
		IsInTaiwan:       req.IsInTaiwan,
		Notes:            req.Notes,
		CustomID:         req.CustomID,
		Acquisition:      req.Acquisition,
		Grading:          req.Grading,
		Disposition:      req.Disposition,
	}
}

// UpdateItemRequest carries a partial update. Grading attempts in the
// payload are appended to the stored history rather than replacing it.
type UpdateItemRequest struct {
	Status        *string                `json:"status"`
	SerialNumber  *string                `json:"serial_number"`
	Condition     *string                `json:"condition"`
	Defects       *string                `json:"defects"`
	PersonalGrade *string                `json:"personal_grade"`
	IsGraded      *bool                  `json:"is_graded"`
	IsInTaiwan    *bool                  `json:"is_in_taiwan"`
	Notes         *string                `json:"notes"`
	CustomID      *string                `json:"custom_id"`
	Acquisition   *model.Acquisition     `json:"acquisition"`
	Grading       []model.GradingAttempt `json:"grading"`
	Disposition   *model.Disposition     `json:"disposition"`
}

func (req UpdateItemRequest) toUpdate() service.ItemUpdate {
	update := service.ItemUpdate{
		SerialNumber:  req.SerialNumber,
		Condition:     req.Condition,
		Defects:       req.Defects,
		PersonalGrade: req.PersonalGrade,
		IsGraded:      req.IsGraded,
		IsInTaiwan:    req.IsInTaiwan,
		Notes:         req.Notes,
		CustomID:      req.CustomID,
		Acquisition:   req.Acquisition,
		Grading:       req.Grading,
		Disposition:   req.Disposition,
	}
	if req.Status != nil {
		status := model.ItemStatus(*req.Status)
		update.Status = &status
	}
	return update
}

// ListItems returns active inventory items, optionally for one definition
// GET /api/v1/inventory
func (ctrl *InventoryController) ListItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var definitionID *uint
	if raw := c.Query("definition_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid definition_id")
			return
		}
		id := uint(parsed)
		definitionID = &id
	}

	items, err := ctrl.itemService.ListItems(definitionID)
	if err != nil {
		log.Error("Failed to fetch inventory items", err, nil)
		info := apperrors.ParseError(err, "list items")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	log.Info("Inventory items fetched successfully", map[string]interface{}{
		"count": len(items),
	})

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetItemByID returns an inventory item by ID
// GET /api/v1/inventory/:id
func (ctrl *InventoryController) GetItemByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := ctrl.itemService.GetItemByID(id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.NotFound(c, apperrors.ItemNotFound, "Inventory item not found")
			return
		}
		log.Error("Failed to fetch inventory item", err, map[string]interface{}{
			"item_id": id,
		})
		info := apperrors.ParseError(err, "get item")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item": item,
	})
}

// CreateItem creates a new inventory item
// POST /api/v1/inventory
func (ctrl *InventoryController) CreateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid item creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	item, err := ctrl.itemService.CreateItem(req.toInput())
	if err != nil {
		if service.IsValidation(err) {
			apperrors.BadRequest(c, apperrors.ValidationFailed, err.Error())
			return
		}
		log.Error("Failed to create inventory item", err, map[string]interface{}{
			"card_definition_id": req.CardDefinitionID,
		})
		info := apperrors.ParseError(err, "create item")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	log.Info("Inventory item created successfully", map[string]interface{}{
		"item_id":            item.ID,
		"card_definition_id": item.CardDefinitionID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Inventory item created successfully",
		"item":    item,
	})
}

// UpdateItem updates an existing inventory item
// PUT /api/v1/inventory/:id
func (ctrl *InventoryController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid item update request", map[string]interface{}{
			"item_id": id,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	item, err := ctrl.itemService.UpdateItem(id, req.toUpdate())
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.NotFound(c, apperrors.ItemNotFound, "Inventory item not found")
			return
		}
		if service.IsValidation(err) {
			apperrors.BadRequest(c, apperrors.ValidationFailed, err.Error())
			return
		}
		log.Error("Failed to update inventory item", err, map[string]interface{}{
			"item_id": id,
		})
		info := apperrors.ParseError(err, "update item")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	log.Info("Inventory item updated successfully", map[string]interface{}{
		"item_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory item updated successfully",
		"item":    item,
	})
}

// ArchiveItem soft-deletes an inventory item
// POST /api/v1/inventory/:id/archive
func (ctrl *InventoryController) ArchiveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.itemService.ArchiveItem(id); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.NotFound(c, apperrors.ItemNotFound, "Inventory item not found")
			return
		}
		log.Error("Failed to archive inventory item", err, map[string]interface{}{
			"item_id": id,
		})
		info := apperrors.ParseError(err, "archive item")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	log.Info("Inventory item archived successfully", map[string]interface{}{
		"item_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory item archived successfully",
	})
}

// ExportInventory streams the active inventory as an xlsx workbook
// GET /api/v1/inventory/export
func (ctrl *InventoryController) ExportInventory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.exportService.ExportInventory()
	if err != nil {
		log.Error("Failed to export inventory", err, nil)
		info := apperrors.ParseError(err, "export inventory")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	log.Info("Inventory exported successfully", map[string]interface{}{
		"bytes": len(data),
	})
}
