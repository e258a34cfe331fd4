package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/service"
	apperrors "github.com/yucheng/cardvault-backend/internal/errors"
	"github.com/yucheng/cardvault-backend/internal/middleware"
)

type DefinitionController struct {
	definitionService service.CardDefinitionService
}

func NewDefinitionController(definitionService service.CardDefinitionService) *DefinitionController {
	return &DefinitionController{
		definitionService: definitionService,
	}
}

// CreateDefinitionRequest carries a full creation payload. Required fields
// are checked by the service so the reason strings stay uniform across the
// API and the web forms.
type CreateDefinitionRequest struct {
	CardType       string `json:"card_type"`
	Year           string `json:"year"`
	Brand          string `json:"brand"`
	ImageURL       string `json:"image_url"`
	Series         string `json:"series"`
	CardNumber     string `json:"card_number"`
	InsertParallel string `json:"insert_parallel"`
	Note           string `json:"note"`
	PlayerName     string `json:"player_name"`
	PokemonName    string `json:"pokemon_name"`
	Language       string `json:"language"`
	Era            string `json:"era"`
}

func (req CreateDefinitionRequest) toInput() service.DefinitionInput {
	return service.DefinitionInput{
		CardType:       model.CardType(req.CardType),
		Year:           req.Year,
		Brand:          req.Brand,
		ImageURL:       req.ImageURL,
		Series:         req.Series,
		CardNumber:     req.CardNumber,
		InsertParallel: req.InsertParallel,
		Note:           req.Note,
		PlayerName:     req.PlayerName,
		PokemonName:    req.PokemonName,
		Language:       req.Language,
		Era:            req.Era,
	}
}

// UpdateDefinitionRequest carries a partial update; absent fields stay
// untouched in storage.
type UpdateDefinitionRequest struct {
	CardType       *string `json:"card_type"`
	Year           *string `json:"year"`
	Brand          *string `json:"brand"`
	ImageURL       *string `json:"image_url"`
	Series         *string `json:"series"`
	CardNumber     *string `json:"card_number"`
	InsertParallel *string `json:"insert_parallel"`
	Note           *string `json:"note"`
	PlayerName     *string `json:"player_name"`
	PokemonName    *string `json:"pokemon_name"`
	Language       *string `json:"language"`
	Era            *string `json:"era"`
}

func (req UpdateDefinitionRequest) toUpdate() service.DefinitionUpdate {
	update := service.DefinitionUpdate{
		Year:           req.Year,
		Brand:          req.Brand,
		ImageURL:       req.ImageURL,
		Series:         req.Series,
		CardNumber:     req.CardNumber,
		InsertParallel: req.InsertParallel,
		Note:           req.Note,
		PlayerName:     req.PlayerName,
		PokemonName:    req.PokemonName,
		Language:       req.Language,
		Era:            req.Era,
	}
	if req.CardType != nil {
		cardType := model.CardType(*req.CardType)
		update.CardType = &cardType
	}
	return update
}

func parseID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// ListDefinitions returns active card definitions with optional filtering
// GET /api/v1/definitions
func (ctrl *DefinitionController) ListDefinitions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.ListDefinitionOptions{
		Search:   c.Query("q"),
		CardType: model.CardType(c.Query("type")),
		Brand:    c.Query("brand"),
		Series:   c.Query("series"),
		Year:     c.Query("year"),
		Name:     c.Query("name"),
	}

	definitions, err := ctrl.definitionService.ListDefinitions(opts)
	if err != nil {
		log.Error("Failed to fetch card definitions", err, nil)
		info := apperrors.ParseError(err, "list definitions")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	log.Info("Card definitions fetched successfully", map[string]interface{}{
		"count": len(definitions),
	})

	c.JSON(http.StatusOK, gin.H{
		"definitions": definitions,
		"count":       len(definitions),
	})
}

// GetDefinitionByID returns a card definition by ID
// GET /api/v1/definitions/:id
func (ctrl *DefinitionController) GetDefinitionByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	definition, err := ctrl.definitionService.GetDefinitionByID(id)
	if err != nil {
		if errors.Is(err, service.ErrDefinitionNotFound) {
			apperrors.NotFound(c, apperrors.CardNotFound, "Card definition not found")
			return
		}
		log.Error("Failed to fetch card definition", err, map[string]interface{}{
			"definition_id": id,
		})
		info := apperrors.ParseError(err, "get definition")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"definition": definition,
	})
}

// CreateDefinition creates a new card definition
// POST /api/v1/definitions
func (ctrl *DefinitionController) CreateDefinition(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid definition creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	definition, err := ctrl.definitionService.CreateDefinition(req.toInput())
	if err != nil {
		if service.IsValidation(err) {
			apperrors.BadRequest(c, apperrors.ValidationFailed, err.Error())
			return
		}
		log.Error("Failed to create card definition", err, map[string]interface{}{
			"card_type": req.CardType,
			"brand":     req.Brand,
		})
		info := apperrors.ParseError(err, "create definition")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	log.Info("Card definition created successfully", map[string]interface{}{
		"definition_id": definition.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Card definition created successfully",
		"definition": definition,
	})
}

// UpdateDefinition updates an existing card definition
// PUT /api/v1/definitions/:id
func (ctrl *DefinitionController) UpdateDefinition(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid definition update request", map[string]interface{}{
			"definition_id": id,
			"error":         err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	definition, err := ctrl.definitionService.UpdateDefinition(id, req.toUpdate())
	if err != nil {
		if errors.Is(err, service.ErrDefinitionNotFound) {
			apperrors.NotFound(c, apperrors.CardNotFound, "Card definition not found")
			return
		}
		if service.IsValidation(err) {
			apperrors.BadRequest(c, apperrors.ValidationFailed, err.Error())
			return
		}
		log.Error("Failed to update card definition", err, map[string]interface{}{
			"definition_id": id,
		})
		info := apperrors.ParseError(err, "update definition")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	log.Info("Card definition updated successfully", map[string]interface{}{
		"definition_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":    "Card definition updated successfully",
		"definition": definition,
	})
}

// ArchiveDefinition soft-deletes a card definition
// POST /api/v1/definitions/:id/archive
func (ctrl *DefinitionController) ArchiveDefinition(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.definitionService.ArchiveDefinition(id); err != nil {
		if errors.Is(err, service.ErrDefinitionNotFound) {
			apperrors.NotFound(c, apperrors.CardNotFound, "Card definition not found")
			return
		}
		log.Error("Failed to archive card definition", err, map[string]interface{}{
			"definition_id": id,
		})
		info := apperrors.ParseError(err, "archive definition")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, err.Error())
		return
	}

	log.Info("Card definition archived successfully", map[string]interface{}{
		"definition_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Card definition archived successfully",
	})
}
