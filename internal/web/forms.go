package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/service"
	"github.com/yucheng/cardvault-backend/internal/middleware"
)

// postFormPtr returns a pointer to the submitted value, or nil when the
// field was not part of the form at all. Partial updates rely on the
// distinction.
func postFormPtr(c *gin.Context, key string) *string {
	if value, ok := c.GetPostForm(key); ok {
		return &value
	}
	return nil
}

func formFloat(c *gin.Context, key string) float64 {
	value, err := strconv.ParseFloat(c.PostForm(key), 64)
	if err != nil {
		return 0
	}
	return value
}

func formBool(c *gin.Context, key string) bool {
	value := c.PostForm(key)
	return value == "on" || value == "true" || value == "1"
}

// uploadFormImage pushes an attached card scan to the image host and
// returns its URL. An absent file is not an error; the caller falls back
// to the image_url text field.
func (s *Server) uploadFormImage(c *gin.Context) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("opening uploaded image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("reading uploaded image: %w", err)
	}

	result, err := s.imageClient.Upload(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

// CreateDefinitionForm handles POST /web/definitions.
func (s *Server) CreateDefinitionForm(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	imageURL, err := s.uploadFormImage(c)
	if err != nil {
		log.Error("Image upload from definition form failed", err, nil)
		redirectWithFlash(c, "/", "Image upload failed: "+err.Error(), "error")
		return
	}
	if imageURL == "" {
		imageURL = c.PostForm("image_url")
	}

	input := service.DefinitionInput{
		CardType:       model.CardType(c.PostForm("card_type")),
		Year:           c.PostForm("year"),
		Brand:          c.PostForm("brand"),
		ImageURL:       imageURL,
		Series:         c.PostForm("series"),
		CardNumber:     c.PostForm("card_number"),
		InsertParallel: c.PostForm("insert_parallel"),
		Note:           c.PostForm("note"),
		PlayerName:     c.PostForm("player_name"),
		PokemonName:    c.PostForm("pokemon_name"),
		Language:       c.PostForm("language"),
		Era:            c.PostForm("era"),
	}

	definition, err := s.definitionService.CreateDefinition(input)
	if err != nil {
		if service.IsValidation(err) {
			redirectWithFlash(c, "/", err.Error(), "error")
			return
		}
		log.Error("Failed to create card definition from form", err, nil)
		redirectWithFlash(c, "/", "Failed to create card definition", "error")
		return
	}

	redirectWithFlash(c, fmt.Sprintf("/cards/%d", definition.ID), "Card definition created", "success")
}

// UpdateDefinitionForm handles POST /web/definitions/:id.
func (s *Server) UpdateDefinitionForm(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid card id")
		return
	}
	target := fmt.Sprintf("/cards/%d", id)

	update := service.DefinitionUpdate{
		Year:           postFormPtr(c, "year"),
		Brand:          postFormPtr(c, "brand"),
		Series:         postFormPtr(c, "series"),
		CardNumber:     postFormPtr(c, "card_number"),
		InsertParallel: postFormPtr(c, "insert_parallel"),
		Note:           postFormPtr(c, "note"),
		PlayerName:     postFormPtr(c, "player_name"),
		PokemonName:    postFormPtr(c, "pokemon_name"),
		Language:       postFormPtr(c, "language"),
		Era:            postFormPtr(c, "era"),
	}

	imageURL, err := s.uploadFormImage(c)
	if err != nil {
		log.Error("Image upload from definition form failed", err, map[string]interface{}{
			"definition_id": id,
		})
		redirectWithFlash(c, target, "Image upload failed: "+err.Error(), "error")
		return
	}
	if imageURL != "" {
		update.ImageURL = &imageURL
	} else if submitted := postFormPtr(c, "image_url"); submitted != nil && *submitted != "" {
		update.ImageURL = submitted
	}

	if _, err := s.definitionService.UpdateDefinition(uint(id), update); err != nil {
		if errors.Is(err, service.ErrDefinitionNotFound) {
			c.String(http.StatusNotFound, "card definition not found")
			return
		}
		if service.IsValidation(err) {
			redirectWithFlash(c, target, err.Error(), "error")
			return
		}
		log.Error("Failed to update card definition from form", err, map[string]interface{}{
			"definition_id": id,
		})
		redirectWithFlash(c, target, "Failed to update card definition", "error")
		return
	}

	redirectWithFlash(c, target, "Card definition updated", "success")
}

// ArchiveDefinitionForm handles POST /web/definitions/:id/archive.
func (s *Server) ArchiveDefinitionForm(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid card id")
		return
	}

	if err := s.definitionService.ArchiveDefinition(uint(id)); err != nil {
		if errors.Is(err, service.ErrDefinitionNotFound) {
			c.String(http.StatusNotFound, "card definition not found")
			return
		}
		log.Error("Failed to archive card definition from form", err, map[string]interface{}{
			"definition_id": id,
		})
		redirectWithFlash(c, fmt.Sprintf("/cards/%d", id), "Failed to archive card definition", "error")
		return
	}

	redirectWithFlash(c, "/", "Card definition archived", "success")
}

// formAcquisition assembles the acquisition sub-record from its form
// fields, or nil when none were filled in.
func formAcquisition(c *gin.Context) *model.Acquisition {
	acquisition := model.Acquisition{
		Date:      c.PostForm("acq_date"),
		Price:     formFloat(c, "acq_price"),
		Shipping:  formFloat(c, "acq_shipping"),
		Tax:       formFloat(c, "acq_tax"),
		TotalCost: formFloat(c, "acq_total_cost"),
		Source:    c.PostForm("acq_source"),
		Payer:     c.PostForm("acq_payer"),
	}
	if acquisition == (model.Acquisition{}) {
		return nil
	}
	return &acquisition
}

// formDisposition assembles the disposition sub-record, or nil when the
// form carried no sale details.
func formDisposition(c *gin.Context) *model.Disposition {
	disposition := model.Disposition{
		Date:              c.PostForm("disp_date"),
		Revenue:           formFloat(c, "disp_revenue"),
		ProcessingFee:     formFloat(c, "disp_processing_fee"),
		ShippingFee:       formFloat(c, "disp_shipping_fee"),
		SalesTaxCollected: formFloat(c, "disp_sales_tax"),
		IncomeReceiver:    c.PostForm("disp_income_receiver"),
	}
	if disposition == (model.Disposition{}) {
		return nil
	}
	return &disposition
}

// formGradingAttempt assembles a single new grading attempt, keyed off the
// grading_type field being filled in.
func formGradingAttempt(c *gin.Context) []model.GradingAttempt {
	gradingType := c.PostForm("grading_type")
	if gradingType == "" {
		return nil
	}
	return []model.GradingAttempt{{
		Type:          gradingType,
		Fee:           formFloat(c, "grading_fee"),
		DateSubmitted: c.PostForm("grading_date_submitted"),
		DateReturned:  c.PostForm("grading_date_returned"),
		Result:        c.PostForm("grading_result"),
	}}
}

// CreateItemForm handles POST /web/inventory.
func (s *Server) CreateItemForm(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	definitionID, err := strconv.ParseUint(c.PostForm("card_definition_id"), 10, 32)
	if err != nil {
		redirectWithFlash(c, "/", "Missing required field: card_definition_id", "error")
		return
	}
	target := fmt.Sprintf("/cards/%d", definitionID)

	input := service.ItemInput{
		CardDefinitionID: uint(definitionID),
		Status:           model.ItemStatus(c.PostForm("status")),
		SerialNumber:     c.PostForm("serial_number"),
		Condition:        c.PostForm("condition"),
		Defects:          c.PostForm("defects"),
		PersonalGrade:    c.PostForm("personal_grade"),
		IsGraded:         formBool(c, "is_graded"),
		IsInTaiwan:       formBool(c, "is_in_taiwan"),
		Notes:            c.PostForm("notes"),
		CustomID:         c.PostForm("custom_id"),
		Acquisition:      formAcquisition(c),
		Grading:          formGradingAttempt(c),
		Disposition:      formDisposition(c),
	}

	if _, err := s.itemService.CreateItem(input); err != nil {
		if service.IsValidation(err) {
			redirectWithFlash(c, target, err.Error(), "error")
			return
		}
		log.Error("Failed to create inventory item from form", err, map[string]interface{}{
			"card_definition_id": definitionID,
		})
		redirectWithFlash(c, target, "Failed to add inventory item", "error")
		return
	}

	redirectWithFlash(c, target, "Inventory item added", "success")
}

// UpdateItemForm handles POST /web/inventory/:id.
func (s *Server) UpdateItemForm(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := s.itemService.GetItemByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.String(http.StatusNotFound, "inventory item not found")
			return
		}
		log.Error("Failed to load inventory item for form update", err, map[string]interface{}{
			"item_id": id,
		})
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	target := fmt.Sprintf("/cards/%d", item.CardDefinitionID)

	update := service.ItemUpdate{
		SerialNumber:  postFormPtr(c, "serial_number"),
		Condition:     postFormPtr(c, "condition"),
		Defects:       postFormPtr(c, "defects"),
		PersonalGrade: postFormPtr(c, "personal_grade"),
		Notes:         postFormPtr(c, "notes"),
		CustomID:      postFormPtr(c, "custom_id"),
		Acquisition:   formAcquisition(c),
		Grading:       formGradingAttempt(c),
		Disposition:   formDisposition(c),
	}
	if raw, ok := c.GetPostForm("status"); ok && raw != "" {
		status := model.ItemStatus(raw)
		update.Status = &status
	}
	if _, ok := c.GetPostForm("is_graded_submitted"); ok {
		isGraded := formBool(c, "is_graded")
		update.IsGraded = &isGraded
	}
	if _, ok := c.GetPostForm("is_in_taiwan_submitted"); ok {
		isInTaiwan := formBool(c, "is_in_taiwan")
		update.IsInTaiwan = &isInTaiwan
	}

	if _, err := s.itemService.UpdateItem(uint(id), update); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.String(http.StatusNotFound, "inventory item not found")
			return
		}
		if service.IsValidation(err) {
			redirectWithFlash(c, target, err.Error(), "error")
			return
		}
		log.Error("Failed to update inventory item from form", err, map[string]interface{}{
			"item_id": id,
		})
		redirectWithFlash(c, target, "Failed to update inventory item", "error")
		return
	}

	redirectWithFlash(c, target, "Inventory item updated", "success")
}

// ArchiveItemForm handles POST /web/inventory/:id/archive.
func (s *Server) ArchiveItemForm(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid item id")
		return
	}

	target := "/"
	if item, err := s.itemService.GetItemByID(uint(id)); err == nil {
		target = fmt.Sprintf("/cards/%d", item.CardDefinitionID)
	}

	if err := s.itemService.ArchiveItem(uint(id)); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.String(http.StatusNotFound, "inventory item not found")
			return
		}
		log.Error("Failed to archive inventory item from form", err, map[string]interface{}{
			"item_id": id,
		})
		redirectWithFlash(c, target, "Failed to archive inventory item", "error")
		return
	}

	redirectWithFlash(c, target, "Inventory item archived", "success")
}
