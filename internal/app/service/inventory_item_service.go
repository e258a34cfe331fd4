package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/repository"
	"github.com/yucheng/cardvault-backend/pkg/logger"
)

var (
	ErrItemNotFound = errors.New("inventory item not found")
)

// ItemInput is a creation payload for an inventory item.
type ItemInput struct {
	CardDefinitionID uint
	Status           model.ItemStatus
	SerialNumber     string
	Condition        string
	Defects          string
	PersonalGrade    string
	IsGraded         bool
	IsInTaiwan       bool
	Notes            string
	CustomID         string
	Acquisition      *model.Acquisition
	Grading          []model.GradingAttempt
	Disposition      *model.Disposition
}

// ItemUpdate is a partial update payload. Nil fields are left untouched.
// Grading carries only new attempts; they are appended after the stored
// history, never replacing it.
type ItemUpdate struct {
	Status        *model.ItemStatus
	SerialNumber  *string
	Condition     *string
	Defects       *string
	PersonalGrade *string
	IsGraded      *bool
	IsInTaiwan    *bool
	Notes         *string
	CustomID      *string
	Acquisition   *model.Acquisition
	Grading       []model.GradingAttempt
	Disposition   *model.Disposition
}

func itemStatusList() string {
	names := make([]string, len(model.ItemStatuses))
	for i, s := range model.ItemStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// validateItemInput checks a creation payload. The disposition rule reads
// the submitted status only: the payload has to be self-consistent.
func validateItemInput(input ItemInput) error {
	if input.CardDefinitionID == 0 {
		return validationf("Missing required field: card_definition_id")
	}
	if input.Status != "" && !input.Status.Valid() {
		return validationf("Invalid status. Must be one of: %s", itemStatusList())
	}
	if input.Disposition != nil && input.Status != model.StatusSold {
		return validationf("Disposition can only be set when status is 'sold'")
	}
	return nil
}

// validateItemUpdate checks a partial update payload. The disposition rule
// deliberately ignores the stored status: an update that carries a
// disposition must itself say status=sold, even when the item already is.
func validateItemUpdate(update ItemUpdate) error {
	if update.Status != nil && !update.Status.Valid() {
		return validationf("Invalid status. Must be one of: %s", itemStatusList())
	}
	if update.Disposition != nil && (update.Status == nil || *update.Status != model.StatusSold) {
		return validationf("Disposition can only be set when status is 'sold'")
	}
	return nil
}

// build turns a validated creation payload into the persistable record.
// Status defaults to in_stock, both timestamps are stamped to the same
// instant and the grading history starts as an empty sequence.
func (input ItemInput) build(now time.Time) model.InventoryItem {
	item := model.InventoryItem{
		CardDefinitionID: input.CardDefinitionID,
		Status:           input.Status,
		SerialNumber:     input.SerialNumber,
		Condition:        input.Condition,
		Defects:          input.Defects,
		PersonalGrade:    input.PersonalGrade,
		IsGraded:         input.IsGraded,
		IsInTaiwan:       input.IsInTaiwan,
		Notes:            input.Notes,
		CustomID:         input.CustomID,
		Acquisition:      input.Acquisition,
		Grading:          input.Grading,
		Disposition:      input.Disposition,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if item.Status == "" {
		item.Status = model.StatusInStock
	}
	if item.Grading == nil {
		item.Grading = []model.GradingAttempt{}
	}
	return item
}

// applyItemUpdate merges a validated partial update into the stored record.
// Supplied fields replace the prior value; grading attempts are appended
// after the stored history in submission order (no deduplication); the
// update timestamp is always refreshed. The definition reference is never
// touched.
func applyItemUpdate(existing *model.InventoryItem, update ItemUpdate, now time.Time) {
	if update.Status != nil {
		existing.Status = *update.Status
	}
	if update.SerialNumber != nil {
		existing.SerialNumber = *update.SerialNumber
	}
	if update.Condition != nil {
		existing.Condition = *update.Condition
	}
	if update.Defects != nil {
		existing.Defects = *update.Defects
	}
	if update.PersonalGrade != nil {
		existing.PersonalGrade = *update.PersonalGrade
	}
	if update.IsGraded != nil {
		existing.IsGraded = *update.IsGraded
	}
	if update.IsInTaiwan != nil {
		existing.IsInTaiwan = *update.IsInTaiwan
	}
	if update.Notes != nil {
		existing.Notes = *update.Notes
	}
	if update.CustomID != nil {
		existing.CustomID = *update.CustomID
	}
	if update.Acquisition != nil {
		existing.Acquisition = update.Acquisition
	}
	if update.Disposition != nil {
		existing.Disposition = update.Disposition
	}
	if update.Grading != nil {
		existing.Grading = append(existing.Grading, update.Grading...)
	}
	existing.UpdatedAt = now
}

type InventoryItemService interface {
	ListItems(definitionID *uint) ([]model.InventoryItem, error)
	GetItemByID(id uint) (*model.InventoryItem, error)
	CreateItem(input ItemInput) (*model.InventoryItem, error)
	UpdateItem(id uint, update ItemUpdate) (*model.InventoryItem, error)
	ArchiveItem(id uint) error
}

type inventoryItemService struct {
	itemRepo repository.InventoryItemRepository
}

func NewInventoryItemService(itemRepo repository.InventoryItemRepository) InventoryItemService {
	return &inventoryItemService{itemRepo: itemRepo}
}

func (s *inventoryItemService) ListItems(definitionID *uint) ([]model.InventoryItem, error) {
	logger.Debug("Listing inventory items", map[string]interface{}{
		"definition_id": definitionID,
	})

	items, err := s.itemRepo.FindWithFilter(repository.ItemFilter{
		DefinitionID: definitionID,
		ActiveOnly:   true,
	})
	if err != nil {
		logger.Error("Failed to list inventory items", err)
		return nil, err
	}

	logger.Info("Inventory items listed", map[string]interface{}{
		"count": len(items),
	})
	return items, nil
}

func (s *inventoryItemService) GetItemByID(id uint) (*model.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Inventory item not found", map[string]interface{}{
				"item_id": id,
			})
			return nil, ErrItemNotFound
		}
		logger.Error("Failed to fetch inventory item", err, map[string]interface{}{
			"item_id": id,
		})
		return nil, err
	}
	return item, nil
}

func (s *inventoryItemService) CreateItem(input ItemInput) (*model.InventoryItem, error) {
	if err := validateItemInput(input); err != nil {
		logger.Warn("Inventory item payload rejected", map[string]interface{}{
			"reason": err.Error(),
		})
		return nil, err
	}

	item := input.build(time.Now().UTC())

	logger.Info("Creating inventory item", map[string]interface{}{
		"card_definition_id": item.CardDefinitionID,
		"status":             item.Status,
	})

	if err := s.itemRepo.Create(&item); err != nil {
		logger.Error("Failed to create inventory item", err, map[string]interface{}{
			"card_definition_id": item.CardDefinitionID,
		})
		return nil, err
	}

	logger.Info("Inventory item created successfully", map[string]interface{}{
		"item_id": item.ID,
	})
	return &item, nil
}

func (s *inventoryItemService) UpdateItem(id uint, update ItemUpdate) (*model.InventoryItem, error) {
	existing, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: inventory item not found", map[string]interface{}{
				"item_id": id,
			})
			return nil, ErrItemNotFound
		}
		logger.Error("Failed to check inventory item existence", err, map[string]interface{}{
			"item_id": id,
		})
		return nil, err
	}

	if err := validateItemUpdate(update); err != nil {
		logger.Warn("Inventory item update rejected", map[string]interface{}{
			"item_id": id,
			"reason":  err.Error(),
		})
		return nil, err
	}

	applyItemUpdate(existing, update, time.Now().UTC())

	if err := s.itemRepo.Update(existing); err != nil {
		logger.Error("Failed to update inventory item", err, map[string]interface{}{
			"item_id": id,
		})
		return nil, err
	}

	logger.Info("Inventory item updated successfully", map[string]interface{}{
		"item_id": id,
		"status":  existing.Status,
	})
	return existing, nil
}

func (s *inventoryItemService) ArchiveItem(id uint) error {
	logger.Info("Archiving inventory item", map[string]interface{}{
		"item_id": id,
	})

	if err := s.itemRepo.Archive(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot archive: inventory item not found", map[string]interface{}{
				"item_id": id,
			})
			return ErrItemNotFound
		}
		logger.Error("Failed to archive inventory item", err, map[string]interface{}{
			"item_id": id,
		})
		return err
	}

	logger.Info("Inventory item archived successfully", map[string]interface{}{
		"item_id": id,
	})
	return nil
}
