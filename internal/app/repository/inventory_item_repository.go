package repository

import (
	"gorm.io/gorm"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/pkg/logger"
)

// ItemFilter narrows inventory listings.
type ItemFilter struct {
	DefinitionID *uint
	Status       model.ItemStatus
	ActiveOnly   bool
}

// StatusCount is one row of the grouped dashboard aggregation.
type StatusCount struct {
	CardDefinitionID uint             `gorm:"column:card_definition_id"`
	Status           model.ItemStatus `gorm:"column:status"`
	Count            int64            `gorm:"column:count"`
}

type InventoryItemRepository interface {
	Create(item *model.InventoryItem) error
	FindByID(id uint) (*model.InventoryItem, error)
	FindWithFilter(filter ItemFilter) ([]model.InventoryItem, error)
	Update(item *model.InventoryItem) error
	Archive(id uint) error
	CountByStatus() ([]StatusCount, error)
}

type inventoryItemRepository struct {
	db *gorm.DB
}

func NewInventoryItemRepository(db *gorm.DB) InventoryItemRepository {
	return &inventoryItemRepository{db: db}
}

func (r *inventoryItemRepository) Create(item *model.InventoryItem) error {
	logger.Debug("Creating inventory item in database", map[string]interface{}{
		"card_definition_id": item.CardDefinitionID,
		"status":             item.Status,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create inventory item in database", err, map[string]interface{}{
			"card_definition_id": item.CardDefinitionID,
		})
		return err
	}

	logger.Debug("Inventory item created in database", map[string]interface{}{
		"item_id": item.ID,
	})
	return nil
}

func (r *inventoryItemRepository) FindByID(id uint) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := r.db.First(&item, id).Error; err != nil {
		logger.Error("Failed to find inventory item by ID in database", err, map[string]interface{}{
			"item_id": id,
		})
		return nil, err
	}
	return &item, nil
}

func (r *inventoryItemRepository) FindWithFilter(filter ItemFilter) ([]model.InventoryItem, error) {
	logger.Debug("Finding inventory items with filter", map[string]interface{}{
		"definition_id": filter.DefinitionID,
		"status":        filter.Status,
		"active_only":   filter.ActiveOnly,
	})

	query := r.db.Model(&model.InventoryItem{})
	if filter.ActiveOnly {
		query = query.Scopes(active)
	}
	if filter.DefinitionID != nil {
		query = query.Where("card_definition_id = ?", *filter.DefinitionID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var items []model.InventoryItem
	if err := query.Order("inventory_items.id ASC").Find(&items).Error; err != nil {
		logger.Error("Failed to find inventory items with filter", err, map[string]interface{}{
			"definition_id": filter.DefinitionID,
		})
		return nil, err
	}

	logger.Debug("Inventory items found with filter", map[string]interface{}{
		"count": len(items),
	})
	return items, nil
}

func (r *inventoryItemRepository) Update(item *model.InventoryItem) error {
	logger.Debug("Updating inventory item in database", map[string]interface{}{
		"item_id": item.ID,
		"status":  item.Status,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update inventory item in database", err, map[string]interface{}{
			"item_id": item.ID,
		})
		return err
	}
	return nil
}

// Archive sets the soft-delete flag. Idempotent for existing items; a
// missing id reports ErrRecordNotFound.
func (r *inventoryItemRepository) Archive(id uint) error {
	result := r.db.Model(&model.InventoryItem{}).Where("id = ?", id).Update("archived", true)
	if result.Error != nil {
		logger.Error("Failed to archive inventory item in database", result.Error, map[string]interface{}{
			"item_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Inventory item archived in database", map[string]interface{}{
		"item_id": id,
	})
	return nil
}

// CountByStatus groups active items by definition and status. Statuses a
// definition has no items in are absent here; the service zero-fills them.
func (r *inventoryItemRepository) CountByStatus() ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.Model(&model.InventoryItem{}).
		Scopes(active).
		Select("card_definition_id, status, COUNT(*) AS count").
		Group("card_definition_id").
		Group("status").
		Find(&counts).Error
	if err != nil {
		logger.Error("Failed to count inventory items by status", err, nil)
		return nil, err
	}

	logger.Debug("Inventory items counted by status", map[string]interface{}{
		"rows": len(counts),
	})
	return counts, nil
}
