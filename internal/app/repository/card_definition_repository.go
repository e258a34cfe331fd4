package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/pkg/logger"
)

// DefinitionFilter narrows definition listings. Zero values mean "no
// restriction" for that dimension.
type DefinitionFilter struct {
	Search     string // free-text search across name/brand/series/insert fields
	CardType   model.CardType
	Brand      string
	Series     string
	Year       string
	Name       string // player/pokemon name, matched per CardType
	ActiveOnly bool
}

// Columns that DistinctValues may be asked for. Guarding the set keeps the
// column name out of caller control.
var distinctColumns = map[string]bool{
	"card_type":    true,
	"brand":        true,
	"series":       true,
	"year":         true,
	"player_name":  true,
	"pokemon_name": true,
}

type CardDefinitionRepository interface {
	Create(definition *model.CardDefinition) error
	BulkCreate(definitions []model.CardDefinition, batchSize int) error
	FindByID(id uint) (*model.CardDefinition, error)
	FindWithFilter(filter DefinitionFilter) ([]model.CardDefinition, error)
	Update(definition *model.CardDefinition) error
	Archive(id uint) error
	DistinctValues(column string, filter DefinitionFilter) ([]string, error)
}

type cardDefinitionRepository struct {
	db *gorm.DB
}

func NewCardDefinitionRepository(db *gorm.DB) CardDefinitionRepository {
	return &cardDefinitionRepository{db: db}
}

func (r *cardDefinitionRepository) Create(definition *model.CardDefinition) error {
	logger.Debug("Creating card definition in database", map[string]interface{}{
		"card_type": definition.CardType,
		"brand":     definition.Brand,
		"year":      definition.Year,
	})

	if err := r.db.Create(definition).Error; err != nil {
		logger.Error("Failed to create card definition in database", err, map[string]interface{}{
			"card_type": definition.CardType,
			"brand":     definition.Brand,
		})
		return err
	}

	logger.Debug("Card definition created in database", map[string]interface{}{
		"definition_id": definition.ID,
	})
	return nil
}

// BulkCreate inserts definitions in batches. Used by the import tool.
func (r *cardDefinitionRepository) BulkCreate(definitions []model.CardDefinition, batchSize int) error {
	logger.Info("Bulk creating card definitions in database", map[string]interface{}{
		"count":      len(definitions),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(definitions, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create card definitions in database", err, map[string]interface{}{
			"count": len(definitions),
		})
		return err
	}
	return nil
}

func (r *cardDefinitionRepository) FindByID(id uint) (*model.CardDefinition, error) {
	var definition model.CardDefinition
	if err := r.db.First(&definition, id).Error; err != nil {
		logger.Error("Failed to find card definition by ID in database", err, map[string]interface{}{
			"definition_id": id,
		})
		return nil, err
	}
	return &definition, nil
}

func (r *cardDefinitionRepository) applyFilter(query *gorm.DB, filter DefinitionFilter) *gorm.DB {
	if filter.ActiveOnly {
		query = query.Scopes(active)
	}

	if filter.Search != "" {
		// LOWER on both sides keeps matching case-insensitive on postgres,
		// where plain LIKE is case-sensitive.
		like := fmt.Sprintf("%%%s%%", strings.ToLower(filter.Search))
		query = query.Where(
			"LOWER(player_name) LIKE ? OR LOWER(pokemon_name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(series) LIKE ? OR LOWER(insert_parallel) LIKE ?",
			like, like, like, like, like,
		)
	}

	if filter.CardType != "" {
		query = query.Where("card_type = ?", filter.CardType)
	}
	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}
	if filter.Series != "" {
		query = query.Where("series = ?", filter.Series)
	}
	if filter.Year != "" {
		query = query.Where("year = ?", filter.Year)
	}

	if filter.Name != "" {
		like := fmt.Sprintf("%%%s%%", strings.ToLower(filter.Name))
		switch filter.CardType {
		case model.CardTypeSport:
			query = query.Where("LOWER(player_name) LIKE ?", like)
		case model.CardTypePokemon:
			query = query.Where("LOWER(pokemon_name) LIKE ?", like)
		default:
			query = query.Where("LOWER(player_name) LIKE ? OR LOWER(pokemon_name) LIKE ?", like, like)
		}
	}

	return query
}

func (r *cardDefinitionRepository) FindWithFilter(filter DefinitionFilter) ([]model.CardDefinition, error) {
	logger.Debug("Finding card definitions with filter", map[string]interface{}{
		"search":      filter.Search,
		"card_type":   filter.CardType,
		"brand":       filter.Brand,
		"series":      filter.Series,
		"year":        filter.Year,
		"name":        filter.Name,
		"active_only": filter.ActiveOnly,
	})

	query := r.applyFilter(r.db.Model(&model.CardDefinition{}), filter)

	var definitions []model.CardDefinition
	if err := query.Order("card_definitions.id ASC").Find(&definitions).Error; err != nil {
		logger.Error("Failed to find card definitions with filter", err, map[string]interface{}{
			"search":    filter.Search,
			"card_type": filter.CardType,
		})
		return nil, err
	}

	logger.Debug("Card definitions found with filter", map[string]interface{}{
		"count": len(definitions),
	})
	return definitions, nil
}

func (r *cardDefinitionRepository) Update(definition *model.CardDefinition) error {
	logger.Debug("Updating card definition in database", map[string]interface{}{
		"definition_id": definition.ID,
	})

	if err := r.db.Save(definition).Error; err != nil {
		logger.Error("Failed to update card definition in database", err, map[string]interface{}{
			"definition_id": definition.ID,
		})
		return err
	}
	return nil
}

// Archive sets the soft-delete flag. Setting it again on an already
// archived definition succeeds; a missing id reports ErrRecordNotFound.
func (r *cardDefinitionRepository) Archive(id uint) error {
	result := r.db.Model(&model.CardDefinition{}).Where("id = ?", id).Update("archived", true)
	if result.Error != nil {
		logger.Error("Failed to archive card definition in database", result.Error, map[string]interface{}{
			"definition_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Card definition archived in database", map[string]interface{}{
		"definition_id": id,
	})
	return nil
}

func (r *cardDefinitionRepository) DistinctValues(column string, filter DefinitionFilter) ([]string, error) {
	if !distinctColumns[column] {
		return nil, fmt.Errorf("distinct values not supported for column %q", column)
	}

	query := r.applyFilter(r.db.Model(&model.CardDefinition{}), filter).
		Where(fmt.Sprintf("%s IS NOT NULL", column))

	var values []string
	if err := query.Distinct().Pluck(column, &values).Error; err != nil {
		logger.Error("Failed to fetch distinct values", err, map[string]interface{}{
			"column": column,
		})
		return nil, err
	}
	return values, nil
}
