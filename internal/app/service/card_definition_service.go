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
	ErrDefinitionNotFound = errors.New("card definition not found")
)

// DefinitionInput is a creation payload for a card definition. Fields map
// one-to-one onto the submitted form/JSON fields; the builder folds the
// name fields into the matching variant payload.
type DefinitionInput struct {
	CardType       model.CardType
	Year           string
	Brand          string
	ImageURL       string
	Series         string
	CardNumber     string
	InsertParallel string
	Note           string
	PlayerName     string
	PokemonName    string
	Language       string
	Era            string
}

// DefinitionUpdate is a partial update payload. Nil fields are left
// untouched in storage.
type DefinitionUpdate struct {
	CardType       *model.CardType
	Year           *string
	Brand          *string
	ImageURL       *string
	Series         *string
	CardNumber     *string
	InsertParallel *string
	Note           *string
	PlayerName     *string
	PokemonName    *string
	Language       *string
	Era            *string
}

// ListDefinitionOptions narrows definition listings.
type ListDefinitionOptions struct {
	Search   string
	CardType model.CardType
	Brand    string
	Series   string
	Year     string
	Name     string
}

func cardTypeList() string {
	names := make([]string, len(model.CardTypes))
	for i, t := range model.CardTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// validateDefinitionInput checks a full creation payload. First violation
// wins; the reason is returned as a ValidationError.
func validateDefinitionInput(input DefinitionInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"card_type", string(input.CardType)},
		{"year", input.Year},
		{"brand", input.Brand},
		{"image_url", input.ImageURL},
	}
	for _, field := range required {
		if field.value == "" {
			return validationf("Missing required field: %s", field.name)
		}
	}

	if !input.CardType.Valid() {
		return validationf("Invalid card_type. Must be one of: %s", cardTypeList())
	}

	switch input.CardType {
	case model.CardTypeSport:
		if input.PlayerName == "" {
			return validationf("Sport cards require player_name")
		}
	case model.CardTypePokemon:
		if input.PokemonName == "" {
			return validationf("Pokemon cards require pokemon_name")
		}
	}

	return nil
}

// build turns a validated creation payload into the persistable record.
// Exactly one variant payload is populated; the archived flag starts false.
func (input DefinitionInput) build() model.CardDefinition {
	definition := model.CardDefinition{
		CardType:       input.CardType,
		Year:           input.Year,
		Brand:          input.Brand,
		ImageURL:       input.ImageURL,
		Series:         input.Series,
		CardNumber:     input.CardNumber,
		InsertParallel: input.InsertParallel,
		Note:           input.Note,
		Archived:       false,
	}

	switch input.CardType {
	case model.CardTypeSport:
		definition.Sport = &model.SportDetails{PlayerName: input.PlayerName}
	case model.CardTypePokemon:
		definition.Pokemon = &model.PokemonDetails{
			PokemonName: input.PokemonName,
			Language:    input.Language,
			Era:         input.Era,
		}
	}

	return definition
}

// validateDefinitionUpdate checks a partial update against the stored
// record. The discriminant is immutable once a definition exists.
func validateDefinitionUpdate(existing *model.CardDefinition, update DefinitionUpdate) error {
	if update.CardType != nil {
		if !update.CardType.Valid() {
			return validationf("Invalid card_type. Must be one of: %s", cardTypeList())
		}
		if *update.CardType != existing.CardType {
			return validationf("card_type cannot be changed after creation")
		}
	}
	return nil
}

// applyDefinitionUpdate overwrites the supplied fields on the stored record
// and refreshes the update timestamp. Absent fields are left untouched.
func applyDefinitionUpdate(existing *model.CardDefinition, update DefinitionUpdate, now time.Time) {
	if update.Year != nil {
		existing.Year = *update.Year
	}
	if update.Brand != nil {
		existing.Brand = *update.Brand
	}
	if update.ImageURL != nil {
		existing.ImageURL = *update.ImageURL
	}
	if update.Series != nil {
		existing.Series = *update.Series
	}
	if update.CardNumber != nil {
		existing.CardNumber = *update.CardNumber
	}
	if update.InsertParallel != nil {
		existing.InsertParallel = *update.InsertParallel
	}
	if update.Note != nil {
		existing.Note = *update.Note
	}

	switch existing.CardType {
	case model.CardTypeSport:
		if update.PlayerName != nil {
			if existing.Sport == nil {
				existing.Sport = &model.SportDetails{}
			}
			existing.Sport.PlayerName = *update.PlayerName
		}
	case model.CardTypePokemon:
		if existing.Pokemon == nil {
			existing.Pokemon = &model.PokemonDetails{}
		}
		if update.PokemonName != nil {
			existing.Pokemon.PokemonName = *update.PokemonName
		}
		if update.Language != nil {
			existing.Pokemon.Language = *update.Language
		}
		if update.Era != nil {
			existing.Pokemon.Era = *update.Era
		}
	}

	existing.UpdatedAt = now
}

type CardDefinitionService interface {
	ListDefinitions(opts ListDefinitionOptions) ([]model.CardDefinition, error)
	GetDefinitionByID(id uint) (*model.CardDefinition, error)
	CreateDefinition(input DefinitionInput) (*model.CardDefinition, error)
	UpdateDefinition(id uint, update DefinitionUpdate) (*model.CardDefinition, error)
	ArchiveDefinition(id uint) error
}

type cardDefinitionService struct {
	definitionRepo repository.CardDefinitionRepository
}

func NewCardDefinitionService(definitionRepo repository.CardDefinitionRepository) CardDefinitionService {
	return &cardDefinitionService{definitionRepo: definitionRepo}
}

func (s *cardDefinitionService) ListDefinitions(opts ListDefinitionOptions) ([]model.CardDefinition, error) {
	logger.Debug("Listing card definitions", map[string]interface{}{
		"search":    opts.Search,
		"card_type": opts.CardType,
		"brand":     opts.Brand,
	})

	definitions, err := s.definitionRepo.FindWithFilter(repository.DefinitionFilter{
		Search:     opts.Search,
		CardType:   opts.CardType,
		Brand:      opts.Brand,
		Series:     opts.Series,
		Year:       opts.Year,
		Name:       opts.Name,
		ActiveOnly: true,
	})
	if err != nil {
		logger.Error("Failed to list card definitions", err)
		return nil, err
	}

	logger.Info("Card definitions listed", map[string]interface{}{
		"count": len(definitions),
	})
	return definitions, nil
}

func (s *cardDefinitionService) GetDefinitionByID(id uint) (*model.CardDefinition, error) {
	definition, err := s.definitionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Card definition not found", map[string]interface{}{
				"definition_id": id,
			})
			return nil, ErrDefinitionNotFound
		}
		logger.Error("Failed to fetch card definition", err, map[string]interface{}{
			"definition_id": id,
		})
		return nil, err
	}
	return definition, nil
}

func (s *cardDefinitionService) CreateDefinition(input DefinitionInput) (*model.CardDefinition, error) {
	if err := validateDefinitionInput(input); err != nil {
		logger.Warn("Card definition payload rejected", map[string]interface{}{
			"reason": err.Error(),
		})
		return nil, err
	}

	definition := input.build()

	logger.Info("Creating card definition", map[string]interface{}{
		"card_type": definition.CardType,
		"brand":     definition.Brand,
		"year":      definition.Year,
	})

	if err := s.definitionRepo.Create(&definition); err != nil {
		logger.Error("Failed to create card definition", err, map[string]interface{}{
			"card_type": definition.CardType,
			"brand":     definition.Brand,
		})
		return nil, err
	}

	logger.Info("Card definition created successfully", map[string]interface{}{
		"definition_id": definition.ID,
	})
	return &definition, nil
}

func (s *cardDefinitionService) UpdateDefinition(id uint, update DefinitionUpdate) (*model.CardDefinition, error) {
	existing, err := s.definitionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: card definition not found", map[string]interface{}{
				"definition_id": id,
			})
			return nil, ErrDefinitionNotFound
		}
		logger.Error("Failed to check card definition existence", err, map[string]interface{}{
			"definition_id": id,
		})
		return nil, err
	}

	if err := validateDefinitionUpdate(existing, update); err != nil {
		logger.Warn("Card definition update rejected", map[string]interface{}{
			"definition_id": id,
			"reason":        err.Error(),
		})
		return nil, err
	}

	applyDefinitionUpdate(existing, update, time.Now().UTC())

	if err := s.definitionRepo.Update(existing); err != nil {
		logger.Error("Failed to update card definition", err, map[string]interface{}{
			"definition_id": id,
		})
		return nil, err
	}

	logger.Info("Card definition updated successfully", map[string]interface{}{
		"definition_id": id,
	})
	return existing, nil
}

func (s *cardDefinitionService) ArchiveDefinition(id uint) error {
	logger.Info("Archiving card definition", map[string]interface{}{
		"definition_id": id,
	})

	if err := s.definitionRepo.Archive(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot archive: card definition not found", map[string]interface{}{
				"definition_id": id,
			})
			return ErrDefinitionNotFound
		}
		logger.Error("Failed to archive card definition", err, map[string]interface{}{
			"definition_id": id,
		})
		return err
	}

	logger.Info("Card definition archived successfully", map[string]interface{}{
		"definition_id": id,
	})
	return nil
}
