package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/repository"
	"github.com/yucheng/cardvault-backend/internal/db"
)

func setupDefinitionServiceTest(t *testing.T) CardDefinitionService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	definitionRepo := repository.NewCardDefinitionRepository(testDB)
	return NewCardDefinitionService(definitionRepo)
}

func sportInput() DefinitionInput {
	return DefinitionInput{
		CardType:   model.CardTypeSport,
		Year:       "2020",
		Brand:      "Topps",
		ImageURL:   "https://img.example.com/trout.jpg",
		Series:     "Chrome",
		PlayerName: "Mike Trout",
	}
}

func pokemonInput() DefinitionInput {
	return DefinitionInput{
		CardType:    model.CardTypePokemon,
		Year:        "1999",
		Brand:       "Wizards of the Coast",
		ImageURL:    "https://img.example.com/charizard.jpg",
		Series:      "Base Set",
		PokemonName: "Charizard",
		Language:    "English",
		Era:         "WOTC",
	}
}

func TestCreateDefinition_RequiredFields(t *testing.T) {
	definitionService := setupDefinitionServiceTest(t)

	tests := []struct {
		name    string
		mutate  func(*DefinitionInput)
		wantMsg string
	}{
		{
			name:    "Missing card_type",
			mutate:  func(in *DefinitionInput) { in.CardType = "" },
			wantMsg: "Missing required field: card_type",
		},
		{
			name:    "Missing year",
			mutate:  func(in *DefinitionInput) { in.Year = "" },
			wantMsg: "Missing required field: year",
		},
		{
			name:    "Missing brand",
			mutate:  func(in *DefinitionInput) { in.Brand = "" },
			wantMsg: "Missing required field: brand",
		},
		{
			name:    "Missing image_url",
			mutate:  func(in *DefinitionInput) { in.ImageURL = "" },
			wantMsg: "Missing required field: image_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := sportInput()
			tt.mutate(&input)

			definition, err := definitionService.CreateDefinition(input)
			assert.Nil(t, definition)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestCreateDefinition_InvalidCardType(t *testing.T) {
	definitionService := setupDefinitionServiceTest(t)

	input := sportInput()
	input.CardType = "yugioh"

	definition, err := definitionService.CreateDefinition(input)
	assert.Nil(t, definition)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "Invalid card_type. Must be one of: sport, pokemon", err.Error())
}

func TestCreateDefinition_VariantNameRules(t *testing.T) {
	definitionService := setupDefinitionServiceTest(t)

	sport := sportInput()
	sport.PlayerName = ""
	_, err := definitionService.CreateDefinition(sport)
	require.Error(t, err)
	assert.Equal(t, "Sport cards require player_name", err.Error())

	pokemon := pokemonInput()
	pokemon.PokemonName = ""
	_, err = definitionService.CreateDefinition(pokemon)
	require.Error(t, err)
	assert.Equal(t, "Pokemon cards require pokemon_name", err.Error())
}

func TestCreateDefinition_VariantExclusivity(t *testing.T) {
	definitionService := setupDefinitionServiceTest(t)

	// A sport payload carrying pokemon fields keeps only the sport variant.
	input := sportInput()
	input.PokemonName = "Pikachu"
	input.Language = "Japanese"

	definition, err := definitionService.CreateDefinition(input)
	require.NoError(t, err)
	require.NotNil(t, definition.Sport)
	assert.Equal(t, "Mike Trout", definition.Sport.PlayerName)
	assert.Nil(t, definition.Pokemon)

	// And the stored row comes back the same way.
	fetched, err := definitionService.GetDefinitionByID(definition.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Sport)
	assert.Nil(t, fetched.Pokemon)
}

func TestCreateDefinition_Pokemon(t *testing.T) {
	definitionService := setupDefinitionServiceTest(t)

	definition, err := definitionService.CreateDefinition(pokemonInput())
	require.NoError(t, err)
	assert.NotZero(t, definition.ID)
	assert.False(t, definition.Archived)
	require.NotNil(t, definition.Pokemon)
	assert.Equal(t, "Charizard", definition.Pokemon.PokemonName)
	assert.Equal(t, "English", definition.Pokemon.Language)
	assert.Equal(t, "WOTC", definition.Pokemon.Era)
	assert.Nil(t, definition.Sport)
}

func TestGetDefinitionByID_NotFound(t *testing.T) {
	definitionService := setupDefinitionServiceTest(t)

	definition, err := definitionService.GetDefinitionByID(9999)
	assert.Nil(t, definition)
	assert.ErrorIs(t, err, ErrDefinitionNotFound)
}

func TestListDefinitions_ExcludesArchived(t *testing.T) {
	definitionService := setupDefinitionServiceTest(t)

	kept, err := definitionService.CreateDefinition(sportInput())
	require.NoError(t, err)
	archived, err := definitionService.CreateDefinition(pokemonInput())
	require.NoError(t, err)

	require.NoError(t, definitionService.ArchiveDefinition(archived.ID))

	definitions, err := definitionService.ListDefinitions(ListDefinitionOptions{})
	require.NoError(t, err)
	require.Len(t, definitions, 1)
	assert.Equal(t, kept.ID, definitions[0].ID)
}

func TestListDefinitions_Filters(t *testing.T) {
	definitionService := setupDefinitionServiceTest(t)

	_, err := definitionService.CreateDefinition(sportInput())
	require.NoError(t, err)
	_, err = definitionService.CreateDefinition(pokemonInput())
	require.NoError(t, err)

	byType, err := definitionService.ListDefinitions(ListDefinitionOptions{CardType: model.CardTypePokemon})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, model.CardTypePokemon, byType[0].CardType)

	byBrand, err := definitionService.ListDefinitions(ListDefinitionOptions{Brand: "Topps"})
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	assert.Equal(t, "Topps", byBrand[0].Brand)

	bySearch, err := definitionService.ListDefinitions(ListDefinitionOptions{Search: "Charizard"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Charizard", bySearch[0].DisplayName())

	byName, err := definitionService.ListDefinitions(ListDefinitionOptions{Name: "Trout"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Mike Trout", byName[0].DisplayName())
}

func TestUpdateDefinition(t *testing.T) {
	definitionService := setupDefinitionServiceTest(t)

	definition, err := definitionService.CreateDefinition(sportInput())
	require.NoError(t, err)
	createdAt := definition.CreatedAt

	brand := "Panini"
	player := "Shohei Ohtani"
	updated, err := definitionService.UpdateDefinition(definition.ID, DefinitionUpdate{
		Brand:      &brand,
		PlayerName: &player,
	})
	require.NoError(t, err)
	assert.Equal(t, "Panini", updated.Brand)
	require.NotNil(t, updated.Sport)
	assert.Equal(t, "Shohei Ohtani", updated.Sport.PlayerName)
	assert.Equal(t, "2020", updated.Year)
	assert.WithinDuration(t, createdAt, updated.CreatedAt, time.Millisecond)
	assert.True(t, !updated.UpdatedAt.Before(createdAt))
}

func TestUpdateDefinition_CardTypeImmutable(t *testing.T) {
	definitionService := setupDefinitionServiceTest(t)

	definition, err := definitionService.CreateDefinition(sportInput())
	require.NoError(t, err)

	pokemon := model.CardTypePokemon
	updated, err := definitionService.UpdateDefinition(definition.ID, DefinitionUpdate{
		CardType: &pokemon,
	})
	assert.Nil(t, updated)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "card_type cannot be changed after creation", err.Error())
}

func TestUpdateDefinition_NotFound(t *testing.T) {
	definitionService := setupDefinitionServiceTest(t)

	brand := "Panini"
	updated, err := definitionService.UpdateDefinition(9999, DefinitionUpdate{Brand: &brand})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ErrDefinitionNotFound)
}

func TestArchiveDefinition(t *testing.T) {
	definitionService := setupDefinitionServiceTest(t)

	definition, err := definitionService.CreateDefinition(sportInput())
	require.NoError(t, err)

	require.NoError(t, definitionService.ArchiveDefinition(definition.ID))

	// Archiving again still succeeds.
	require.NoError(t, definitionService.ArchiveDefinition(definition.ID))

	// The record stays readable by id.
	fetched, err := definitionService.GetDefinitionByID(definition.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Archived)

	assert.ErrorIs(t, definitionService.ArchiveDefinition(9999), ErrDefinitionNotFound)
}
