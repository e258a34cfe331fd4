package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/db"
)

func setupDefinitionRepoTest(t *testing.T) CardDefinitionRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	return NewCardDefinitionRepository(testDB)
}

func sportDefinition() *model.CardDefinition {
	return &model.CardDefinition{
		CardType: model.CardTypeSport,
		Year:     "2020",
		Brand:    "Topps",
		ImageURL: "https://img.example.com/trout.jpg",
		Series:   "Chrome",
		Sport:    &model.SportDetails{PlayerName: "Mike Trout"},
	}
}

func pokemonDefinition() *model.CardDefinition {
	return &model.CardDefinition{
		CardType: model.CardTypePokemon,
		Year:     "1999",
		Brand:    "Wizards of the Coast",
		ImageURL: "https://img.example.com/charizard.jpg",
		Series:   "Base Set",
		Pokemon:  &model.PokemonDetails{PokemonName: "Charizard", Language: "English", Era: "WOTC"},
	}
}

func TestCardDefinitionRepository_CreateAndFind(t *testing.T) {
	definitionRepo := setupDefinitionRepoTest(t)

	definition := pokemonDefinition()
	require.NoError(t, definitionRepo.Create(definition))
	require.NotZero(t, definition.ID)

	found, err := definitionRepo.FindByID(definition.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CardTypePokemon, found.CardType)
	require.NotNil(t, found.Pokemon)
	assert.Equal(t, "Charizard", found.Pokemon.PokemonName)
	assert.Equal(t, "English", found.Pokemon.Language)

	// The other variant never comes back populated.
	assert.Nil(t, found.Sport)
}

func TestCardDefinitionRepository_BulkCreate(t *testing.T) {
	definitionRepo := setupDefinitionRepoTest(t)

	definitions := []model.CardDefinition{*sportDefinition(), *pokemonDefinition()}
	require.NoError(t, definitionRepo.BulkCreate(definitions, 100))

	found, err := definitionRepo.FindWithFilter(DefinitionFilter{})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestCardDefinitionRepository_FindWithFilter(t *testing.T) {
	definitionRepo := setupDefinitionRepoTest(t)

	require.NoError(t, definitionRepo.Create(sportDefinition()))
	require.NoError(t, definitionRepo.Create(pokemonDefinition()))

	tests := []struct {
		name   string
		filter DefinitionFilter
		want   int
	}{
		{name: "No filter", filter: DefinitionFilter{}, want: 2},
		{name: "By card type", filter: DefinitionFilter{CardType: model.CardTypeSport}, want: 1},
		{name: "By brand", filter: DefinitionFilter{Brand: "Topps"}, want: 1},
		{name: "By series", filter: DefinitionFilter{Series: "Base Set"}, want: 1},
		{name: "By year", filter: DefinitionFilter{Year: "2020"}, want: 1},
		{name: "Search by name", filter: DefinitionFilter{Search: "Charizard"}, want: 1},
		{name: "Search by series", filter: DefinitionFilter{Search: "Chrome"}, want: 1},
		{name: "Search no match", filter: DefinitionFilter{Search: "Jordan"}, want: 0},
		{name: "Search ignores case", filter: DefinitionFilter{Search: "cHaRiZaRd"}, want: 1},
		{name: "Search ignores case on series", filter: DefinitionFilter{Search: "CHROME"}, want: 1},
		{name: "Name across both variants", filter: DefinitionFilter{Name: "ar"}, want: 1},
		{name: "Name scoped to type", filter: DefinitionFilter{CardType: model.CardTypeSport, Name: "Trout"}, want: 1},
		{name: "Name ignores case", filter: DefinitionFilter{CardType: model.CardTypeSport, Name: "trout"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := definitionRepo.FindWithFilter(tt.filter)
			require.NoError(t, err)
			assert.Len(t, found, tt.want)
		})
	}
}

func TestCardDefinitionRepository_Update(t *testing.T) {
	definitionRepo := setupDefinitionRepoTest(t)

	definition := sportDefinition()
	require.NoError(t, definitionRepo.Create(definition))

	definition.Brand = "Panini"
	definition.Sport.PlayerName = "Shohei Ohtani"
	require.NoError(t, definitionRepo.Update(definition))

	found, err := definitionRepo.FindByID(definition.ID)
	require.NoError(t, err)
	assert.Equal(t, "Panini", found.Brand)
	require.NotNil(t, found.Sport)
	assert.Equal(t, "Shohei Ohtani", found.Sport.PlayerName)
}

func TestCardDefinitionRepository_Archive(t *testing.T) {
	definitionRepo := setupDefinitionRepoTest(t)

	definition := sportDefinition()
	require.NoError(t, definitionRepo.Create(definition))

	require.NoError(t, definitionRepo.Archive(definition.ID))

	found, err := definitionRepo.FindByID(definition.ID)
	require.NoError(t, err)
	assert.True(t, found.Archived)

	active, err := definitionRepo.FindWithFilter(DefinitionFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 0)

	require.NoError(t, definitionRepo.Archive(definition.ID))
	assert.ErrorIs(t, definitionRepo.Archive(9999), gorm.ErrRecordNotFound)
}

func TestCardDefinitionRepository_DistinctValues(t *testing.T) {
	definitionRepo := setupDefinitionRepoTest(t)

	require.NoError(t, definitionRepo.Create(sportDefinition()))
	second := sportDefinition()
	second.Year = "2021"
	require.NoError(t, definitionRepo.Create(second))
	require.NoError(t, definitionRepo.Create(pokemonDefinition()))

	years, err := definitionRepo.DistinctValues("year", DefinitionFilter{CardType: model.CardTypeSport})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2020", "2021"}, years)

	brands, err := definitionRepo.DistinctValues("brand", DefinitionFilter{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Topps", "Wizards of the Coast"}, brands)

	// Names from the other variant's rows never leak in.
	players, err := definitionRepo.DistinctValues("player_name", DefinitionFilter{CardType: model.CardTypeSport})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Mike Trout"}, players)

	// Unknown columns are rejected outright.
	_, err = definitionRepo.DistinctValues("archived; DROP TABLE card_definitions", DefinitionFilter{})
	assert.Error(t, err)
}
