package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/repository"
	"github.com/yucheng/cardvault-backend/internal/db"
)

type dashboardFixture struct {
	dashboardService  DashboardService
	definitionService CardDefinitionService
	itemService       InventoryItemService
}

func setupDashboardTest(t *testing.T) dashboardFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	definitionRepo := repository.NewCardDefinitionRepository(testDB)
	itemRepo := repository.NewInventoryItemRepository(testDB)

	return dashboardFixture{
		dashboardService:  NewDashboardService(definitionRepo, itemRepo),
		definitionService: NewCardDefinitionService(definitionRepo),
		itemService:       NewInventoryItemService(itemRepo),
	}
}

func (f dashboardFixture) addItem(t *testing.T, definitionID uint, status model.ItemStatus) *model.InventoryItem {
	t.Helper()
	item, err := f.itemService.CreateItem(ItemInput{
		CardDefinitionID: definitionID,
		Status:           status,
	})
	require.NoError(t, err)
	return item
}

func TestDashboardOverview_Counts(t *testing.T) {
	f := setupDashboardTest(t)

	withItems, err := f.definitionService.CreateDefinition(sportInput())
	require.NoError(t, err)
	empty, err := f.definitionService.CreateDefinition(pokemonInput())
	require.NoError(t, err)

	f.addItem(t, withItems.ID, model.StatusInStock)
	f.addItem(t, withItems.ID, model.StatusInStock)
	f.addItem(t, withItems.ID, model.StatusSold)

	summaries, err := f.dashboardService.Overview(ListDefinitionOptions{})
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := make(map[uint]DefinitionSummary)
	for _, summary := range summaries {
		byID[summary.ID] = summary
	}

	counts := byID[withItems.ID].Counts
	assert.Equal(t, int64(2), counts.InStock)
	assert.Equal(t, int64(0), counts.Shipping)
	assert.Equal(t, int64(0), counts.Grading)
	assert.Equal(t, int64(1), counts.Sold)
	assert.Equal(t, int64(3), counts.Total())

	// A definition with no items still appears, zero-filled.
	counts = byID[empty.ID].Counts
	assert.Equal(t, int64(0), counts.Total())
}

func TestDashboardOverview_ExcludesArchivedItems(t *testing.T) {
	f := setupDashboardTest(t)

	definition, err := f.definitionService.CreateDefinition(sportInput())
	require.NoError(t, err)

	f.addItem(t, definition.ID, model.StatusInStock)
	archived := f.addItem(t, definition.ID, model.StatusInStock)
	require.NoError(t, f.itemService.ArchiveItem(archived.ID))

	summaries, err := f.dashboardService.Overview(ListDefinitionOptions{})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(1), summaries[0].Counts.InStock)
}

func TestDashboardOverview_ExcludesArchivedDefinitions(t *testing.T) {
	f := setupDashboardTest(t)

	kept, err := f.definitionService.CreateDefinition(sportInput())
	require.NoError(t, err)
	archived, err := f.definitionService.CreateDefinition(pokemonInput())
	require.NoError(t, err)
	require.NoError(t, f.definitionService.ArchiveDefinition(archived.ID))

	summaries, err := f.dashboardService.Overview(ListDefinitionOptions{})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, kept.ID, summaries[0].ID)
}

func TestDashboardOverview_Filtered(t *testing.T) {
	f := setupDashboardTest(t)

	sport, err := f.definitionService.CreateDefinition(sportInput())
	require.NoError(t, err)
	_, err = f.definitionService.CreateDefinition(pokemonInput())
	require.NoError(t, err)

	f.addItem(t, sport.ID, model.StatusGrading)

	summaries, err := f.dashboardService.Overview(ListDefinitionOptions{
		CardType: model.CardTypeSport,
	})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, sport.ID, summaries[0].ID)
	assert.Equal(t, int64(1), summaries[0].Counts.Grading)
}
