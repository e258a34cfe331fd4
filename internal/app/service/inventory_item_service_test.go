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

func setupItemServiceTest(t *testing.T) (InventoryItemService, uint) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	definitionRepo := repository.NewCardDefinitionRepository(testDB)
	definitionService := NewCardDefinitionService(definitionRepo)

	definition, err := definitionService.CreateDefinition(sportInput())
	require.NoError(t, err)

	itemRepo := repository.NewInventoryItemRepository(testDB)
	return NewInventoryItemService(itemRepo), definition.ID
}

func TestCreateItem_RequiresDefinitionID(t *testing.T) {
	itemService, _ := setupItemServiceTest(t)

	item, err := itemService.CreateItem(ItemInput{})
	assert.Nil(t, item)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "Missing required field: card_definition_id", err.Error())
}

func TestCreateItem_InvalidStatus(t *testing.T) {
	itemService, definitionID := setupItemServiceTest(t)

	item, err := itemService.CreateItem(ItemInput{
		CardDefinitionID: definitionID,
		Status:           "lost",
	})
	assert.Nil(t, item)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "Invalid status. Must be one of: in_stock, shipping, grading, sold", err.Error())
}

func TestCreateItem_DispositionRequiresSold(t *testing.T) {
	itemService, definitionID := setupItemServiceTest(t)

	disposition := &model.Disposition{Date: "2024-03-01", Revenue: 150}

	tests := []struct {
		name   string
		status model.ItemStatus
		wantOK bool
	}{
		{name: "No status", status: "", wantOK: false},
		{name: "In stock", status: model.StatusInStock, wantOK: false},
		{name: "Sold", status: model.StatusSold, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := itemService.CreateItem(ItemInput{
				CardDefinitionID: definitionID,
				Status:           tt.status,
				Disposition:      disposition,
			})

			if tt.wantOK {
				require.NoError(t, err)
				require.NotNil(t, item.Disposition)
				assert.Equal(t, 150.0, item.Disposition.Revenue)
			} else {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				assert.Equal(t, "Disposition can only be set when status is 'sold'", err.Error())
			}
		})
	}
}

func TestCreateItem_Defaults(t *testing.T) {
	itemService, definitionID := setupItemServiceTest(t)

	item, err := itemService.CreateItem(ItemInput{CardDefinitionID: definitionID})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInStock, item.Status)
	assert.NotNil(t, item.Grading)
	assert.Len(t, item.Grading, 0)
	assert.False(t, item.Archived)
	assert.Equal(t, item.CreatedAt, item.UpdatedAt)
}

func TestCreateItem_WithAcquisition(t *testing.T) {
	itemService, definitionID := setupItemServiceTest(t)

	item, err := itemService.CreateItem(ItemInput{
		CardDefinitionID: definitionID,
		SerialNumber:     "12/99",
		Condition:        "NM",
		Acquisition: &model.Acquisition{
			Date:      "2024-01-15",
			Price:     120,
			Shipping:  5,
			Tax:       8.4,
			TotalCost: 133.4,
			Source:    "eBay",
			Payer:     "me",
		},
	})
	require.NoError(t, err)

	fetched, err := itemService.GetItemByID(item.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Acquisition)
	assert.Equal(t, 133.4, fetched.Acquisition.TotalCost)
	assert.Equal(t, "eBay", fetched.Acquisition.Source)
	assert.Equal(t, "12/99", fetched.SerialNumber)
}

func TestUpdateItem_GradingAppends(t *testing.T) {
	itemService, definitionID := setupItemServiceTest(t)

	item, err := itemService.CreateItem(ItemInput{
		CardDefinitionID: definitionID,
		Grading: []model.GradingAttempt{
			{Type: "PSA", Fee: 25, Result: "PSA 8"},
			{Type: "BGS", Fee: 30, Result: "BGS 8.5"},
		},
	})
	require.NoError(t, err)

	updated, err := itemService.UpdateItem(item.ID, ItemUpdate{
		Grading: []model.GradingAttempt{{Type: "PSA", Fee: 50, Result: "PSA 9"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Grading, 3)
	assert.Equal(t, "PSA 8", updated.Grading[0].Result)
	assert.Equal(t, "BGS 8.5", updated.Grading[1].Result)
	assert.Equal(t, "PSA 9", updated.Grading[2].Result)

	// A second update keeps appending, no deduplication.
	updated, err = itemService.UpdateItem(item.ID, ItemUpdate{
		Grading: []model.GradingAttempt{{Type: "PSA", Fee: 50, Result: "PSA 9"}},
	})
	require.NoError(t, err)
	assert.Len(t, updated.Grading, 4)

	// An update without grading leaves the history alone.
	notes := "double slab"
	updated, err = itemService.UpdateItem(item.ID, ItemUpdate{Notes: &notes})
	require.NoError(t, err)
	assert.Len(t, updated.Grading, 4)
}

func TestUpdateItem_DispositionRequiresSoldInPayload(t *testing.T) {
	itemService, definitionID := setupItemServiceTest(t)

	sold := model.StatusSold
	item, err := itemService.CreateItem(ItemInput{
		CardDefinitionID: definitionID,
		Status:           sold,
	})
	require.NoError(t, err)

	// The stored status is already sold, but the update payload itself
	// has to say so.
	updated, err := itemService.UpdateItem(item.ID, ItemUpdate{
		Disposition: &model.Disposition{Date: "2024-03-01", Revenue: 200},
	})
	assert.Nil(t, updated)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "Disposition can only be set when status is 'sold'", err.Error())

	updated, err = itemService.UpdateItem(item.ID, ItemUpdate{
		Status:      &sold,
		Disposition: &model.Disposition{Date: "2024-03-01", Revenue: 200, IncomeReceiver: "me"},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Disposition)
	assert.Equal(t, 200.0, updated.Disposition.Revenue)
}

func TestUpdateItem_RefreshesTimestamp(t *testing.T) {
	itemService, definitionID := setupItemServiceTest(t)

	item, err := itemService.CreateItem(ItemInput{CardDefinitionID: definitionID})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	shipping := model.StatusShipping
	updated, err := itemService.UpdateItem(item.ID, ItemUpdate{Status: &shipping})
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipping, updated.Status)
	assert.True(t, updated.UpdatedAt.After(item.CreatedAt))
	assert.WithinDuration(t, item.CreatedAt, updated.CreatedAt, time.Millisecond)
	assert.Equal(t, definitionID, updated.CardDefinitionID)
}

func TestUpdateItem_NotFound(t *testing.T) {
	itemService, _ := setupItemServiceTest(t)

	shipping := model.StatusShipping
	updated, err := itemService.UpdateItem(9999, ItemUpdate{Status: &shipping})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestListItems_ForDefinition(t *testing.T) {
	itemService, definitionID := setupItemServiceTest(t)

	_, err := itemService.CreateItem(ItemInput{CardDefinitionID: definitionID})
	require.NoError(t, err)
	archived, err := itemService.CreateItem(ItemInput{CardDefinitionID: definitionID})
	require.NoError(t, err)
	require.NoError(t, itemService.ArchiveItem(archived.ID))

	items, err := itemService.ListItems(&definitionID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	all, err := itemService.ListItems(nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestArchiveItem(t *testing.T) {
	itemService, definitionID := setupItemServiceTest(t)

	item, err := itemService.CreateItem(ItemInput{CardDefinitionID: definitionID})
	require.NoError(t, err)

	require.NoError(t, itemService.ArchiveItem(item.ID))
	require.NoError(t, itemService.ArchiveItem(item.ID))

	assert.ErrorIs(t, itemService.ArchiveItem(9999), ErrItemNotFound)
}
