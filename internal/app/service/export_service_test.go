package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/repository"
	"github.com/yucheng/cardvault-backend/internal/db"
)

type exportFixture struct {
	exportService     ExportService
	definitionService CardDefinitionService
	itemService       InventoryItemService
}

func setupExportTest(t *testing.T) exportFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	definitionRepo := repository.NewCardDefinitionRepository(testDB)
	itemRepo := repository.NewInventoryItemRepository(testDB)

	return exportFixture{
		exportService:     NewExportService(definitionRepo, itemRepo),
		definitionService: NewCardDefinitionService(definitionRepo),
		itemService:       NewInventoryItemService(itemRepo),
	}
}

func TestExportInventory(t *testing.T) {
	f := setupExportTest(t)

	definition, err := f.definitionService.CreateDefinition(sportInput())
	require.NoError(t, err)

	_, err = f.itemService.CreateItem(ItemInput{
		CardDefinitionID: definition.ID,
		SerialNumber:     "12/99",
		CustomID:         "MT-001",
		Acquisition:      &model.Acquisition{TotalCost: 133.4},
	})
	require.NoError(t, err)

	_, err = f.itemService.CreateItem(ItemInput{
		CardDefinitionID: definition.ID,
		Status:           model.StatusSold,
		Disposition:      &model.Disposition{Revenue: 250},
	})
	require.NoError(t, err)

	archived, err := f.itemService.CreateItem(ItemInput{CardDefinitionID: definition.ID})
	require.NoError(t, err)
	require.NoError(t, f.itemService.ArchiveItem(archived.ID))

	data, err := f.exportService.ExportInventory()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Inventory")
	require.NoError(t, err)

	// Header plus the two active items; the archived one stays out.
	require.Len(t, rows, 3)
	assert.Equal(t, "Item ID", rows[0][0])
	assert.Equal(t, "Card", rows[0][2])

	assert.Equal(t, "MT-001", rows[1][1])
	assert.Equal(t, "Mike Trout", rows[1][2])
	assert.Equal(t, "sport", rows[1][3])
	assert.Equal(t, "in_stock", rows[1][6])
	assert.Equal(t, "133.4", rows[1][13])

	assert.Equal(t, "sold", rows[2][6])
	assert.Equal(t, "250", rows[2][14])
}

func TestExportInventory_Empty(t *testing.T) {
	f := setupExportTest(t)

	data, err := f.exportService.ExportInventory()
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
