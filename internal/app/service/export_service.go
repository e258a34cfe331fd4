package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/repository"
	"github.com/yucheng/cardvault-backend/pkg/logger"
)

const exportSheet = "Inventory"

var exportHeader = []interface{}{
	"Item ID", "Custom ID", "Card", "Type", "Brand", "Year", "Status",
	"Serial Number", "Condition", "Personal Grade", "Graded", "In Taiwan",
	"Grading Attempts", "Total Cost", "Revenue", "Notes",
}

type ExportService interface {
	ExportInventory() ([]byte, error)
}

type exportService struct {
	definitionRepo repository.CardDefinitionRepository
	itemRepo       repository.InventoryItemRepository
}

func NewExportService(
	definitionRepo repository.CardDefinitionRepository,
	itemRepo repository.InventoryItemRepository,
) ExportService {
	return &exportService{
		definitionRepo: definitionRepo,
		itemRepo:       itemRepo,
	}
}

// ExportInventory renders every active item, joined with its definition
// facts, as an XLSX workbook: one header row plus one row per item.
func (s *exportService) ExportInventory() ([]byte, error) {
	logger.Info("Exporting inventory to XLSX")

	definitions, err := s.definitionRepo.FindWithFilter(repository.DefinitionFilter{ActiveOnly: true})
	if err != nil {
		logger.Error("Failed to list definitions for export", err)
		return nil, err
	}
	definitionsByID := make(map[uint]model.CardDefinition, len(definitions))
	for _, definition := range definitions {
		definitionsByID[definition.ID] = definition
	}

	items, err := s.itemRepo.FindWithFilter(repository.ItemFilter{ActiveOnly: true})
	if err != nil {
		logger.Error("Failed to list items for export", err)
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name export sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for i, item := range items {
		definition := definitionsByID[item.CardDefinitionID]

		var totalCost float64
		if item.Acquisition != nil {
			totalCost = item.Acquisition.TotalCost
		}
		var revenue float64
		if item.Disposition != nil {
			revenue = item.Disposition.Revenue
		}

		row := []interface{}{
			item.ID,
			item.CustomID,
			definition.DisplayName(),
			string(definition.CardType),
			definition.Brand,
			definition.Year,
			string(item.Status),
			item.SerialNumber,
			item.Condition,
			item.PersonalGrade,
			item.IsGraded,
			item.IsInTaiwan,
			len(item.Grading),
			totalCost,
			revenue,
			item.Notes,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write export row: %w", err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		logger.Error("Failed to serialize export workbook", err)
		return nil, err
	}

	logger.Info("Inventory exported", map[string]interface{}{
		"items": len(items),
	})
	return buf.Bytes(), nil
}
