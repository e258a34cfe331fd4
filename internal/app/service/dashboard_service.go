package service

import (
	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/repository"
	"github.com/yucheng/cardvault-backend/pkg/logger"
)

// StatusBreakdown holds per-status item counts for one definition. Every
// known status appears, zero-filled when the definition has no items in it.
type StatusBreakdown struct {
	InStock  int64 `json:"in_stock"`
	Shipping int64 `json:"shipping"`
	Grading  int64 `json:"grading"`
	Sold     int64 `json:"sold"`
}

func (b *StatusBreakdown) add(status model.ItemStatus, count int64) {
	switch status {
	case model.StatusInStock:
		b.InStock += count
	case model.StatusShipping:
		b.Shipping += count
	case model.StatusGrading:
		b.Grading += count
	case model.StatusSold:
		b.Sold += count
	}
}

// Total returns the number of active items across all statuses.
func (b StatusBreakdown) Total() int64 {
	return b.InStock + b.Shipping + b.Grading + b.Sold
}

// DefinitionSummary is one dashboard row: a definition plus its counts.
type DefinitionSummary struct {
	model.CardDefinition
	Counts StatusBreakdown `json:"counts"`
}

type DashboardService interface {
	Overview(opts ListDefinitionOptions) ([]DefinitionSummary, error)
}

type dashboardService struct {
	definitionRepo repository.CardDefinitionRepository
	itemRepo       repository.InventoryItemRepository
}

func NewDashboardService(
	definitionRepo repository.CardDefinitionRepository,
	itemRepo repository.InventoryItemRepository,
) DashboardService {
	return &dashboardService{
		definitionRepo: definitionRepo,
		itemRepo:       itemRepo,
	}
}

// Overview lists every active definition matching opts with its per-status
// counts of active items. Archived definitions and archived items are both
// excluded, like every other read path.
func (s *dashboardService) Overview(opts ListDefinitionOptions) ([]DefinitionSummary, error) {
	logger.Debug("Building dashboard overview", map[string]interface{}{
		"search":    opts.Search,
		"card_type": opts.CardType,
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
		logger.Error("Failed to list definitions for dashboard", err)
		return nil, err
	}

	counts, err := s.itemRepo.CountByStatus()
	if err != nil {
		logger.Error("Failed to count items for dashboard", err)
		return nil, err
	}

	breakdowns := make(map[uint]StatusBreakdown, len(definitions))
	for _, row := range counts {
		breakdown := breakdowns[row.CardDefinitionID]
		breakdown.add(row.Status, row.Count)
		breakdowns[row.CardDefinitionID] = breakdown
	}

	summaries := make([]DefinitionSummary, 0, len(definitions))
	for _, definition := range definitions {
		summaries = append(summaries, DefinitionSummary{
			CardDefinition: definition,
			Counts:         breakdowns[definition.ID],
		})
	}

	logger.Info("Dashboard overview built", map[string]interface{}{
		"definitions": len(summaries),
	})
	return summaries, nil
}
