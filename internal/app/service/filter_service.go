package service

import (
	"sort"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/repository"
	"github.com/yucheng/cardvault-backend/pkg/logger"
)

// FilterOptions holds the distinct values available for each filterable
// dimension, progressively narrowed by the selections already made.
type FilterOptions struct {
	Types   []string `json:"types"`
	Brands  []string `json:"brands"`
	Series  []string `json:"series"`
	Years   []string `json:"years"`
	Players []string `json:"players"`
	Pokemon []string `json:"pokemon"`
}

type FilterService interface {
	Options(cardType model.CardType, brand string) (FilterOptions, error)
}

type filterService struct {
	definitionRepo repository.CardDefinitionRepository
}

func NewFilterService(definitionRepo repository.CardDefinitionRepository) FilterService {
	return &filterService{definitionRepo: definitionRepo}
}

// sortedNonEmpty drops empty strings and sorts the rest. Years sort
// descending; every other dimension ascending.
func sortedNonEmpty(values []string, descending bool) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if descending {
		sort.Sort(sort.Reverse(sort.StringSlice(cleaned)))
	} else {
		sort.Strings(cleaned)
	}
	return cleaned
}

// Options computes the available values per dimension over active
// definitions. A dimension is never narrowed by its own selection: with a
// brand picked, the brand list still shows the alternatives. Name lists
// only populate while the opposing discriminant isn't exclusively selected.
func (s *filterService) Options(cardType model.CardType, brand string) (FilterOptions, error) {
	logger.Debug("Computing filter options", map[string]interface{}{
		"card_type": cardType,
		"brand":     brand,
	})

	options := FilterOptions{
		Types:   []string{},
		Brands:  []string{},
		Series:  []string{},
		Years:   []string{},
		Players: []string{},
		Pokemon: []string{},
	}

	base := repository.DefinitionFilter{
		CardType:   cardType,
		Brand:      brand,
		ActiveOnly: true,
	}

	types, err := s.definitionRepo.DistinctValues("card_type", repository.DefinitionFilter{ActiveOnly: true})
	if err != nil {
		return options, err
	}
	options.Types = sortedNonEmpty(types, false)

	brandFilter := base
	brandFilter.Brand = ""
	brands, err := s.definitionRepo.DistinctValues("brand", brandFilter)
	if err != nil {
		return options, err
	}
	options.Brands = sortedNonEmpty(brands, false)

	series, err := s.definitionRepo.DistinctValues("series", base)
	if err != nil {
		return options, err
	}
	options.Series = sortedNonEmpty(series, false)

	years, err := s.definitionRepo.DistinctValues("year", base)
	if err != nil {
		return options, err
	}
	options.Years = sortedNonEmpty(years, true)

	if cardType == "" || cardType == model.CardTypeSport {
		playerFilter := base
		playerFilter.CardType = model.CardTypeSport
		players, err := s.definitionRepo.DistinctValues("player_name", playerFilter)
		if err != nil {
			return options, err
		}
		options.Players = sortedNonEmpty(players, false)
	}

	if cardType == "" || cardType == model.CardTypePokemon {
		pokemonFilter := base
		pokemonFilter.CardType = model.CardTypePokemon
		pokemon, err := s.definitionRepo.DistinctValues("pokemon_name", pokemonFilter)
		if err != nil {
			return options, err
		}
		options.Pokemon = sortedNonEmpty(pokemon, false)
	}

	logger.Debug("Filter options computed", map[string]interface{}{
		"types":  len(options.Types),
		"brands": len(options.Brands),
	})
	return options, nil
}
