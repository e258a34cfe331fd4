package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yucheng/cardvault-backend/config"
	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/internal/app/repository"
	"github.com/yucheng/cardvault-backend/internal/db"
)

// Expected column order in the import sheet:
//
//	0 card_type, 1 year, 2 brand, 3 series, 4 card_number,
//	5 insert_parallel, 6 player_name, 7 pokemon_name, 8 language,
//	9 era, 10 image_url, 11 note
const expectedColumns = 12

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	definitionRepo := repository.NewCardDefinitionRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	definitions, err := readDefinitionsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total card definitions to import: %d\n", len(definitions))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 200
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := definitionRepo.BulkCreate(definitions, batchSize); err != nil {
		log.Fatal("Failed to bulk create card definitions:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total card definitions imported: %d\n", len(definitions))
}

func readDefinitionsFromXLSX(filePath string) ([]model.CardDefinition, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var definitions []model.CardDefinition
	seen := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		// Pad short rows so trailing optional columns can be absent.
		for len(row) < expectedColumns {
			row = append(row, "")
		}

		cardType := model.CardType(strings.ToLower(strings.TrimSpace(row[0])))
		year := strings.TrimSpace(row[1])
		brand := strings.TrimSpace(row[2])
		playerName := strings.TrimSpace(row[6])
		pokemonName := strings.TrimSpace(row[7])
		imageURL := strings.TrimSpace(row[10])

		if !cardType.Valid() || year == "" || brand == "" || imageURL == "" {
			skippedCount++
			continue
		}

		definition := model.CardDefinition{
			CardType:       cardType,
			Year:           year,
			Brand:          brand,
			ImageURL:       imageURL,
			Series:         strings.TrimSpace(row[3]),
			CardNumber:     strings.TrimSpace(row[4]),
			InsertParallel: strings.TrimSpace(row[5]),
			Note:           strings.TrimSpace(row[11]),
		}

		switch cardType {
		case model.CardTypeSport:
			if playerName == "" {
				skippedCount++
				continue
			}
			definition.Sport = &model.SportDetails{PlayerName: playerName}
		case model.CardTypePokemon:
			if pokemonName == "" {
				skippedCount++
				continue
			}
			definition.Pokemon = &model.PokemonDetails{
				PokemonName: pokemonName,
				Language:    strings.TrimSpace(row[8]),
				Era:         strings.TrimSpace(row[9]),
			}
		}

		// Deduplicate on the fields that identify a card design.
		key := fmt.Sprintf("%s|%s|%s|%s|%s%s",
			cardType, year, brand, definition.CardNumber, playerName, pokemonName)
		if seen[key] {
			skippedCount++
			continue
		}
		seen[key] = true

		definitions = append(definitions, definition)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid definitions: %d\n", len(definitions))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return definitions, nil
}
