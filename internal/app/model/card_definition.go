package model

import (
	"time"

	"gorm.io/gorm"
)

type CardType string

const (
	CardTypeSport   CardType = "sport"
	CardTypePokemon CardType = "pokemon"
)

// CardTypes lists every known discriminant, in the order forms present them.
var CardTypes = []CardType{CardTypeSport, CardTypePokemon}

func (t CardType) Valid() bool {
	for _, known := range CardTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SportDetails is the variant payload for sport cards.
type SportDetails struct {
	PlayerName string `gorm:"column:player_name" json:"player_name"`
}

// PokemonDetails is the variant payload for pokemon cards.
type PokemonDetails struct {
	PokemonName string `gorm:"column:pokemon_name" json:"pokemon_name"`
	Language    string `gorm:"column:language" json:"language,omitempty"`
	Era         string `gorm:"column:era" json:"era,omitempty"`
}

// CardDefinition is a catalog entry for a card design, independent of any
// physical copy owned. The card type discriminant decides which of the two
// variant payloads is populated; a definition never carries both.
type CardDefinition struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	CardType       CardType        `gorm:"type:varchar(20);not null;index" json:"card_type"`
	Year           string          `gorm:"type:varchar(10);not null" json:"year"`
	Brand          string          `gorm:"type:varchar(100);not null" json:"brand"`
	ImageURL       string          `gorm:"not null" json:"image_url"`
	Series         string          `gorm:"type:varchar(100)" json:"series,omitempty"`
	CardNumber     string          `gorm:"type:varchar(50)" json:"card_number,omitempty"`
	InsertParallel string          `gorm:"type:varchar(100)" json:"insert_parallel,omitempty"`
	Note           string          `gorm:"type:text" json:"note,omitempty"`
	Sport          *SportDetails   `gorm:"embedded" json:"sport,omitempty"`
	Pokemon        *PokemonDetails `gorm:"embedded" json:"pokemon,omitempty"`
	Archived       bool            `gorm:"default:false;index" json:"archived"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Items []InventoryItem `gorm:"foreignKey:CardDefinitionID" json:"-"`
}

func (CardDefinition) TableName() string {
	return "card_definitions"
}

// normalizeVariants drops the variant payload that does not match the
// discriminant. Scanning flat columns back can otherwise resurrect the
// other variant as an all-empty struct.
func (d *CardDefinition) normalizeVariants() {
	switch d.CardType {
	case CardTypeSport:
		d.Pokemon = nil
	case CardTypePokemon:
		d.Sport = nil
	}
}

func (d *CardDefinition) BeforeSave(*gorm.DB) error {
	d.normalizeVariants()
	return nil
}

func (d *CardDefinition) AfterFind(*gorm.DB) error {
	d.normalizeVariants()
	return nil
}

// DisplayName returns the variant-specific name used in listings.
// Value receiver so templates can call it on non-addressable values.
func (d CardDefinition) DisplayName() string {
	switch {
	case d.Sport != nil:
		return d.Sport.PlayerName
	case d.Pokemon != nil:
		return d.Pokemon.PokemonName
	default:
		return ""
	}
}
