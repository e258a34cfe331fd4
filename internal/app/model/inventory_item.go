package model

import (
	"time"
)

type ItemStatus string

const (
	StatusInStock  ItemStatus = "in_stock"
	StatusShipping ItemStatus = "shipping"
	StatusGrading  ItemStatus = "grading"
	StatusSold     ItemStatus = "sold"
)

// ItemStatuses lists every known status, in lifecycle order. Aggregation
// zero-fills counts across exactly this set.
var ItemStatuses = []ItemStatus{StatusInStock, StatusShipping, StatusGrading, StatusSold}

func (s ItemStatus) Valid() bool {
	for _, known := range ItemStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Acquisition records how an item entered the collection.
type Acquisition struct {
	Date      string  `json:"date,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Shipping  float64 `json:"shipping,omitempty"`
	Tax       float64 `json:"tax,omitempty"`
	TotalCost float64 `json:"total_cost,omitempty"`
	Source    string  `json:"source,omitempty"`
	Payer     string  `json:"payer,omitempty"`
}

// GradingAttempt is one third-party grading submission. The item's grading
// history is append-only; updates concatenate new attempts after the
// existing ones and never rewrite them.
type GradingAttempt struct {
	Type          string  `json:"type,omitempty"`
	Fee           float64 `json:"fee,omitempty"`
	DateSubmitted string  `json:"date_submitted,omitempty"`
	DateReturned  string  `json:"date_returned,omitempty"`
	Result        string  `json:"result,omitempty"`
}

// Disposition records the sale outcome. Only valid once the item is sold.
type Disposition struct {
	Date              string  `json:"date,omitempty"`
	Revenue           float64 `json:"revenue,omitempty"`
	ProcessingFee     float64 `json:"processing_fee,omitempty"`
	ShippingFee       float64 `json:"shipping_fee,omitempty"`
	SalesTaxCollected float64 `json:"sales_tax_collected,omitempty"`
	IncomeReceiver    string  `json:"income_receiver,omitempty"`
}

// InventoryItem is one physical owned copy of a CardDefinition.
type InventoryItem struct {
	ID               uint             `gorm:"primarykey" json:"id"`
	CardDefinitionID uint             `gorm:"not null;index" json:"card_definition_id"`
	Status           ItemStatus       `gorm:"type:varchar(20);not null;default:'in_stock';index" json:"status"`
	SerialNumber     string           `gorm:"type:varchar(100)" json:"serial_number,omitempty"`
	Condition        string           `gorm:"type:varchar(100)" json:"condition,omitempty"`
	Defects          string           `gorm:"type:text" json:"defects,omitempty"`
	PersonalGrade    string           `gorm:"type:varchar(20)" json:"personal_grade,omitempty"`
	IsGraded         bool             `json:"is_graded"`
	IsInTaiwan       bool             `json:"is_in_taiwan"`
	Notes            string           `gorm:"type:text" json:"notes,omitempty"`
	CustomID         string           `gorm:"type:varchar(100)" json:"custom_id,omitempty"`
	Acquisition      *Acquisition     `gorm:"serializer:json;type:text" json:"acquisition,omitempty"`
	Grading          []GradingAttempt `gorm:"serializer:json;type:text" json:"grading"`
	Disposition      *Disposition     `gorm:"serializer:json;type:text" json:"disposition,omitempty"`
	Archived         bool             `gorm:"default:false;index" json:"archived"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	CardDefinition CardDefinition `gorm:"foreignKey:CardDefinitionID" json:"-"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
