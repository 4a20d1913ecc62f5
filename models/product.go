package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a material/catalog item referenced by sale items.
type Product struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"size:1024" json:"description"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unitPrice"`
	Category    string          `gorm:"size:128" json:"category"`
}
