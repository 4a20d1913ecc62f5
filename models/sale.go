package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale groups material line items, optionally attached to a job. Created and
// removed through the job material operations.
type Sale struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	JobID        *uint      `gorm:"index" json:"jobId"`
	CustomerID   *uint      `gorm:"index" json:"customerId"`
	Date         time.Time  `gorm:"not null" json:"date"`
	Description  string     `gorm:"size:512" json:"description"`
	SupplierName string     `gorm:"size:255" json:"supplierName"`
	Items        []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
}

// SaleItem is one material line. Positive quantity means material consumed and
// billed, negative means inventory returned.
type SaleItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	SaleID    uint            `gorm:"index;not null" json:"saleId"`
	ProductID uint            `gorm:"index;not null" json:"productId"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unitPrice"`
}
