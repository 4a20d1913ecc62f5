package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ContractStatus string

const (
	ContractUnpaid  ContractStatus = "UNPAID"
	ContractPartial ContractStatus = "PARTIAL"
	ContractPaid    ContractStatus = "PAID"
)

func ParseContractStatus(s string) (ContractStatus, bool) {
	switch ContractStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case ContractUnpaid:
		return ContractUnpaid, true
	case ContractPartial:
		return ContractPartial, true
	case ContractPaid:
		return ContractPaid, true
	}
	return "", false
}

// Contract is a document snapshot of company and customer details. While
// JobID is set, TotalPrice and Status are a cache recomputed from the job and
// its payments on every read and update; the stored values are only
// authoritative when no job is linked.
type Contract struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    uint  `gorm:"index;not null" json:"userId"`
	CustomerID *uint `gorm:"index" json:"customerId"`
	JobID      *uint `gorm:"index" json:"jobId"`

	CompanyName    string `gorm:"size:255" json:"companyName"`
	CompanyAddress string `gorm:"size:512" json:"companyAddress"`
	CompanyPhone   string `gorm:"size:64" json:"companyPhone"`
	CompanyEmail   string `gorm:"size:255" json:"companyEmail"`
	LicenseNumber  string `gorm:"size:128" json:"licenseNumber"`
	IDNumber       string `gorm:"size:128" json:"idNumber"`

	CustomerName    string `gorm:"size:255" json:"customerName"`
	CustomerAddress string `gorm:"size:512" json:"customerAddress"`

	ContractDate   time.Time       `gorm:"not null" json:"contractDate"`
	ScopeOfWork    string          `gorm:"size:4096" json:"scopeOfWork"`
	Warranty       string          `gorm:"size:2048" json:"warranty"`
	DepositPercent *int            `json:"depositPercent"`
	PaymentMethods string          `gorm:"size:255" json:"paymentMethods"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"totalPrice"`
	Status         ContractStatus  `gorm:"size:16;not null;default:UNPAID" json:"status"`
}
