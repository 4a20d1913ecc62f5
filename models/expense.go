package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseType string

const (
	ExpenseLabor         ExpenseType = "LABOR"
	ExpenseMaterial      ExpenseType = "MATERIAL"
	ExpenseEquipment     ExpenseType = "EQUIPMENT"
	ExpenseVehicle       ExpenseType = "VEHICLE"
	ExpenseSubcontractor ExpenseType = "SUBCONTRACTOR"
	ExpensePermit        ExpenseType = "PERMIT"
	ExpenseInsurance     ExpenseType = "INSURANCE"
	ExpenseUtilities     ExpenseType = "UTILITIES"
	ExpenseTravel        ExpenseType = "TRAVEL"
	ExpenseOffice        ExpenseType = "OFFICE"
	ExpenseMarketing     ExpenseType = "MARKETING"
	ExpenseOther         ExpenseType = "OTHER"
)

var expenseTypes = map[ExpenseType]bool{
	ExpenseLabor: true, ExpenseMaterial: true, ExpenseEquipment: true,
	ExpenseVehicle: true, ExpenseSubcontractor: true, ExpensePermit: true,
	ExpenseInsurance: true, ExpenseUtilities: true, ExpenseTravel: true,
	ExpenseOffice: true, ExpenseMarketing: true, ExpenseOther: true,
}

func ParseExpenseType(s string) (ExpenseType, bool) {
	t := ExpenseType(strings.ToUpper(strings.TrimSpace(s)))
	if expenseTypes[t] {
		return t, true
	}
	return "", false
}

// Expense is a typed cost row for the owning account, optionally tied to a job
// and/or customer. LABOR expenses carry the employee name and hours worked.
type Expense struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID     uint  `gorm:"index;not null" json:"userId"`
	JobID      *uint `gorm:"index" json:"jobId"`
	CustomerID *uint `gorm:"index" json:"customerId"`

	Type        ExpenseType     `gorm:"size:32;not null;index" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Description string          `gorm:"size:1024" json:"description"`
	ExpenseDate time.Time       `gorm:"not null" json:"expenseDate"`

	EmployeeName string           `gorm:"size:255;index" json:"employeeName"`
	HoursWorked  *decimal.Decimal `gorm:"type:decimal(10,2)" json:"hoursWorked"`
	HourlyRate   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"hourlyRate"`

	Vendor        string `gorm:"size:255" json:"vendor"`
	ReceiptNumber string `gorm:"size:128" json:"receiptNumber"`
	Billable      bool   `gorm:"default:false;not null" json:"billable"`
}
