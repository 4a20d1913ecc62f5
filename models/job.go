package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type JobStatus string

const (
	JobPending    JobStatus = "PENDING"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobCompleted  JobStatus = "COMPLETED"
	JobCancelled  JobStatus = "CANCELLED"
	JobOnHold     JobStatus = "ON_HOLD"
)

// ParseJobStatus maps a free-form status string onto a known status.
func ParseJobStatus(s string) (JobStatus, bool) {
	switch JobStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case JobPending:
		return JobPending, true
	case JobInProgress:
		return JobInProgress, true
	case JobCompleted:
		return JobCompleted, true
	case JobCancelled:
		return JobCancelled, true
	case JobOnHold:
		return JobOnHold, true
	}
	return "", false
}

type JobPriority string

const (
	PriorityLow    JobPriority = "LOW"
	PriorityMedium JobPriority = "MEDIUM"
	PriorityHigh   JobPriority = "HIGH"
	PriorityUrgent JobPriority = "URGENT"
)

func ParseJobPriority(s string) (JobPriority, bool) {
	switch JobPriority(strings.ToUpper(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	case PriorityUrgent:
		return PriorityUrgent, true
	}
	return "", false
}

// Job is a unit of billable work for a customer. JobPrice and MaterialCost are
// nullable: unset means zero for cost computation. Sales and Payments are
// removed with the job.
type Job struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	UserID          uint        `gorm:"index;not null" json:"userId"`
	CustomerID      *uint       `gorm:"index" json:"customerId"`
	Customer        *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Title           string      `gorm:"size:255;not null" json:"title"`
	Description     string      `gorm:"size:2048" json:"description"`
	Status          JobStatus   `gorm:"size:32;not null;default:PENDING;index" json:"status"`
	Priority        JobPriority `gorm:"size:32;not null;default:MEDIUM" json:"priority"`
	StartDate       *time.Time  `json:"startDate"`
	EndDate         *time.Time  `json:"endDate"`
	EstimatedHours  *int        `json:"estimatedHours"`
	ActualHours     *int        `json:"actualHours"`
	JobPrice        *decimal.Decimal `gorm:"type:decimal(20,4)" json:"jobPrice"`
	MaterialCost    *decimal.Decimal `gorm:"type:decimal(20,4)" json:"materialCost"`
	IncludeTax      bool             `gorm:"default:false;not null" json:"includeTax"`
	// Comma-joined list of stored receipt URLs.
	ReceiptImageURLs string `gorm:"size:2048" json:"receiptImageUrls"`
	Sales           []Sale    `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"sales,omitempty"`
	Payments        []Payment `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}
