package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentCash  PaymentType = "CASH"
	PaymentCheck PaymentType = "CHECK"
	PaymentCard  PaymentType = "CARD"
)

func ParsePaymentType(s string) (PaymentType, bool) {
	switch PaymentType(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, true
	case PaymentCheck:
		return PaymentCheck, true
	case PaymentCard:
		return PaymentCard, true
	}
	return "", false
}

// Payment is a recorded payment against a job. Payments are never updated;
// only created (subject to the remaining-balance cap) and deleted.
type Payment struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	JobID       uint            `gorm:"index;not null" json:"jobId"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	PaymentType PaymentType     `gorm:"size:16;not null" json:"paymentType"`
	CheckNumber string          `gorm:"size:64" json:"checkNumber"`
	PaymentDate time.Time       `gorm:"not null" json:"paymentDate"`
}
