// Package billing holds the money rules shared by the payment, contract and
// reporting endpoints: total job cost, the remaining-balance cap on new
// payments, and contract payment status. All arithmetic is decimal so repeated
// recomputation cannot drift.
package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"crewledger/models"
)

// DefaultTaxRate is applied when a job's IncludeTax flag is set and no rate is
// configured (TAX_RATE env).
var DefaultTaxRate = decimal.NewFromFloat(0.06)

// DefaultHourlyRate prices actual hours in labor reports when
// LABOR_HOURLY_RATE is not configured.
var DefaultHourlyRate = decimal.RequireFromString("50.00")

// ErrExceedsBalance marks a payment rejected by the remaining-balance cap.
var ErrExceedsBalance = errors.New("payment exceeds remaining balance")

// TotalJobCost computes a job's total billable cost: material cost plus job
// price, nil treated as zero, plus taxRate of that subtotal when the job
// includes tax.
func TotalJobCost(job *models.Job, taxRate decimal.Decimal) decimal.Decimal {
	subtotal := decimal.Zero
	if job.MaterialCost != nil {
		subtotal = subtotal.Add(*job.MaterialCost)
	}
	if job.JobPrice != nil {
		subtotal = subtotal.Add(*job.JobPrice)
	}
	if job.IncludeTax {
		subtotal = subtotal.Add(subtotal.Mul(taxRate))
	}
	return subtotal
}

// SumPayments totals the payment amounts, zero for an empty slice.
func SumPayments(payments []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// ValidatePayment enforces the cap: cumulative payments may never exceed the
// job's total cost. The returned error carries the computed figures so the
// caller can surface them verbatim.
func ValidatePayment(amount, totalCost, totalPaid decimal.Decimal) error {
	remaining := totalCost.Sub(totalPaid)
	if amount.GreaterThan(remaining) {
		return fmt.Errorf("%w: payment amount ($%s) exceeds remaining balance ($%s). Total cost: $%s, Already paid: $%s",
			ErrExceedsBalance, amount.StringFixed(2), remaining.StringFixed(2),
			totalCost.StringFixed(2), totalPaid.StringFixed(2))
	}
	return nil
}

// ContractStatusFor derives a contract's payment status from the linked job's
// total cost and paid-so-far. Pure function of its inputs.
func ContractStatusFor(totalCost, totalPaid decimal.Decimal) models.ContractStatus {
	if totalCost.GreaterThan(decimal.Zero) && totalPaid.GreaterThanOrEqual(totalCost) {
		return models.ContractPaid
	}
	if totalPaid.GreaterThan(decimal.Zero) && totalPaid.LessThan(totalCost) {
		return models.ContractPartial
	}
	return models.ContractUnpaid
}
