package billing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"crewledger/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestTotalJobCost(t *testing.T) {
	cases := []struct {
		name         string
		price        *decimal.Decimal
		materialCost *decimal.Decimal
		includeTax   bool
		want         string
	}{
		{"both set no tax", decPtr("200"), decPtr("50"), false, "250"},
		{"both set with tax", decPtr("200"), decPtr("50"), true, "265"},
		{"price only", decPtr("100"), nil, false, "100"},
		{"material only", nil, decPtr("75.50"), false, "75.5"},
		{"nothing set", nil, nil, false, "0"},
		{"nothing set with tax", nil, nil, true, "0"},
		{"tax on odd subtotal", decPtr("99.99"), nil, true, "105.9894"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job := &models.Job{JobPrice: tc.price, MaterialCost: tc.materialCost, IncludeTax: tc.includeTax}
			got := TotalJobCost(job, DefaultTaxRate)
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("TotalJobCost = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestTotalJobCostRepeatedRecomputeStable(t *testing.T) {
	job := &models.Job{JobPrice: decPtr("0.10"), MaterialCost: decPtr("0.20"), IncludeTax: true}
	first := TotalJobCost(job, DefaultTaxRate)
	for i := 0; i < 1000; i++ {
		if got := TotalJobCost(job, DefaultTaxRate); !got.Equal(first) {
			t.Fatalf("recompute drifted at iteration %d: %s != %s", i, got, first)
		}
	}
}

func TestValidatePayment(t *testing.T) {
	cost := dec("265")

	// 100 then 165 fill the balance exactly.
	if err := ValidatePayment(dec("100"), cost, decimal.Zero); err != nil {
		t.Fatalf("first payment rejected: %v", err)
	}
	if err := ValidatePayment(dec("165"), cost, dec("100")); err != nil {
		t.Fatalf("second payment rejected: %v", err)
	}

	// Any further payment must fail.
	err := ValidatePayment(dec("1.00"), cost, dec("265"))
	if !errors.Is(err, ErrExceedsBalance) {
		t.Fatalf("expected ErrExceedsBalance, got %v", err)
	}
	assert.Contains(t, err.Error(), "remaining balance ($0.00)")
	assert.Contains(t, err.Error(), "Total cost: $265.00")
	assert.Contains(t, err.Error(), "Already paid: $265.00")
}

func TestValidatePaymentExactRemaining(t *testing.T) {
	// Equality is allowed; only strictly greater is rejected.
	if err := ValidatePayment(dec("50"), dec("100"), dec("50")); err != nil {
		t.Fatalf("payment equal to remaining balance rejected: %v", err)
	}
	if err := ValidatePayment(dec("50.01"), dec("100"), dec("50")); err == nil {
		t.Fatal("payment over remaining balance accepted")
	}
}

func TestSumPayments(t *testing.T) {
	if got := SumPayments(nil); !got.IsZero() {
		t.Fatalf("empty sum = %s, want 0", got)
	}
	payments := []models.Payment{{Amount: dec("10.50")}, {Amount: dec("4.50")}, {Amount: dec("0.001")}}
	if got := SumPayments(payments); !got.Equal(dec("15.001")) {
		t.Fatalf("sum = %s, want 15.001", got)
	}
}

func TestContractStatusFor(t *testing.T) {
	cases := []struct {
		cost, paid string
		want       models.ContractStatus
	}{
		{"100", "0", models.ContractUnpaid},
		{"100", "50", models.ContractPartial},
		{"100", "100", models.ContractPaid},
		{"100", "120", models.ContractPaid},
		{"0", "0", models.ContractUnpaid},
		{"0.01", "0.01", models.ContractPaid},
	}
	for _, tc := range cases {
		got := ContractStatusFor(dec(tc.cost), dec(tc.paid))
		if got != tc.want {
			t.Fatalf("ContractStatusFor(%s, %s) = %s, want %s", tc.cost, tc.paid, got, tc.want)
		}
	}
}
