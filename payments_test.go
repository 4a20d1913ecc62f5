package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"crewledger/models"
)

func TestPaymentValidation(t *testing.T) {
	r := setupTestServer(t)
	token := registerAccount(t, r, "pay@example.com")
	jobID := createJob(t, r, token, map[string]any{"title": "Roof patch", "jobPrice": "500"})

	// Zero and negative amounts are rejected.
	for _, amount := range []string{"0", "-10"} {
		rec := performRequest(r, http.MethodPost, "/api/payments", jsonBody(t, map[string]any{
			"jobId":       jobID,
			"amount":      amount,
			"paymentType": "CASH",
		}), token)
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	}

	// CHECK needs a check number.
	rec := performRequest(r, http.MethodPost, "/api/payments", jsonBody(t, map[string]any{
		"jobId":       jobID,
		"amount":      "50",
		"paymentType": "CHECK",
	}), token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown payment type.
	rec = performRequest(r, http.MethodPost, "/api/payments", jsonBody(t, map[string]any{
		"jobId":       jobID,
		"amount":      "50",
		"paymentType": "BARTER",
	}), token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Someone else's job is invisible.
	other := registerAccount(t, r, "intruder@example.com")
	rec = performRequest(r, http.MethodPost, "/api/payments", jsonBody(t, map[string]any{
		"jobId":       jobID,
		"amount":      "50",
		"paymentType": "CASH",
	}), other)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentCapMessageCarriesFigures(t *testing.T) {
	r := setupTestServer(t)
	token := registerAccount(t, r, "figures@example.com")

	// (200 + 50) * 1.06 = 265.00 total.
	jobID := createJob(t, r, token, map[string]any{
		"title":        "Bathroom tile",
		"jobPrice":     "200",
		"materialCost": "50",
		"includeTax":   true,
	})
	payJob(t, r, token, jobID, "100")

	rec := performRequest(r, http.MethodPost, "/api/payments", jsonBody(t, map[string]any{
		"jobId":       jobID,
		"amount":      "200",
		"paymentType": "CASH",
	}), token)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	msg, _ := decodeBody(t, rec)["error"].(string)
	require.Contains(t, msg, "payment amount ($200.00) exceeds remaining balance ($165.00)")
	require.Contains(t, msg, "Total cost: $265.00")
	require.Contains(t, msg, "Already paid: $100.00")
}

// Deleting a payment restores headroom under the cap.
func TestDeletePaymentRestoresBalance(t *testing.T) {
	r := setupTestServer(t)
	token := registerAccount(t, r, "refund@example.com")
	jobID := createJob(t, r, token, map[string]any{"title": "Gutter clean", "jobPrice": "100"})

	payJob(t, r, token, jobID, "100")

	// Job is fully paid; nothing more fits.
	rec := performRequest(r, http.MethodPost, "/api/payments", jsonBody(t, map[string]any{
		"jobId":       jobID,
		"amount":      "1",
		"paymentType": "CASH",
	}), token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payment models.Payment
	require.NoError(t, db.Where("job_id = ?", jobID).First(&payment).Error)
	rec = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/payments/%d", payment.ID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	payJob(t, r, token, jobID, "100")
}

func TestJobPaymentTotal(t *testing.T) {
	r := setupTestServer(t)
	token := registerAccount(t, r, "totals@example.com")
	jobID := createJob(t, r, token, map[string]any{"title": "Paint hallway", "jobPrice": "300"})

	payJob(t, r, token, jobID, "120")
	payJob(t, r, token, jobID, "30")

	rec := performRequest(r, http.MethodGet, fmt.Sprintf("/api/payments/job/%d/total", jobID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, "300", body["totalCost"])
	require.Equal(t, "150", body["totalPaid"])
	require.Equal(t, "150", body["remainingBalance"])

	rec = performRequest(r, http.MethodGet, fmt.Sprintf("/api/payments/job/%d", jobID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var payments []models.Payment
	decodeInto(t, rec, &payments)
	require.Len(t, payments, 2)
}
