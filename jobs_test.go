package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"crewledger/models"
)

func createProduct(t *testing.T, r http.Handler, token, name, unitPrice string) uint {
	t.Helper()
	rec := performRequest(r, http.MethodPost, "/api/products",
		jsonBody(t, map[string]any{"name": name, "unitPrice": unitPrice}), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint(decodeBody(t, rec)["id"].(float64))
}

func TestCreateJobDefaultsBadEnums(t *testing.T) {
	r := setupTestServer(t)
	token := registerAccount(t, r, "enums@example.com")

	rec := performRequest(r, http.MethodPost, "/api/jobs", jsonBody(t, map[string]any{
		"title":    "Enum job",
		"status":   "NOT_A_STATUS",
		"priority": "WHENEVER",
	}), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, "PENDING", body["status"])
	require.Equal(t, "MEDIUM", body["priority"])

	// Lowercase known values are accepted.
	rec = performRequest(r, http.MethodPost, "/api/jobs", jsonBody(t, map[string]any{
		"title":    "Cased job",
		"status":   "in_progress",
		"priority": "high",
	}), token)
	require.Equal(t, http.StatusCreated, rec.Code)
	body = decodeBody(t, rec)
	require.Equal(t, "IN_PROGRESS", body["status"])
	require.Equal(t, "HIGH", body["priority"])
}

func TestCreateJobIgnoresForeignCustomer(t *testing.T) {
	r := setupTestServer(t)
	tokenA := registerAccount(t, r, "own@example.com")
	tokenB := registerAccount(t, r, "foreign@example.com")

	rec := performRequest(r, http.MethodPost, "/api/users/customers",
		jsonBody(t, map[string]string{"name": "B Client"}), tokenB)
	require.Equal(t, http.StatusCreated, rec.Code)
	foreignID := uint(decodeBody(t, rec)["id"].(float64))

	rec = performRequest(r, http.MethodPost, "/api/jobs", jsonBody(t, map[string]any{
		"title":      "Orphan job",
		"customerId": foreignID,
	}), tokenA)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Nil(t, decodeBody(t, rec)["customerId"])
}

func TestJobSearchAndStatusFilter(t *testing.T) {
	r := setupTestServer(t)
	token := registerAccount(t, r, "search@example.com")

	rec := performRequest(r, http.MethodPost, "/api/users/customers",
		jsonBody(t, map[string]string{"name": "Harbor Marina"}), token)
	require.Equal(t, http.StatusCreated, rec.Code)
	customerID := uint(decodeBody(t, rec)["id"].(float64))

	createJob(t, r, token, map[string]any{"title": "Dock repair", "customerId": customerID, "status": "COMPLETED"})
	createJob(t, r, token, map[string]any{"title": "Fence painting", "status": "IN_PROGRESS"})
	createJob(t, r, token, map[string]any{"title": "Shed build"})

	// Search matches the customer name through the join.
	rec = performRequest(r, http.MethodPost, "/api/jobs/list",
		jsonBody(t, map[string]any{"searchTerm": "marina"}), token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, float64(1), body["totalItems"])

	// "All" bypasses the status filter.
	rec = performRequest(r, http.MethodPost, "/api/jobs/list",
		jsonBody(t, map[string]any{"statusFilter": "All"}), token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(3), decodeBody(t, rec)["totalItems"])

	rec = performRequest(r, http.MethodPost, "/api/jobs/list",
		jsonBody(t, map[string]any{"statusFilter": "completed"}), token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), decodeBody(t, rec)["totalItems"])
}

func TestJobMaterialsLifecycle(t *testing.T) {
	r := setupTestServer(t)
	token := registerAccount(t, r, "materials@example.com")

	jobID := createJob(t, r, token, map[string]any{"title": "Porch rebuild"})
	paintID := createProduct(t, r, token, "Paint", "25")
	lumberID := createProduct(t, r, token, "Lumber", "10")

	// Add paint at the catalog price.
	rec := performRequest(r, http.MethodPost, fmt.Sprintf("/api/jobs/%d/materials", jobID),
		jsonBody(t, map[string]any{"productId": paintID, "quantity": 4}), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	saleID := uint(decodeBody(t, rec)["id"].(float64))

	// Add lumber at an overridden price, then return one unit.
	rec = performRequest(r, http.MethodPost, fmt.Sprintf("/api/jobs/%d/materials", jobID),
		jsonBody(t, map[string]any{"productId": lumberID, "quantity": 2, "unitPrice": "12.50"}), token)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = performRequest(r, http.MethodPost, fmt.Sprintf("/api/jobs/%d/materials", jobID),
		jsonBody(t, map[string]any{"productId": lumberID, "quantity": -1}), token)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Update the paint line quantity.
	rec = performRequest(r, http.MethodPut, fmt.Sprintf("/api/jobs/%d/materials/%d", jobID, saleID),
		jsonBody(t, map[string]any{"quantity": 6}), token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var job models.Job
	require.NoError(t, db.Preload("Sales.Items").First(&job, jobID).Error)
	require.Len(t, job.Sales, 3)

	// Removing lumber deletes both lumber sales, leaving only paint.
	rec = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/jobs/%d/materials/%d", jobID, lumberID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, float64(2), decodeBody(t, rec)["removedSales"])

	require.NoError(t, db.Preload("Sales.Items").First(&job, jobID).Error)
	require.Len(t, job.Sales, 1)
	require.Equal(t, 6, job.Sales[0].Items[0].Quantity)
}

func TestDeleteJobRemovesDependents(t *testing.T) {
	r := setupTestServer(t)
	token := registerAccount(t, r, "teardown@example.com")

	jobID := createJob(t, r, token, map[string]any{"title": "Teardown", "jobPrice": "100"})
	productID := createProduct(t, r, token, "Nails", "5")

	rec := performRequest(r, http.MethodPost, fmt.Sprintf("/api/jobs/%d/materials", jobID),
		jsonBody(t, map[string]any{"productId": productID, "quantity": 3}), token)
	require.Equal(t, http.StatusCreated, rec.Code)
	payJob(t, r, token, jobID, "50")

	rec = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/jobs/%d", jobID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var sales, items, payments int64
	db.Model(&models.Sale{}).Where("job_id = ?", jobID).Count(&sales)
	db.Model(&models.SaleItem{}).Count(&items)
	db.Model(&models.Payment{}).Where("job_id = ?", jobID).Count(&payments)
	require.Zero(t, sales)
	require.Zero(t, items)
	require.Zero(t, payments)
}
