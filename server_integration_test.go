package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"crewledger/pkg/objstore"
)

// setupTestServer wires the router against a fresh in-memory sqlite database.
// Each test gets its own shared-cache DSN so parallel tests do not collide.
func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg = loadConfig()
	cfg.DBDriver = "sqlite"
	cfg.DBDSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	cfg.JWTSecret = []byte("test-secret")
	cfg.AdminEmail = ""
	cfg.AdminPassword = ""
	cfg.GoogleClientID = "test-client-id"
	initDB()

	var err error
	store, err = objstore.NewLocal(t.TempDir(), "/public")
	require.NoError(t, err)

	r := gin.New()
	setupRoutes(r)
	return r
}

func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}

// registerAccount creates an account and returns its bearer token.
func registerAccount(t *testing.T, r http.Handler, email string) string {
	t.Helper()
	rec := performRequest(r, http.MethodPost, "/api/auth/register",
		jsonBody(t, map[string]string{"email": email, "password": "secret1"}), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	// Register and log in.
	token := registerAccount(t, r, "owner@example.com")
	rec := performRequest(r, http.MethodPost, "/api/auth/login",
		jsonBody(t, map[string]string{"email": "owner@example.com", "password": "secret1"}), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Unauthenticated access is rejected.
	rec = performRequest(r, http.MethodPost, "/api/users/customers/list", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Settings are lazily created with the account email forced.
	rec = performRequest(r, http.MethodGet, "/api/account-settings", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	settings := decodeBody(t, rec)
	require.Equal(t, "owner", settings["companyName"])
	require.Equal(t, "owner@example.com", settings["email"])

	// Create a customer.
	rec = performRequest(r, http.MethodPost, "/api/users/customers",
		jsonBody(t, map[string]string{"name": "Acme Corp", "email": "acme@example.com"}), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	customerID := uint(decodeBody(t, rec)["id"].(float64))

	// Create a taxable job for that customer: (200 + 50) * 1.06 = 265.
	rec = performRequest(r, http.MethodPost, "/api/jobs", jsonBody(t, map[string]any{
		"title":        "Kitchen remodel",
		"customerId":   customerID,
		"jobPrice":     "200",
		"materialCost": "50",
		"includeTax":   true,
	}), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	jobID := uint(decodeBody(t, rec)["id"].(float64))

	// First payment fits.
	rec = performRequest(r, http.MethodPost, "/api/payments", jsonBody(t, map[string]any{
		"jobId":       jobID,
		"amount":      "100",
		"paymentType": "CASH",
	}), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Paying the exact remainder fits too.
	rec = performRequest(r, http.MethodPost, "/api/payments", jsonBody(t, map[string]any{
		"jobId":       jobID,
		"amount":      "165",
		"paymentType": "CHECK",
		"checkNumber": "1042",
	}), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// One more dollar is rejected with the balance figures spelled out.
	rec = performRequest(r, http.MethodPost, "/api/payments", jsonBody(t, map[string]any{
		"jobId":       jobID,
		"amount":      "1.00",
		"paymentType": "CASH",
	}), token)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	require.Contains(t, decodeBody(t, rec)["error"], "exceeds remaining balance")

	// A contract linked to the fully paid job reports PAID at the job total.
	rec = performRequest(r, http.MethodPost, "/api/contracts", jsonBody(t, map[string]any{
		"jobId":        jobID,
		"customerName": "Acme Corp",
	}), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	contract := decodeBody(t, rec)
	require.Equal(t, "PAID", contract["status"])

	// Reports respond for a window with no dated jobs excluded.
	rec = performRequest(r, http.MethodGet, "/api/reports/revenue?startDate=2026-01-01&endDate=2026-12-31", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = performRequest(r, http.MethodGet, "/api/reports/insights?startDate=2026-01-01&endDate=2026-12-31", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Missing dates are a 400.
	rec = performRequest(r, http.MethodGet, "/api/reports/labor", nil, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTenantsAreIsolated(t *testing.T) {
	r := setupTestServer(t)
	tokenA := registerAccount(t, r, "a@example.com")
	tokenB := registerAccount(t, r, "b@example.com")

	rec := performRequest(r, http.MethodPost, "/api/users/customers",
		jsonBody(t, map[string]string{"name": "Private Client"}), tokenA)
	require.Equal(t, http.StatusCreated, rec.Code)
	customerID := uint(decodeBody(t, rec)["id"].(float64))

	// The other tenant cannot read, update or delete it.
	path := fmt.Sprintf("/api/users/customers/%d", customerID)
	require.Equal(t, http.StatusNotFound, performRequest(r, http.MethodGet, path, nil, tokenB).Code)
	require.Equal(t, http.StatusNotFound, performRequest(r, http.MethodDelete, path, nil, tokenB).Code)
	require.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, path, nil, tokenA).Code)
}

func TestListPagingClamps(t *testing.T) {
	r := setupTestServer(t)
	token := registerAccount(t, r, "pager@example.com")

	for i := 0; i < 12; i++ {
		rec := performRequest(r, http.MethodPost, "/api/users/customers",
			jsonBody(t, map[string]string{"name": fmt.Sprintf("Customer %02d", i)}), token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// Out-of-range paging values fall back to page 0, size 10.
	rec := performRequest(r, http.MethodPost, "/api/users/customers/list",
		jsonBody(t, map[string]any{"page": -3, "pageSize": 99999}), token)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, float64(0), body["currentPage"])
	require.Equal(t, float64(10), body["pageSize"])
	require.Equal(t, float64(12), body["totalItems"])
	require.Equal(t, float64(2), body["totalPages"])
	require.Equal(t, true, body["hasNext"])
	require.Len(t, body["customers"], 10)
}
