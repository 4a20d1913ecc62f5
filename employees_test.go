package main

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crewledger/models"
)

func createEmployee(t *testing.T, r http.Handler, token, name string) uint {
	t.Helper()
	rec := performRequest(r, http.MethodPost, "/api/employees",
		jsonBody(t, map[string]string{"name": name}), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint(decodeBody(t, rec)["id"].(float64))
}

func createLaborExpense(t *testing.T, r http.Handler, token, employeeName string) uint {
	t.Helper()
	rec := performRequest(r, http.MethodPost, "/api/expenses", jsonBody(t, map[string]any{
		"type":         "LABOR",
		"amount":       "400",
		"expenseDate":  time.Now().Format(time.RFC3339),
		"employeeName": employeeName,
		"hoursWorked":  "8",
	}), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint(decodeBody(t, rec)["id"].(float64))
}

// Deleting an employee removes the caller's labor expenses filed under that
// name, and nothing from other accounts.
func TestDeleteEmployeeCascadesOwnExpensesOnly(t *testing.T) {
	r := setupTestServer(t)
	tokenA := registerAccount(t, r, "crew-a@example.com")
	tokenB := registerAccount(t, r, "crew-b@example.com")

	idA := createEmployee(t, r, tokenA, "Jordan Diaz")
	createEmployee(t, r, tokenB, "Jordan Diaz")
	createLaborExpense(t, r, tokenA, "Jordan Diaz")
	createLaborExpense(t, r, tokenA, "Jordan Diaz")
	createLaborExpense(t, r, tokenB, "Jordan Diaz")

	rec := performRequest(r, http.MethodDelete, fmt.Sprintf("/api/employees/%d", idA), nil, tokenA)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, float64(2), decodeBody(t, rec)["removedExpenses"])

	var total int64
	db.Model(&models.Expense{}).Where("employee_name = ?", "Jordan Diaz").Count(&total)
	require.Equal(t, int64(1), total, "the other account's expense must survive")
}

func TestEmployeeToggleAndActiveList(t *testing.T) {
	r := setupTestServer(t)
	token := registerAccount(t, r, "crew@example.com")

	id := createEmployee(t, r, token, "Sam Lee")
	createEmployee(t, r, token, "Robin Cho")

	rec := performRequest(r, http.MethodPut, fmt.Sprintf("/api/employees/%d/toggle", id), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, decodeBody(t, rec)["active"])

	rec = performRequest(r, http.MethodGet, "/api/employees/active", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var employees []models.Employee
	decodeInto(t, rec, &employees)
	require.Len(t, employees, 1)
	require.Equal(t, "Robin Cho", employees[0].Name)
}

func TestLaborExpenseValidation(t *testing.T) {
	r := setupTestServer(t)
	token := registerAccount(t, r, "labor@example.com")

	// LABOR without an employee name is rejected.
	rec := performRequest(r, http.MethodPost, "/api/expenses", jsonBody(t, map[string]any{
		"type":        "LABOR",
		"amount":      "100",
		"expenseDate": time.Now().Format(time.RFC3339),
		"hoursWorked": "4",
	}), token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// LABOR without positive hours is rejected.
	rec = performRequest(r, http.MethodPost, "/api/expenses", jsonBody(t, map[string]any{
		"type":         "LABOR",
		"amount":       "100",
		"expenseDate":  time.Now().Format(time.RFC3339),
		"employeeName": "Sam Lee",
	}), token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown type is rejected.
	rec = performRequest(r, http.MethodPost, "/api/expenses", jsonBody(t, map[string]any{
		"type":        "GROCERIES",
		"amount":      "100",
		"expenseDate": time.Now().Format(time.RFC3339),
	}), token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
