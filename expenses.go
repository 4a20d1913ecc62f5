package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"crewledger/models"
)

type expenseRequest struct {
	JobID         *uint            `json:"jobId"`
	CustomerID    *uint            `json:"customerId"`
	Type          string           `json:"type"`
	Amount        *decimal.Decimal `json:"amount"`
	Description   *string          `json:"description"`
	ExpenseDate   *time.Time       `json:"expenseDate"`
	EmployeeName  *string          `json:"employeeName"`
	HoursWorked   *decimal.Decimal `json:"hoursWorked"`
	HourlyRate    *decimal.Decimal `json:"hourlyRate"`
	Vendor        *string          `json:"vendor"`
	ReceiptNumber *string          `json:"receiptNumber"`
	Billable      *bool            `json:"billable"`
}

// validateLabor enforces the extra fields LABOR expenses need.
func validateLabor(e *models.Expense) string {
	if e.Type != models.ExpenseLabor {
		return ""
	}
	if strings.TrimSpace(e.EmployeeName) == "" {
		return "employeeName is required for LABOR expenses"
	}
	if e.HoursWorked == nil || e.HoursWorked.LessThanOrEqual(decimal.Zero) {
		return "hoursWorked must be greater than zero for LABOR expenses"
	}
	return ""
}

func createExpenseHandler(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	etype, ok := models.ParseExpenseType(req.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown expense type"})
		return
	}
	if req.Amount == nil || req.Amount.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expense amount must be greater than zero"})
		return
	}
	if req.ExpenseDate == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expenseDate is required"})
		return
	}
	userID := currentUserID(c)

	expense := models.Expense{
		UserID:      userID,
		CustomerID:  scopedCustomerID(userID, req.CustomerID),
		Type:        etype,
		Amount:      *req.Amount,
		ExpenseDate: *req.ExpenseDate,
		HoursWorked: req.HoursWorked,
		HourlyRate:  req.HourlyRate,
	}
	if req.JobID != nil && *req.JobID != 0 {
		var job models.Job
		if err := db.Where("id = ? AND user_id = ?", *req.JobID, userID).First(&job).Error; err == nil {
			id := job.ID
			expense.JobID = &id
		}
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.EmployeeName != nil {
		expense.EmployeeName = strings.TrimSpace(*req.EmployeeName)
	}
	if req.Vendor != nil {
		expense.Vendor = *req.Vendor
	}
	if req.ReceiptNumber != nil {
		expense.ReceiptNumber = *req.ReceiptNumber
	}
	if req.Billable != nil {
		expense.Billable = *req.Billable
	}
	if msg := validateLabor(&expense); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if err := db.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create expense"})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func getExpenseHandler(c *gin.Context) {
	var expense models.Expense
	err := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), currentUserID(c)).First(&expense).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

func updateExpenseHandler(c *gin.Context) {
	userID := currentUserID(c)
	var expense models.Expense
	err := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), userID).First(&expense).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Type != "" {
		etype, ok := models.ParseExpenseType(req.Type)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown expense type"})
			return
		}
		expense.Type = etype
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Expense amount must be greater than zero"})
			return
		}
		expense.Amount = *req.Amount
	}
	if req.ExpenseDate != nil {
		expense.ExpenseDate = *req.ExpenseDate
	}
	if req.JobID != nil {
		if *req.JobID == 0 {
			expense.JobID = nil
		} else {
			var job models.Job
			if err := db.Where("id = ? AND user_id = ?", *req.JobID, userID).First(&job).Error; err == nil {
				id := job.ID
				expense.JobID = &id
			}
		}
	}
	if req.CustomerID != nil {
		expense.CustomerID = scopedCustomerID(userID, req.CustomerID)
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.EmployeeName != nil {
		expense.EmployeeName = strings.TrimSpace(*req.EmployeeName)
	}
	if req.HoursWorked != nil {
		expense.HoursWorked = req.HoursWorked
	}
	if req.HourlyRate != nil {
		expense.HourlyRate = req.HourlyRate
	}
	if req.Vendor != nil {
		expense.Vendor = *req.Vendor
	}
	if req.ReceiptNumber != nil {
		expense.ReceiptNumber = *req.ReceiptNumber
	}
	if req.Billable != nil {
		expense.Billable = *req.Billable
	}
	if msg := validateLabor(&expense); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if err := db.Save(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update expense"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

func deleteExpenseHandler(c *gin.Context) {
	res := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), currentUserID(c)).Delete(&models.Expense{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete expense"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}

func listJobExpensesHandler(c *gin.Context) {
	userID := currentUserID(c)
	jobID := paramUint(c, "jobId")
	var job models.Job
	if err := db.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	var expenses []models.Expense
	err := db.Where("user_id = ? AND job_id = ?", userID, jobID).
		Order("expense_date DESC").Find(&expenses).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list expenses"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func listExpensesHandler(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.clamp()

	q := db.Model(&models.Expense{}).Where("user_id = ?", currentUserID(c))
	if term := strings.TrimSpace(req.SearchTerm); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(description) LIKE ? OR LOWER(vendor) LIKE ? OR LOWER(employee_name) LIKE ?", like, like, like)
	}
	if f := strings.TrimSpace(req.TypeFilter); f != "" && !strings.EqualFold(f, "all") {
		if etype, ok := models.ParseExpenseType(f); ok {
			q = q.Where("type = ?", etype)
		}
	}
	if req.JobID != nil && *req.JobID != 0 {
		q = q.Where("job_id = ?", *req.JobID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list expenses"})
		return
	}
	var expenses []models.Expense
	err := q.Order("expense_date DESC").
		Offset(req.Page * req.PageSize).
		Limit(req.PageSize).
		Find(&expenses).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list expenses"})
		return
	}

	resp := pageMeta(req.Page, req.PageSize, count)
	resp["expenses"] = expenses
	resp["totalItems"] = count
	c.JSON(http.StatusOK, resp)
}
