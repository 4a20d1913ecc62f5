package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crewledger/models"
	"crewledger/pkg/billing"
)

type paymentRequest struct {
	JobID       uint             `json:"jobId"`
	Amount      *decimal.Decimal `json:"amount"`
	PaymentType string           `json:"paymentType"`
	CheckNumber string           `json:"checkNumber"`
	PaymentDate *time.Time       `json:"paymentDate"`
}

// createPaymentHandler records a payment against a job. The whole check is
// done inside a transaction that locks the job row on postgres, so two
// concurrent payments cannot both pass the remaining-balance cap.
func createPaymentHandler(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.JobID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobId is required"})
		return
	}
	if req.Amount == nil || req.Amount.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount must be greater than zero"})
		return
	}
	ptype, ok := models.ParsePaymentType(req.PaymentType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentType must be CASH, CHECK or CARD"})
		return
	}
	if ptype == models.PaymentCheck && req.CheckNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkNumber is required for CHECK payments"})
		return
	}
	userID := currentUserID(c)

	payment := models.Payment{
		JobID:       req.JobID,
		Amount:      *req.Amount,
		PaymentType: ptype,
		CheckNumber: req.CheckNumber,
		PaymentDate: time.Now(),
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ? AND user_id = ?", req.JobID, userID)
		if isPostgres() {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var job models.Job
		if err := q.First(&job).Error; err != nil {
			return err
		}
		var payments []models.Payment
		if err := tx.Where("job_id = ?", job.ID).Find(&payments).Error; err != nil {
			return err
		}
		totalCost := billing.TotalJobCost(&job, cfg.TaxRate)
		totalPaid := billing.SumPayments(payments)
		if err := billing.ValidatePayment(payment.Amount, totalCost, totalPaid); err != nil {
			return err
		}
		return tx.Create(&payment).Error
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, payment)
	case errors.Is(err, billing.ErrExceedsBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
	}
}

func listJobPaymentsHandler(c *gin.Context) {
	userID := currentUserID(c)
	jobID := paramUint(c, "jobId")
	var job models.Job
	if err := db.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	var payments []models.Payment
	if err := db.Where("job_id = ?", jobID).Order("payment_date ASC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

func jobPaymentTotalHandler(c *gin.Context) {
	userID := currentUserID(c)
	jobID := paramUint(c, "jobId")
	var job models.Job
	if err := db.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	var payments []models.Payment
	if err := db.Where("job_id = ?", jobID).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to total payments"})
		return
	}
	totalCost := billing.TotalJobCost(&job, cfg.TaxRate)
	totalPaid := billing.SumPayments(payments)
	c.JSON(http.StatusOK, gin.H{
		"jobId":            jobID,
		"totalCost":        totalCost,
		"totalPaid":        totalPaid,
		"remainingBalance": totalCost.Sub(totalPaid),
	})
}

func deletePaymentHandler(c *gin.Context) {
	userID := currentUserID(c)
	var payment models.Payment
	if err := db.First(&payment, paramUint(c, "id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	// Ownership runs through the payment's job.
	var job models.Job
	if err := db.Where("id = ? AND user_id = ?", payment.JobID, userID).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	if err := db.Delete(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}
