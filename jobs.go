package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"crewledger/models"
)

type jobRequest struct {
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Status           string           `json:"status"`
	Priority         string           `json:"priority"`
	CustomerID       *uint            `json:"customerId"`
	StartDate        *time.Time       `json:"startDate"`
	EndDate          *time.Time       `json:"endDate"`
	EstimatedHours   *int             `json:"estimatedHours"`
	ActualHours      *int             `json:"actualHours"`
	JobPrice         *decimal.Decimal `json:"jobPrice"`
	MaterialCost     *decimal.Decimal `json:"materialCost"`
	IncludeTax       *bool            `json:"includeTax"`
	ReceiptImageURLs *string          `json:"receiptImageUrls"`
}

// scopedCustomerID resolves a requested customer id within the account.
// A missing or foreign customer yields nil rather than an error so a job can
// still be saved without association.
func scopedCustomerID(userID uint, customerID *uint) *uint {
	if customerID == nil || *customerID == 0 {
		return nil
	}
	var customer models.Customer
	if err := db.Where("id = ? AND user_id = ?", *customerID, userID).First(&customer).Error; err != nil {
		return nil
	}
	id := customer.ID
	return &id
}

func createJobHandler(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job title is required"})
		return
	}
	userID := currentUserID(c)

	job := models.Job{
		UserID:         userID,
		CustomerID:     scopedCustomerID(userID, req.CustomerID),
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Status:         models.JobPending,
		Priority:       models.PriorityMedium,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		JobPrice:       req.JobPrice,
		MaterialCost:   req.MaterialCost,
	}
	// Unknown status/priority strings fall back to the defaults.
	if s, ok := models.ParseJobStatus(req.Status); ok {
		job.Status = s
	}
	if p, ok := models.ParseJobPriority(req.Priority); ok {
		job.Priority = p
	}
	if req.IncludeTax != nil {
		job.IncludeTax = *req.IncludeTax
	}
	if req.ReceiptImageURLs != nil {
		job.ReceiptImageURLs = *req.ReceiptImageURLs
	}
	if err := db.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}
	if job.CustomerID != nil {
		db.Preload("Customer").First(&job, job.ID)
	}
	c.JSON(http.StatusCreated, job)
}

// loadJob fetches a job with its full graph, scoped to the account.
func loadJob(userID, jobID uint) (models.Job, error) {
	var job models.Job
	err := db.Where("id = ? AND user_id = ?", jobID, userID).
		Preload("Customer").
		Preload("Sales.Items.Product").
		Preload("Payments").
		First(&job).Error
	return job, err
}

func getJobHandler(c *gin.Context) {
	job, err := loadJob(currentUserID(c), paramUint(c, "id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func updateJobHandler(c *gin.Context) {
	userID := currentUserID(c)
	var job models.Job
	err := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), userID).First(&job).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Title) != "" {
		job.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	// Invalid enum strings are ignored on update, not defaulted.
	if s, ok := models.ParseJobStatus(req.Status); ok {
		job.Status = s
	}
	if p, ok := models.ParseJobPriority(req.Priority); ok {
		job.Priority = p
	}
	if req.CustomerID != nil {
		job.CustomerID = scopedCustomerID(userID, req.CustomerID)
	}
	if req.StartDate != nil {
		job.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		job.EndDate = req.EndDate
	}
	if req.EstimatedHours != nil {
		job.EstimatedHours = req.EstimatedHours
	}
	if req.ActualHours != nil {
		job.ActualHours = req.ActualHours
	}
	if req.JobPrice != nil {
		job.JobPrice = req.JobPrice
	}
	if req.MaterialCost != nil {
		job.MaterialCost = req.MaterialCost
	}
	if req.IncludeTax != nil {
		job.IncludeTax = *req.IncludeTax
	}
	if req.ReceiptImageURLs != nil {
		job.ReceiptImageURLs = *req.ReceiptImageURLs
	}
	if err := db.Save(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update job"})
		return
	}
	updated, err := loadJob(userID, job.ID)
	if err != nil {
		c.JSON(http.StatusOK, job)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// deleteJobHandler removes a job and its dependent rows in one transaction.
// Dependents are deleted explicitly so the behavior does not rely on database
// level cascade support.
func deleteJobHandler(c *gin.Context) {
	userID := currentUserID(c)
	var job models.Job
	err := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), userID).First(&job).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		var saleIDs []uint
		if err := tx.Model(&models.Sale{}).Where("job_id = ?", job.ID).Pluck("id", &saleIDs).Error; err != nil {
			return err
		}
		if len(saleIDs) > 0 {
			if err := tx.Where("sale_id IN ?", saleIDs).Delete(&models.SaleItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", saleIDs).Delete(&models.Sale{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("job_id = ?", job.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete job"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

func listJobsHandler(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.clamp()
	userID := currentUserID(c)

	q := db.Model(&models.Job{}).
		Joins("LEFT JOIN customers ON customers.id = jobs.customer_id").
		Where("jobs.user_id = ?", userID)
	if term := strings.TrimSpace(req.SearchTerm); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where(
			"LOWER(jobs.title) LIKE ? OR LOWER(jobs.description) LIKE ? OR LOWER(jobs.status) LIKE ? OR LOWER(jobs.priority) LIKE ? OR LOWER(customers.name) LIKE ?",
			like, like, like, like, like,
		)
	}
	// "All" (or empty) means no status restriction.
	if f := strings.TrimSpace(req.StatusFilter); f != "" && !strings.EqualFold(f, "all") {
		q = q.Where("jobs.status = ?", strings.ToUpper(f))
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs"})
		return
	}
	var jobs []models.Job
	err := q.Preload("Customer").
		Order("jobs.id DESC").
		Offset(req.Page * req.PageSize).
		Limit(req.PageSize).
		Find(&jobs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs"})
		return
	}

	resp := pageMeta(req.Page, req.PageSize, count)
	resp["jobs"] = jobs
	resp["totalItems"] = count
	c.JSON(http.StatusOK, resp)
}

// addJobMaterialHandler records a material against a job as a one-line sale.
// Negative quantity records a return.
func addJobMaterialHandler(c *gin.Context) {
	userID := currentUserID(c)
	var job models.Job
	err := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), userID).First(&job).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	var req struct {
		ProductID uint             `json:"productId"`
		Quantity  int              `json:"quantity"`
		UnitPrice *decimal.Decimal `json:"unitPrice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ProductID == 0 || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId and a non-zero quantity are required"})
		return
	}
	var product models.Product
	if err := db.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	unitPrice := product.UnitPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	sale := models.Sale{
		JobID:       &job.ID,
		CustomerID:  job.CustomerID,
		Date:        time.Now(),
		Description: "Material added to job: " + job.Title,
		Items: []models.SaleItem{{
			ProductID: product.ID,
			Quantity:  req.Quantity,
			UnitPrice: unitPrice,
		}},
	}
	if err := db.Create(&sale).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add material"})
		return
	}
	db.Preload("Items.Product").First(&sale, sale.ID)
	c.JSON(http.StatusCreated, sale)
}

func updateJobMaterialHandler(c *gin.Context) {
	userID := currentUserID(c)
	jobID := paramUint(c, "id")
	var job models.Job
	if err := db.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	var sale models.Sale
	err := db.Where("id = ? AND job_id = ?", paramUint(c, "saleId"), jobID).
		Preload("Items").First(&sale).Error
	if err != nil || len(sale.Items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Material entry not found"})
		return
	}
	var req struct {
		Quantity  *int             `json:"quantity"`
		UnitPrice *decimal.Decimal `json:"unitPrice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	item := &sale.Items[0]
	if req.Quantity != nil && *req.Quantity != 0 {
		item.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if err := db.Save(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update material"})
		return
	}
	db.Preload("Items.Product").First(&sale, sale.ID)
	c.JSON(http.StatusOK, sale)
}

// removeJobMaterialHandler deletes every sale on the job that contains the
// given product.
func removeJobMaterialHandler(c *gin.Context) {
	userID := currentUserID(c)
	jobID := paramUint(c, "id")
	var job models.Job
	if err := db.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	productID := paramUint(c, "productId")

	var saleIDs []uint
	err := db.Model(&models.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.job_id = ? AND sale_items.product_id = ?", jobID, productID).
		Distinct().Pluck("sale_items.sale_id", &saleIDs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove material"})
		return
	}
	if len(saleIDs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Material entry not found"})
		return
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id IN ?", saleIDs).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", saleIDs).Delete(&models.Sale{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove material"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Material removed", "removedSales": len(saleIDs)})
}
