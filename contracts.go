package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"crewledger/models"
	"crewledger/pkg/billing"
)

type contractRequest struct {
	CustomerID *uint `json:"customerId"`
	JobID      *uint `json:"jobId"`

	CompanyName    *string `json:"companyName"`
	CompanyAddress *string `json:"companyAddress"`
	CompanyPhone   *string `json:"companyPhone"`
	CompanyEmail   *string `json:"companyEmail"`
	LicenseNumber  *string `json:"licenseNumber"`
	IDNumber       *string `json:"idNumber"`

	CustomerName    *string `json:"customerName"`
	CustomerAddress *string `json:"customerAddress"`

	ContractDate   *time.Time       `json:"contractDate"`
	ScopeOfWork    *string          `json:"scopeOfWork"`
	Warranty       *string          `json:"warranty"`
	DepositPercent *int             `json:"depositPercent"`
	PaymentMethods *string          `json:"paymentMethods"`
	TotalPrice     *decimal.Decimal `json:"totalPrice"`
	Status         *string          `json:"status"`
}

// syncContractWithJob recomputes TotalPrice and Status from the linked job
// and its payments. A lookup failure is returned to the caller rather than
// served as a stale snapshot.
func syncContractWithJob(contract *models.Contract) error {
	if contract.JobID == nil {
		return nil
	}
	var job models.Job
	err := db.Where("id = ? AND user_id = ?", *contract.JobID, contract.UserID).First(&job).Error
	if err != nil {
		return err
	}
	var payments []models.Payment
	if err := db.Where("job_id = ?", job.ID).Find(&payments).Error; err != nil {
		return err
	}
	totalCost := billing.TotalJobCost(&job, cfg.TaxRate)
	totalPaid := billing.SumPayments(payments)
	contract.TotalPrice = totalCost
	contract.Status = billing.ContractStatusFor(totalCost, totalPaid)
	return nil
}

func applyContractRequest(contract *models.Contract, req *contractRequest, userID uint) {
	if req.CustomerID != nil {
		contract.CustomerID = scopedCustomerID(userID, req.CustomerID)
	}
	if req.JobID != nil {
		if *req.JobID == 0 {
			contract.JobID = nil
		} else {
			var job models.Job
			if err := db.Where("id = ? AND user_id = ?", *req.JobID, userID).First(&job).Error; err == nil {
				id := job.ID
				contract.JobID = &id
			}
		}
	}
	if req.CompanyName != nil {
		contract.CompanyName = *req.CompanyName
	}
	if req.CompanyAddress != nil {
		contract.CompanyAddress = *req.CompanyAddress
	}
	if req.CompanyPhone != nil {
		contract.CompanyPhone = *req.CompanyPhone
	}
	if req.CompanyEmail != nil {
		contract.CompanyEmail = *req.CompanyEmail
	}
	if req.LicenseNumber != nil {
		contract.LicenseNumber = *req.LicenseNumber
	}
	if req.IDNumber != nil {
		contract.IDNumber = *req.IDNumber
	}
	if req.CustomerName != nil {
		contract.CustomerName = *req.CustomerName
	}
	if req.CustomerAddress != nil {
		contract.CustomerAddress = *req.CustomerAddress
	}
	if req.ContractDate != nil {
		contract.ContractDate = *req.ContractDate
	}
	if req.ScopeOfWork != nil {
		contract.ScopeOfWork = *req.ScopeOfWork
	}
	if req.Warranty != nil {
		contract.Warranty = *req.Warranty
	}
	if req.DepositPercent != nil {
		contract.DepositPercent = req.DepositPercent
	}
	if req.PaymentMethods != nil {
		contract.PaymentMethods = *req.PaymentMethods
	}
	// Stored price/status only matter for contracts without a linked job;
	// syncContractWithJob overwrites them otherwise.
	if req.TotalPrice != nil {
		contract.TotalPrice = *req.TotalPrice
	}
	if req.Status != nil {
		if s, ok := models.ParseContractStatus(*req.Status); ok {
			contract.Status = s
		}
	}
}

func createContractHandler(c *gin.Context) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := currentUserID(c)
	contract := models.Contract{
		UserID:       userID,
		ContractDate: time.Now(),
		Status:       models.ContractUnpaid,
	}
	applyContractRequest(&contract, &req, userID)
	if err := syncContractWithJob(&contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Linked job not found"})
		return
	}
	if err := db.Create(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create contract"})
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func getContractHandler(c *gin.Context) {
	var contract models.Contract
	err := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), currentUserID(c)).First(&contract).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	if err := syncContractWithJob(&contract); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh contract from job"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

func contractByJobHandler(c *gin.Context) {
	var contract models.Contract
	err := db.Where("job_id = ? AND user_id = ?", paramUint(c, "jobId"), currentUserID(c)).
		Order("id DESC").First(&contract).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	if err := syncContractWithJob(&contract); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh contract from job"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

func updateContractHandler(c *gin.Context) {
	userID := currentUserID(c)
	var contract models.Contract
	err := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), userID).First(&contract).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	applyContractRequest(&contract, &req, userID)
	if err := syncContractWithJob(&contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Linked job not found"})
		return
	}
	if err := db.Save(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update contract"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

func deleteContractHandler(c *gin.Context) {
	res := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), currentUserID(c)).Delete(&models.Contract{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete contract"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}

func listContractsHandler(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.clamp()

	q := db.Model(&models.Contract{}).Where("user_id = ?", currentUserID(c))
	if term := strings.TrimSpace(req.SearchTerm); term != "" {
		q = q.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list contracts"})
		return
	}
	var contracts []models.Contract
	err := q.Order("contract_date DESC").
		Offset(req.Page * req.PageSize).
		Limit(req.PageSize).
		Find(&contracts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list contracts"})
		return
	}
	for i := range contracts {
		if err := syncContractWithJob(&contracts[i]); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh contract from job"})
			return
		}
	}

	resp := pageMeta(req.Page, req.PageSize, count)
	resp["contracts"] = contracts
	resp["totalItems"] = count
	c.JSON(http.StatusOK, resp)
}
