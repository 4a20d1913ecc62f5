package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crewledger/models"
)

type employeeRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
	Active  *bool  `json:"active"`
}

func createEmployeeHandler(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Employee name is required"})
		return
	}
	employee := models.Employee{
		UserID:  currentUserID(c),
		Name:    strings.TrimSpace(req.Name),
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
		Active:  true,
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}
	if err := db.Create(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create employee"})
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func getEmployeeHandler(c *gin.Context) {
	var employee models.Employee
	err := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), currentUserID(c)).First(&employee).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	c.JSON(http.StatusOK, employee)
}

// searchEmployeesHandler returns all employees for the account, optionally
// filtered by a name substring via ?search=.
func searchEmployeesHandler(c *gin.Context) {
	q := db.Where("user_id = ?", currentUserID(c))
	if term := strings.TrimSpace(c.Query("search")); term != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	var employees []models.Employee
	if err := q.Order("name ASC").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

func activeEmployeesHandler(c *gin.Context) {
	var employees []models.Employee
	err := db.Where("user_id = ? AND active = ?", currentUserID(c), true).
		Order("name ASC").Find(&employees).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

func updateEmployeeHandler(c *gin.Context) {
	var employee models.Employee
	err := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), currentUserID(c)).First(&employee).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	var req struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email"`
		Address *string `json:"address"`
		Notes   *string `json:"notes"`
		Active  *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		employee.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Address != nil {
		employee.Address = *req.Address
	}
	if req.Notes != nil {
		employee.Notes = *req.Notes
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}
	if err := db.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update employee"})
		return
	}
	c.JSON(http.StatusOK, employee)
}

func toggleEmployeeHandler(c *gin.Context) {
	var employee models.Employee
	err := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), currentUserID(c)).First(&employee).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	employee.Active = !employee.Active
	if err := db.Model(&employee).Update("active", employee.Active).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update employee"})
		return
	}
	c.JSON(http.StatusOK, employee)
}

// deleteEmployeeHandler removes the employee and, in the same transaction,
// the account's labor expense rows recorded under that employee's name.
// Expenses in other accounts that happen to use the same name are untouched.
func deleteEmployeeHandler(c *gin.Context) {
	userID := currentUserID(c)
	var employee models.Employee
	err := db.Where("id = ? AND user_id = ?", paramUint(c, "id"), userID).First(&employee).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	var removedExpenses int64
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND employee_name = ?", userID, employee.Name).
			Delete(&models.Expense{})
		if res.Error != nil {
			return res.Error
		}
		removedExpenses = res.RowsAffected
		return tx.Delete(&employee).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete employee"})
		return
	}
	logg.WithFields(logrus.Fields{
		"userId":          userID,
		"employeeId":      employee.ID,
		"removedExpenses": removedExpenses,
	}).Info("employee deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted", "removedExpenses": removedExpenses})
}

func listEmployeesHandler(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.clamp()

	q := db.Model(&models.Employee{}).Where("user_id = ?", currentUserID(c))
	if term := strings.TrimSpace(req.SearchTerm); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?", like, like, like)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}
	var employees []models.Employee
	err := q.Order("name ASC").
		Offset(req.Page * req.PageSize).
		Limit(req.PageSize).
		Find(&employees).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}

	resp := pageMeta(req.Page, req.PageSize, count)
	resp["employees"] = employees
	resp["totalItems"] = count
	c.JSON(http.StatusOK, resp)
}
