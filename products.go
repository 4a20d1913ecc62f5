package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"crewledger/models"
)

func createProductHandler(c *gin.Context) {
	var req struct {
		Name        string           `json:"name"`
		Description string           `json:"description"`
		UnitPrice   *decimal.Decimal `json:"unitPrice"`
		Category    string           `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product name is required"})
		return
	}
	product := models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    req.Category,
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
	}
	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func getProductHandler(c *gin.Context) {
	var product models.Product
	if err := db.First(&product, paramUint(c, "id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// searchProductsHandler returns an unpaged result for typeahead pickers.
func searchProductsHandler(c *gin.Context) {
	var req struct {
		SearchTerm string `json:"searchTerm"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	q := db.Model(&models.Product{})
	if term := strings.TrimSpace(req.SearchTerm); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", like, like)
	}
	var products []models.Product
	if err := q.Order("name ASC").Limit(50).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func listProductsHandler(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.clamp()

	q := db.Model(&models.Product{})
	if term := strings.TrimSpace(req.SearchTerm); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?", like, like, like)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	var products []models.Product
	err := q.Order("name ASC").
		Offset(req.Page * req.PageSize).
		Limit(req.PageSize).
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	resp := pageMeta(req.Page, req.PageSize, count)
	resp["products"] = products
	resp["totalItems"] = count
	c.JSON(http.StatusOK, resp)
}
