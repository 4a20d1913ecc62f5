package main

import "github.com/gin-gonic/gin"

// setupRoutes registers the full HTTP surface. Everything except the auth
// endpoints sits behind the JWT middleware and is scoped to the caller's
// account inside the handlers.
func setupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", registerHandler)
		auth.POST("/login", loginHandler)
		auth.POST("/google", googleLoginHandler)
		auth.GET("/check-email", checkEmailHandler)
		auth.POST("/reset-password", resetPasswordHandler)
		auth.POST("/change-password", jwtAuthMiddleware(), changePasswordHandler)
		auth.GET("/user-info", jwtAuthMiddleware(), userInfoHandler)
	}

	protected := api.Group("")
	protected.Use(jwtAuthMiddleware())

	settings := protected.Group("/account-settings")
	{
		settings.GET("", getAccountSettingsHandler)
		settings.PUT("", updateAccountSettingsHandler)
	}

	customers := protected.Group("/users/customers")
	{
		customers.POST("", createCustomerHandler)
		customers.POST("/create", createCustomerHandler)
		customers.POST("/list", listCustomersHandler)
		customers.GET("/:id", getCustomerHandler)
		customers.PUT("/:id", updateCustomerHandler)
		customers.DELETE("/:id", deleteCustomerHandler)
	}

	employees := protected.Group("/employees")
	{
		employees.GET("", searchEmployeesHandler)
		employees.GET("/active", activeEmployeesHandler)
		employees.POST("", createEmployeeHandler)
		employees.POST("/list", listEmployeesHandler)
		employees.GET("/:id", getEmployeeHandler)
		employees.PUT("/:id", updateEmployeeHandler)
		employees.PUT("/:id/toggle", toggleEmployeeHandler)
		employees.DELETE("/:id", deleteEmployeeHandler)
	}

	products := protected.Group("/products")
	{
		products.POST("", createProductHandler)
		products.POST("/list", listProductsHandler)
		products.POST("/search", searchProductsHandler)
		products.GET("/:id", getProductHandler)
	}

	jobs := protected.Group("/jobs")
	{
		jobs.POST("", createJobHandler)
		jobs.POST("/create", createJobHandler)
		jobs.POST("/list", listJobsHandler)
		jobs.GET("/:id", getJobHandler)
		jobs.PUT("/:id", updateJobHandler)
		jobs.DELETE("/:id", deleteJobHandler)
		jobs.POST("/:id/materials", addJobMaterialHandler)
		jobs.PUT("/:id/materials/:saleId", updateJobMaterialHandler)
		jobs.DELETE("/:id/materials/:productId", removeJobMaterialHandler)
	}

	payments := protected.Group("/payments")
	{
		payments.POST("", createPaymentHandler)
		payments.GET("/job/:jobId", listJobPaymentsHandler)
		payments.GET("/job/:jobId/total", jobPaymentTotalHandler)
		payments.DELETE("/:id", deletePaymentHandler)
	}

	contracts := protected.Group("/contracts")
	{
		contracts.POST("", createContractHandler)
		contracts.POST("/create", createContractHandler)
		contracts.POST("/list", listContractsHandler)
		contracts.GET("/by-job/:jobId", contractByJobHandler)
		contracts.GET("/:id", getContractHandler)
		contracts.PUT("/:id", updateContractHandler)
		contracts.DELETE("/:id", deleteContractHandler)
	}

	expenses := protected.Group("/expenses")
	{
		expenses.POST("", createExpenseHandler)
		expenses.POST("/list", listExpensesHandler)
		expenses.GET("/job/:jobId", listJobExpensesHandler)
		expenses.GET("/:id", getExpenseHandler)
		expenses.PUT("/:id", updateExpenseHandler)
		expenses.DELETE("/:id", deleteExpenseHandler)
	}

	reports := protected.Group("/reports")
	{
		reports.GET("/revenue", revenueReportHandler)
		reports.GET("/labor", laborReportHandler)
		reports.GET("/expenses", expensesReportHandler)
		reports.GET("/insights", insightsReportHandler)
	}

	files := protected.Group("/files")
	{
		files.POST("/upload", uploadFileHandler)
		files.POST("/upload-multiple", uploadFilesHandler)
	}

	logo := protected.Group("/logo")
	{
		logo.POST("/upload", uploadLogoHandler)
		logo.DELETE("", deleteLogoHandler)
	}
}
