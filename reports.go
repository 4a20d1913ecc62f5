package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crewledger/models"
	"crewledger/pkg/billing"
)

const reportDateLayout = "2006-01-02"

// reportWindow parses required startDate/endDate query params.
func reportWindow(c *gin.Context) (time.Time, time.Time, billing.ReportPeriod, bool) {
	startRaw := c.Query("startDate")
	endRaw := c.Query("endDate")
	start, serr := time.Parse(reportDateLayout, startRaw)
	end, eerr := time.Parse(reportDateLayout, endRaw)
	if serr != nil || eerr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate are required in YYYY-MM-DD format"})
		return time.Time{}, time.Time{}, billing.ReportPeriod{}, false
	}
	// End of day so jobs dated on endDate are included.
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end, billing.ReportPeriod{StartDate: startRaw, EndDate: endRaw}, true
}

// reportJobs loads the job graph for jobs whose scheduled range overlaps the
// window. Jobs with no dates at all are always included.
func reportJobs(userID uint, start, end time.Time) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where(
		"user_id = ? AND (start_date IS NULL OR start_date <= ?) AND (end_date IS NULL OR end_date >= ?)",
		userID, end, start,
	).
		Preload("Customer").
		Preload("Sales.Items.Product").
		Find(&jobs).Error
	return jobs, err
}

func revenueReportHandler(c *gin.Context) {
	start, end, period, ok := reportWindow(c)
	if !ok {
		return
	}
	jobs, err := reportJobs(currentUserID(c), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, billing.BuildRevenueReport(jobs, cfg.LaborHourlyRate, period))
}

func laborReportHandler(c *gin.Context) {
	start, end, period, ok := reportWindow(c)
	if !ok {
		return
	}
	jobs, err := reportJobs(currentUserID(c), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, billing.BuildLaborReport(jobs, cfg.LaborHourlyRate, period))
}

func expensesReportHandler(c *gin.Context) {
	start, end, period, ok := reportWindow(c)
	if !ok {
		return
	}
	jobs, err := reportJobs(currentUserID(c), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, billing.BuildExpensesReport(jobs, period))
}

func insightsReportHandler(c *gin.Context) {
	start, end, period, ok := reportWindow(c)
	if !ok {
		return
	}
	jobs, err := reportJobs(currentUserID(c), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, billing.BuildInsightsReport(jobs, period))
}
