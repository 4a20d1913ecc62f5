package billing

import (
	"sort"

	"github.com/shopspring/decimal"

	"crewledger/models"
)

// Report aggregation: one pass over the materialized job graph for a date
// range. Jobs are expected with Sales.Items.Product and Customer preloaded; a
// job with no sales simply contributes zero. Every ratio is guarded so an
// empty job set yields zeros, not NaN.

type ReportPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type RevenueSummary struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalMaterials decimal.Decimal `json:"totalMaterials"`
	TotalLabor     decimal.Decimal `json:"totalLabor"`
	TotalJobs      int             `json:"totalJobs"`
	CompletedJobs  int             `json:"completedJobs"`
	CompletionRate float64         `json:"completionRate"`
}

type RevenueReport struct {
	Period            ReportPeriod               `json:"period"`
	Summary           RevenueSummary             `json:"summary"`
	RevenueByCustomer map[string]decimal.Decimal `json:"revenueByCustomer"`
	JobsByStatus      map[string]int             `json:"jobsByStatus"`
}

// jobRevenue sums unitPrice*quantity over positive-quantity sale items.
func jobRevenue(job *models.Job) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range job.Sales {
		for _, item := range sale.Items {
			if item.Quantity > 0 {
				total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
			}
		}
	}
	return total
}

func jobLaborCost(job *models.Job, hourlyRate decimal.Decimal) decimal.Decimal {
	hours := 0
	if job.ActualHours != nil {
		hours = *job.ActualHours
	}
	return hourlyRate.Mul(decimal.NewFromInt(int64(hours)))
}

func customerLabel(job *models.Job) string {
	if job.Customer == nil {
		return ""
	}
	return job.Customer.Name
}

// BuildRevenueReport aggregates revenue, material and labor totals plus
// per-customer and per-status breakdowns for the given jobs.
func BuildRevenueReport(jobs []models.Job, hourlyRate decimal.Decimal, period ReportPeriod) RevenueReport {
	r := RevenueReport{
		Period:            period,
		RevenueByCustomer: map[string]decimal.Decimal{},
		JobsByStatus:      map[string]int{},
	}
	r.Summary.TotalRevenue = decimal.Zero
	r.Summary.TotalMaterials = decimal.Zero
	r.Summary.TotalLabor = decimal.Zero
	for i := range jobs {
		job := &jobs[i]
		if job.Status == models.JobCompleted {
			r.Summary.CompletedJobs++
		}
		r.JobsByStatus[string(job.Status)]++

		revenue := jobRevenue(job)
		r.Summary.TotalRevenue = r.Summary.TotalRevenue.Add(revenue)
		// Materials cost mirrors revenue: positive-quantity items priced at
		// their unit price.
		r.Summary.TotalMaterials = r.Summary.TotalMaterials.Add(revenue)
		r.Summary.TotalLabor = r.Summary.TotalLabor.Add(jobLaborCost(job, hourlyRate))

		if name := customerLabel(job); name != "" {
			r.RevenueByCustomer[name] = r.RevenueByCustomer[name].Add(revenue)
		}
	}
	r.Summary.TotalJobs = len(jobs)
	if r.Summary.TotalJobs > 0 {
		r.Summary.CompletionRate = float64(r.Summary.CompletedJobs) / float64(r.Summary.TotalJobs) * 100
	}
	return r
}

type LaborSummary struct {
	TotalEstimatedHours int             `json:"totalEstimatedHours"`
	TotalActualHours    int             `json:"totalActualHours"`
	Efficiency          float64         `json:"efficiency"`
	TotalLaborCost      decimal.Decimal `json:"totalLaborCost"`
	AverageHourlyRate   decimal.Decimal `json:"averageHourlyRate"`
}

type LaborReport struct {
	Period              ReportPeriod               `json:"period"`
	Summary             LaborSummary               `json:"summary"`
	HoursByStatus       map[string]int             `json:"hoursByStatus"`
	LaborCostByCustomer map[string]decimal.Decimal `json:"laborCostByCustomer"`
}

func BuildLaborReport(jobs []models.Job, hourlyRate decimal.Decimal, period ReportPeriod) LaborReport {
	r := LaborReport{
		Period:              period,
		HoursByStatus:       map[string]int{},
		LaborCostByCustomer: map[string]decimal.Decimal{},
	}
	r.Summary.TotalLaborCost = decimal.Zero
	for i := range jobs {
		job := &jobs[i]
		estimated, actual := 0, 0
		if job.EstimatedHours != nil {
			estimated = *job.EstimatedHours
		}
		if job.ActualHours != nil {
			actual = *job.ActualHours
		}
		r.Summary.TotalEstimatedHours += estimated
		r.Summary.TotalActualHours += actual

		cost := jobLaborCost(job, hourlyRate)
		r.Summary.TotalLaborCost = r.Summary.TotalLaborCost.Add(cost)
		r.HoursByStatus[string(job.Status)] += actual
		if name := customerLabel(job); name != "" {
			r.LaborCostByCustomer[name] = r.LaborCostByCustomer[name].Add(cost)
		}
	}
	if r.Summary.TotalEstimatedHours > 0 {
		r.Summary.Efficiency = float64(r.Summary.TotalActualHours) / float64(r.Summary.TotalEstimatedHours) * 100
	}
	r.Summary.AverageHourlyRate = decimal.Zero
	if r.Summary.TotalActualHours > 0 {
		r.Summary.AverageHourlyRate = r.Summary.TotalLaborCost.
			Div(decimal.NewFromInt(int64(r.Summary.TotalActualHours))).Round(2)
	}
	return r
}

type ExpensesSummary struct {
	TotalBillableExpenses    decimal.Decimal `json:"totalBillableExpenses"`
	TotalNonBillableExpenses decimal.Decimal `json:"totalNonBillableExpenses"`
	TotalExpenses            decimal.Decimal `json:"totalExpenses"`
	BillableRatio            decimal.Decimal `json:"billableRatio"`
}

type ExpensesReport struct {
	Period             ReportPeriod               `json:"period"`
	Summary            ExpensesSummary            `json:"summary"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
	ExpensesBySupplier map[string]decimal.Decimal `json:"expensesBySupplier"`
}

// BuildExpensesReport splits sale-item costs into billable (positive quantity)
// and non-billable (returns), grouped by product category and supplier.
func BuildExpensesReport(jobs []models.Job, period ReportPeriod) ExpensesReport {
	r := ExpensesReport{
		Period:             period,
		ExpensesByCategory: map[string]decimal.Decimal{},
		ExpensesBySupplier: map[string]decimal.Decimal{},
	}
	billable := decimal.Zero
	nonBillable := decimal.Zero
	for i := range jobs {
		for _, sale := range jobs[i].Sales {
			for _, item := range sale.Items {
				cost := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
				if item.Quantity > 0 {
					billable = billable.Add(cost)
				} else {
					nonBillable = nonBillable.Add(cost.Abs())
				}

				category := "General"
				if item.Product != nil && item.Product.Category != "" {
					category = item.Product.Category
				}
				r.ExpensesByCategory[category] = r.ExpensesByCategory[category].Add(cost.Abs())

				if sale.SupplierName != "" {
					r.ExpensesBySupplier[sale.SupplierName] = r.ExpensesBySupplier[sale.SupplierName].Add(cost.Abs())
				}
			}
		}
	}
	r.Summary.TotalBillableExpenses = billable
	r.Summary.TotalNonBillableExpenses = nonBillable
	total := billable.Add(nonBillable)
	r.Summary.TotalExpenses = total
	r.Summary.BillableRatio = decimal.Zero
	if total.GreaterThan(decimal.Zero) {
		r.Summary.BillableRatio = billable.Div(total).Round(4).Mul(decimal.NewFromInt(100))
	}
	return r
}

type InsightsOverview struct {
	TotalJobs       int             `json:"totalJobs"`
	CompletedJobs   int             `json:"completedJobs"`
	InProgressJobs  int             `json:"inProgressJobs"`
	PendingJobs     int             `json:"pendingJobs"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	ActiveCustomers int             `json:"activeCustomers"`
	TotalCustomers  int             `json:"totalCustomers"`
}

type InsightsEfficiency struct {
	TotalEstimatedHours int     `json:"totalEstimatedHours"`
	TotalActualHours    int     `json:"totalActualHours"`
	Efficiency          float64 `json:"efficiency"`
}

type CustomerRevenue struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

type InsightsReport struct {
	Period       ReportPeriod       `json:"period"`
	Overview     InsightsOverview   `json:"overview"`
	Efficiency   InsightsEfficiency `json:"efficiency"`
	TopCustomers []CustomerRevenue  `json:"topCustomers"`
}

// BuildInsightsReport summarizes job counts, revenue, customer activity and
// hour efficiency, with the five highest-revenue customers.
func BuildInsightsReport(jobs []models.Job, period ReportPeriod) InsightsReport {
	r := InsightsReport{Period: period}
	r.Overview.TotalRevenue = decimal.Zero
	byCustomer := map[string]decimal.Decimal{}
	customerIDs := map[uint]bool{}
	for i := range jobs {
		job := &jobs[i]
		switch job.Status {
		case models.JobCompleted:
			r.Overview.CompletedJobs++
		case models.JobInProgress:
			r.Overview.InProgressJobs++
		case models.JobPending:
			r.Overview.PendingJobs++
		}
		revenue := jobRevenue(job)
		r.Overview.TotalRevenue = r.Overview.TotalRevenue.Add(revenue)
		if job.Customer != nil {
			customerIDs[job.Customer.ID] = true
			byCustomer[job.Customer.Name] = byCustomer[job.Customer.Name].Add(revenue)
		}
		if job.EstimatedHours != nil {
			r.Efficiency.TotalEstimatedHours += *job.EstimatedHours
		}
		if job.ActualHours != nil {
			r.Efficiency.TotalActualHours += *job.ActualHours
		}
	}
	r.Overview.TotalJobs = len(jobs)
	r.Overview.ActiveCustomers = len(customerIDs)
	r.Overview.TotalCustomers = len(customerIDs)
	if r.Efficiency.TotalEstimatedHours > 0 {
		r.Efficiency.Efficiency = float64(r.Efficiency.TotalActualHours) / float64(r.Efficiency.TotalEstimatedHours) * 100
	}

	top := make([]CustomerRevenue, 0, len(byCustomer))
	for name, revenue := range byCustomer {
		top = append(top, CustomerRevenue{Name: name, Revenue: revenue})
	}
	sort.Slice(top, func(i, j int) bool {
		if !top[i].Revenue.Equal(top[j].Revenue) {
			return top[i].Revenue.GreaterThan(top[j].Revenue)
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > 5 {
		top = top[:5]
	}
	r.TopCustomers = top
	return r
}
