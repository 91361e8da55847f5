package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"clinic-admin-server/internal/models"
	"clinic-admin-server/internal/store"
	"clinic-admin-server/internal/utils"
)

// RevenueHandler handles revenue ledger and reporting requests.
type RevenueHandler struct {
	Store *store.Store
}

// NewRevenueHandler creates a new RevenueHandler.
func NewRevenueHandler(s *store.Store) *RevenueHandler {
	return &RevenueHandler{Store: s}
}

// CreateRevenueRequest represents a manual daily revenue entry.
type CreateRevenueRequest struct {
	Date             string                 `json:"date" binding:"required"`
	IVRevenue        int                    `json:"ivRevenue" binding:"min=0"`
	EndoscopyRevenue int                    `json:"endoscopyRevenue" binding:"min=0"`
	ServiceDetails   []models.ServiceDetail `json:"serviceDetails"`
}

// CreateRevenue records a manual revenue entry. Same-date entries merge by
// summing; the stored total is always iv + endoscopy.
func (h *RevenueHandler) CreateRevenue(c *gin.Context) {
	var req CreateRevenueRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !utils.IsValidDate(req.Date) {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	merged := h.Store.AddRevenue(models.Revenue{
		Date:             req.Date,
		IVRevenue:        req.IVRevenue,
		EndoscopyRevenue: req.EndoscopyRevenue,
		TotalRevenue:     req.IVRevenue + req.EndoscopyRevenue,
		ServiceDetails:   req.ServiceDetails,
	})
	utils.Created(c, "Revenue recorded successfully", merged)
}

// GetRevenueByDate fetches the recorded revenue row for ?date=.
func (h *RevenueHandler) GetRevenueByDate(c *gin.Context) {
	date := c.Query("date")
	if !utils.IsValidDate(date) {
		utils.BadRequest(c, "Invalid or missing date, expected YYYY-MM-DD")
		return
	}
	rec, ok := h.Store.GetRevenueByDate(date)
	if !ok {
		utils.NotFound(c, "No revenue recorded for this date")
		return
	}
	utils.Success(c, "Revenue fetched successfully", rec)
}

// GetMonthlyRevenue lists the revenue rows for ?year=&month=.
func (h *RevenueHandler) GetMonthlyRevenue(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}
	utils.Success(c, "Monthly revenue fetched successfully", gin.H{
		"records": h.Store.GetMonthlyRevenue(year, month),
		"total":   h.Store.GetTotalRevenueByMonth(year, month),
	})
}

// GetReconciledRevenue returns the displayed total for ?date=: the larger
// of the recorded ledger total and the completed paid appointment sum.
func (h *RevenueHandler) GetReconciledRevenue(c *gin.Context) {
	date := c.Query("date")
	if !utils.IsValidDate(date) {
		utils.BadRequest(c, "Invalid or missing date, expected YYYY-MM-DD")
		return
	}
	utils.Success(c, "Reconciled revenue fetched successfully", gin.H{
		"date":  date,
		"total": h.Store.ReconciledTotal(date),
	})
}

// GetDailyServices lists the per-service usage tallies for ?date=.
func (h *RevenueHandler) GetDailyServices(c *gin.Context) {
	date := c.Query("date")
	if !utils.IsValidDate(date) {
		utils.BadRequest(c, "Invalid or missing date, expected YYYY-MM-DD")
		return
	}
	utils.Success(c, "Daily services fetched successfully", h.Store.GetDailyServices(date))
}

// MonthlyReportRow is one day of the monthly marketing report.
type MonthlyReportRow struct {
	Date             string `json:"date"`
	RecordedTotal    int    `json:"recordedTotal"`
	ReconciledTotal  int    `json:"reconciledTotal"`
	IVRevenue        int    `json:"ivRevenue"`
	EndoscopyRevenue int    `json:"endoscopyRevenue"`
}

// GetMonthlyReport returns per-day reconciled totals for ?year=&month=.
func (h *RevenueHandler) GetMonthlyReport(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}

	var rows []MonthlyReportRow
	total := 0
	for _, rec := range h.Store.GetMonthlyRevenue(year, month) {
		row := MonthlyReportRow{
			Date:             rec.Date,
			RecordedTotal:    rec.TotalRevenue,
			ReconciledTotal:  h.Store.ReconciledTotal(rec.Date),
			IVRevenue:        rec.IVRevenue,
			EndoscopyRevenue: rec.EndoscopyRevenue,
		}
		total += row.ReconciledTotal
		rows = append(rows, row)
	}
	utils.Success(c, "Monthly report fetched successfully", gin.H{
		"rows":  rows,
		"total": total,
	})
}

func yearMonth(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		utils.BadRequest(c, "Invalid or missing year")
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		utils.BadRequest(c, "Invalid or missing month")
		return 0, 0, false
	}
	return year, month, true
}
