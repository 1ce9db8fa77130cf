package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
	"github.com/prajapatkavitha/restaurant-management-project/internal/service"
)

type ReportsHandler struct {
	svc       service.ReportService
	salesRepo repository.SalesReportRepository
}

func NewReportsHandler(svc service.ReportService, salesRepo repository.SalesReportRepository) *ReportsHandler {
	return &ReportsHandler{svc: svc, salesRepo: salesRepo}
}

func limitQuery(c *gin.Context, def int) int {
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func (h *ReportsHandler) TopCustomers(c *gin.Context) {
	resp, err := h.svc.TopCustomersBySpend(c.Request.Context(), limitQuery(c, 5))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) PopularDishes(c *gin.Context) {
	resp, err := h.svc.PopularDishes(c.Request.Context(), limitQuery(c, 5))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DailySummary aggregates one calendar day, ?date=YYYY-MM-DD.
func (h *ReportsHandler) DailySummary(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, apierror.Validation("date query parameter is required"))
		return
	}
	resp, err := h.svc.DailySummary(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListSales returns the archived nightly reports, newest first.
func (h *ReportsHandler) ListSales(c *gin.Context) {
	list, err := h.salesRepo.List(c.Request.Context(), limitQuery(c, 30))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DownloadSalesPDF streams the PDF artifact for one archived day.
func (h *ReportsHandler) DownloadSalesPDF(c *gin.Context) {
	date := c.Param("date")
	rep, err := h.salesRepo.FindByDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, apierror.NotFound("no report for that date"))
		return
	}
	if rep.PDFPath == nil || *rep.PDFPath == "" {
		respondError(c, apierror.NotFound("report has no PDF artifact"))
		return
	}
	c.FileAttachment(*rep.PDFPath, "sales_"+date+".pdf")
}
