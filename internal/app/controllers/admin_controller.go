package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/app/services"
	"github.com/derin/volunteerhub/internal/middleware"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
	"github.com/derin/volunteerhub/internal/pkg/export"
)

// Bootstrapper runs the idempotent schema and demo data setup behind /init
type Bootstrapper interface {
	Bootstrap(ctx context.Context) error
}

// AdminController handles the operational endpoints: health, init, stats
// and reports
type AdminController struct {
	reportService services.ReportService
	bootstrapper  Bootstrapper
}

// NewAdminController creates a new AdminController
func NewAdminController(reportService services.ReportService, bootstrapper Bootstrapper) *AdminController {
	return &AdminController{
		reportService: reportService,
		bootstrapper:  bootstrapper,
	}
}

// HealthCheck reports service liveness
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]string "Service is up"
// @Router /health [get]
func (c *AdminController) HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Init runs migrations and demo seeding. Safe to call repeatedly; an
// already-initialized store is left as it is.
// @Summary Initialize the store
// @Produce json
// @Success 200 {object} map[string]bool "Initialization result"
// @Router /init [get]
func (c *AdminController) Init(ctx *gin.Context) {
	if err := c.bootstrapper.Bootstrap(ctx); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// GetStats returns the admin dashboard counters
// @Summary Dashboard statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats} "Stats retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Router /stats [get]
func (c *AdminController) GetStats(ctx *gin.Context) {
	stats, err := c.reportService.DashboardStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// GetReport returns the events or volunteers report, as JSON or CSV
// @Summary Reports
// @Description type is "events" or "volunteers"; format=csv switches to CSV output
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param type path string true "Report type" Enums(events, volunteers)
// @Param format query string false "Output format" Enums(json, csv)
// @Success 200 {object} dto.APIResponse "Report retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Failure 404 {object} dto.ErrorResponse "Unknown report type"
// @Router /reports/{type} [get]
func (c *AdminController) GetReport(ctx *gin.Context) {
	reportType := ctx.Param("type")
	asCSV := ctx.Query("format") == "csv"

	switch reportType {
	case "events":
		rows, err := c.reportService.EventReport(ctx)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		if asCSV {
			writeCSV(ctx, "events.csv", export.EventReportCSV(rows))
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))

	case "volunteers":
		rows, err := c.reportService.VolunteerReport(ctx)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		if asCSV {
			writeCSV(ctx, "volunteers.csv", export.VolunteerReportCSV(rows))
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))

	default:
		middleware.HandleAPIError(ctx, apperrors.NewResourceNotFoundError("unknown report type"))
	}
}

func writeCSV(ctx *gin.Context, filename, body string) {
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}
