package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/himaltex/production_tracking_app/internal/apperrors"
	portssvc "github.com/himaltex/production_tracking_app/internal/core/ports/services"
	"github.com/himaltex/production_tracking_app/internal/dto"
	"github.com/himaltex/production_tracking_app/internal/middleware"
	"github.com/himaltex/production_tracking_app/internal/utils/nepcal"
)

// wageHandler handles HTTP requests for wage reports.
type wageHandler struct {
	wageService portssvc.WageSvc
}

// newWageHandler creates a new wageHandler
func newWageHandler(ws portssvc.WageSvc) *wageHandler {
	return &wageHandler{wageService: ws}
}

// registerWageRoutes registers routes for wage reports
func registerWageRoutes(rg *gin.RouterGroup, wageService portssvc.WageSvc) {
	h := newWageHandler(wageService)

	wageGroup := rg.Group("/wages")
	{
		wageGroup.GET("/worker/:workerID", h.getWorkerWages)
		wageGroup.GET("/all", h.getAllWorkersWages)
		wageGroup.GET("/billable", h.getBillableWorkLogs)
		wageGroup.GET("/department/:departmentID", h.getDepartmentWageSummary)
		wageGroup.GET("/sub-batch/:subBatchID", h.getSubBatchWageSummary)
	}
}

// windowFromQuery reads the optional start_date / end_date query
// parameters. Values may be in either calendar system; the service
// normalizes and validates them.
func windowFromQuery(c *gin.Context) dto.DateWindow {
	return dto.DateWindow{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
}

// optionalIDQuery parses an optional positive integer query parameter.
func optionalIDQuery(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return nil, false
	}
	return &id, true
}

// getWorkerWages godoc
// @Summary Calculate one worker's wages
// @Description Aggregates the worker's billable work logs over an inclusive date window
// @Tags wages
// @Produce json
// @Param workerID path int true "Worker ID"
// @Param start_date query string false "Window start (YYYY-MM-DD, BS or AD)"
// @Param end_date query string false "Window end (YYYY-MM-DD, BS or AD)"
// @Success 200 {object} dto.WageReportResponse
// @Failure 400 {object} map[string]string "Invalid id or date"
// @Failure 404 {object} map[string]string "Worker not found"
// @Security BearerAuth
// @Router /wages/worker/{workerID} [get]
func (h *wageHandler) getWorkerWages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	workerID, ok := parseIDParam(c, "workerID")
	if !ok {
		return
	}

	report, err := h.wageService.CalculateWorkerWages(c.Request.Context(), workerID, windowFromQuery(c))
	if err != nil {
		h.respondWageError(c, err, logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToWageReportResponse(*report))
}

// getAllWorkersWages godoc
// @Summary Calculate wages for all active workers
// @Description One report per worker with billable logs in the window; idle workers are omitted
// @Tags wages
// @Produce json
// @Param start_date query string false "Window start (YYYY-MM-DD, BS or AD)"
// @Param end_date query string false "Window end (YYYY-MM-DD, BS or AD)"
// @Param department_id query int false "Restrict to one department"
// @Success 200 {array} dto.WageReportResponse
// @Failure 400 {object} map[string]string "Invalid date or department id"
// @Security BearerAuth
// @Router /wages/all [get]
func (h *wageHandler) getAllWorkersWages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	departmentID, ok := optionalIDQuery(c, "department_id")
	if !ok {
		return
	}

	reports, err := h.wageService.CalculateAllWorkersWages(c.Request.Context(), windowFromQuery(c), departmentID)
	if err != nil {
		h.respondWageError(c, err, logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToWageReportResponses(reports))
}

// getBillableWorkLogs godoc
// @Summary List billable work logs
// @Description Returns billable logs matching the filters, without aggregation
// @Tags wages
// @Produce json
// @Param worker_id query int false "Worker ID"
// @Param start_date query string false "Window start (YYYY-MM-DD, BS or AD)"
// @Param end_date query string false "Window end (YYYY-MM-DD, BS or AD)"
// @Success 200 {array} dto.WorkLogResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Security BearerAuth
// @Router /wages/billable [get]
func (h *wageHandler) getBillableWorkLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	workerID, ok := optionalIDQuery(c, "worker_id")
	if !ok {
		return
	}

	logs, err := h.wageService.GetBillableWorkLogs(c.Request.Context(), workerID, windowFromQuery(c))
	if err != nil {
		h.respondWageError(c, err, logger)
		return
	}

	responses := make([]dto.WorkLogResponse, len(logs))
	for i, log := range logs {
		bs, _ := nepcal.ToBSString(log.WorkDate)
		responses[i] = dto.ToWorkLogResponse(log, bs)
	}
	c.JSON(http.StatusOK, responses)
}

// getDepartmentWageSummary godoc
// @Summary Department wage summary
// @Description Aggregates wages across all workers who logged work in the department during the window
// @Tags wages
// @Produce json
// @Param departmentID path int true "Department ID"
// @Param start_date query string false "Window start (YYYY-MM-DD, BS or AD)"
// @Param end_date query string false "Window end (YYYY-MM-DD, BS or AD)"
// @Success 200 {object} dto.DepartmentWageSummaryResponse
// @Failure 400 {object} map[string]string "Invalid id or date"
// @Failure 404 {object} map[string]string "Department not found"
// @Security BearerAuth
// @Router /wages/department/{departmentID} [get]
func (h *wageHandler) getDepartmentWageSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	departmentID, ok := parseIDParam(c, "departmentID")
	if !ok {
		return
	}

	summary, err := h.wageService.GetDepartmentWageSummary(c.Request.Context(), departmentID, windowFromQuery(c))
	if err != nil {
		h.respondWageError(c, err, logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentWageSummaryResponse(summary))
}

// getSubBatchWageSummary godoc
// @Summary Sub-batch labour cost summary
// @Description Totals the labour cost attributed to a sub-batch across its full history
// @Tags wages
// @Produce json
// @Param subBatchID path int true "Sub-batch ID"
// @Success 200 {object} dto.SubBatchWageSummaryResponse
// @Failure 400 {object} map[string]string "Invalid id"
// @Security BearerAuth
// @Router /wages/sub-batch/{subBatchID} [get]
func (h *wageHandler) getSubBatchWageSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	subBatchID, ok := parseIDParam(c, "subBatchID")
	if !ok {
		return
	}

	summary, err := h.wageService.GetSubBatchWageSummary(c.Request.Context(), subBatchID)
	if err != nil {
		h.respondWageError(c, err, logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubBatchWageSummaryResponse(summary))
}

// respondWageError maps service errors onto the uniform wage-API statuses.
func (h *wageHandler) respondWageError(c *gin.Context, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Wage operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
