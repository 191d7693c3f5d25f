package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/himaltex/production_tracking_app/internal/apperrors"
	portssvc "github.com/himaltex/production_tracking_app/internal/core/ports/services"
	"github.com/himaltex/production_tracking_app/internal/dto"
	"github.com/himaltex/production_tracking_app/internal/middleware"
	"github.com/himaltex/production_tracking_app/internal/utils/nepcal"
)

// workLogHandler handles HTTP requests for work-log entry and queries.
type workLogHandler struct {
	workLogService portssvc.WorkLogSvc
}

// newWorkLogHandler creates a new workLogHandler
func newWorkLogHandler(ws portssvc.WorkLogSvc) *workLogHandler {
	return &workLogHandler{workLogService: ws}
}

// registerWorkLogRoutes registers routes for work logs
func registerWorkLogRoutes(rg *gin.RouterGroup, workLogService portssvc.WorkLogSvc) {
	h := newWorkLogHandler(workLogService)

	workLogGroup := rg.Group("/worklogs")
	{
		workLogGroup.POST("", h.createWorkLog)
		workLogGroup.GET("", h.listWorkLogs)
	}
}

// createWorkLog godoc
// @Summary Record a unit of work
// @Description Appends a work log; the work date may be a BS or AD YYYY-MM-DD string
// @Tags worklogs
// @Accept json
// @Produce json
// @Param worklog body dto.CreateWorkLogRequest true "Work log entry"
// @Success 201 {object} dto.WorkLogResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Worker or department unknown"
// @Security BearerAuth
// @Router /worklogs [post]
func (h *workLogHandler) createWorkLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWorkLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid work log request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	log, err := h.workLogService.CreateWorkLog(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record work log", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	bs, _ := nepcal.ToBSString(log.WorkDate)
	c.JSON(http.StatusCreated, dto.ToWorkLogResponse(*log, bs))
}

// listWorkLogs godoc
// @Summary List work logs
// @Description Returns work logs matching the filters; dates accepted in either calendar
// @Tags worklogs
// @Produce json
// @Param worker_id query int false "Worker ID"
// @Param sub_batch_id query int false "Sub-batch ID"
// @Param department_id query int false "Department ID"
// @Param start_date query string false "Window start (YYYY-MM-DD, BS or AD)"
// @Param end_date query string false "Window end (YYYY-MM-DD, BS or AD)"
// @Param billable_only query bool false "Only billable logs"
// @Success 200 {array} dto.WorkLogResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Security BearerAuth
// @Router /worklogs [get]
func (h *workLogHandler) listWorkLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	workerID, ok := optionalIDQuery(c, "worker_id")
	if !ok {
		return
	}
	subBatchID, ok := optionalIDQuery(c, "sub_batch_id")
	if !ok {
		return
	}
	departmentID, ok := optionalIDQuery(c, "department_id")
	if !ok {
		return
	}

	req := dto.ListWorkLogsRequest{
		WorkerID:     workerID,
		SubBatchID:   subBatchID,
		DepartmentID: departmentID,
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
		BillableOnly: c.Query("billable_only") == "true",
	}

	logs, err := h.workLogService.ListWorkLogs(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list work logs", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	responses := make([]dto.WorkLogResponse, len(logs))
	for i, log := range logs {
		bs, _ := nepcal.ToBSString(log.WorkDate)
		responses[i] = dto.ToWorkLogResponse(log, bs)
	}
	c.JSON(http.StatusOK, responses)
}
