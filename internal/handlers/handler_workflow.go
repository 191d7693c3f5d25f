package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/himaltex/production_tracking_app/internal/apperrors"
	portssvc "github.com/himaltex/production_tracking_app/internal/core/ports/services"
	"github.com/himaltex/production_tracking_app/internal/dto"
	"github.com/himaltex/production_tracking_app/internal/middleware"
)

// workflowHandler handles HTTP requests for sub-batch workflow tracking.
type workflowHandler struct {
	workflowService portssvc.WorkflowSvc
}

// newWorkflowHandler creates a new workflowHandler
func newWorkflowHandler(ws portssvc.WorkflowSvc) *workflowHandler {
	return &workflowHandler{workflowService: ws}
}

// registerWorkflowRoutes registers routes for workflow tracking
func registerWorkflowRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvc) {
	h := newWorkflowHandler(workflowService)

	workflowGroup := rg.Group("/workflow")
	{
		workflowGroup.POST("", h.createWorkflow)
		workflowGroup.POST("/reject", h.rejectSubBatch)
		workflowGroup.GET("/:subBatchID/status", h.getWorkflowStatus)
		workflowGroup.POST("/:subBatchID/advance", h.advanceWorkflow)
	}
}

// parseIDParam parses a positive integer path parameter, answering 400 with
// the parameter name when it is malformed.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid path parameter", slog.String("param", name), slog.String("value", raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return id, true
}

// bindingErrorMessage renders a request-binding failure, naming the fields
// that failed validation when the error carries them.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msg := "invalid request body, check fields:"
		for _, fe := range verrs {
			msg += " " + fe.Field()
		}
		return msg
	}
	return "invalid request body: " + err.Error()
}

// createWorkflow godoc
// @Summary Create a sub-batch workflow
// @Description Records the planned ordered department sequence for a sub-batch
// @Tags workflow
// @Accept json
// @Produce json
// @Param workflow body dto.CreateWorkflowRequest true "Workflow definition"
// @Success 201 {object} dto.WorkflowResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Sub-batch already has a workflow"
// @Security BearerAuth
// @Router /workflow [post]
func (h *workflowHandler) createWorkflow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create workflow request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	workflow, err := h.workflowService.CreateWorkflow(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create workflow", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkflowResponse(workflow))
}

// getWorkflowStatus godoc
// @Summary Get workflow status for a sub-batch
// @Description Projects the planned department sequence and live assignments into a status report
// @Tags workflow
// @Produce json
// @Param subBatchID path int true "Sub-batch ID"
// @Success 200 {object} dto.WorkflowStatusResponse
// @Failure 400 {object} map[string]string "Invalid sub-batch id"
// @Failure 404 {object} map[string]string "No workflow for sub-batch"
// @Security BearerAuth
// @Router /workflow/{subBatchID}/status [get]
func (h *workflowHandler) getWorkflowStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	subBatchID, ok := parseIDParam(c, "subBatchID")
	if !ok {
		return
	}

	status, err := h.workflowService.GetWorkflowStatus(c.Request.Context(), subBatchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute workflow status", slog.Int64("sub_batch_id", subBatchID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkflowStatusResponse(status))
}

// rejectSubBatch godoc
// @Summary Reject part of a sub-batch to another department
// @Description Atomically records the rejection and the destination department's NEW_ARRIVAL assignment
// @Tags workflow
// @Accept json
// @Produce json
// @Param rejection body dto.RejectSubBatchRequest true "Rejection details"
// @Success 201 {object} dto.RejectedBatchResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Sub-batch or destination department unknown"
// @Security BearerAuth
// @Router /workflow/reject [post]
func (h *workflowHandler) rejectSubBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RejectSubBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid rejection request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	rejection, err := h.workflowService.RejectSubBatch(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to reject sub-batch", slog.Int64("sub_batch_id", req.SubBatchID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToRejectedBatchResponse(rejection))
}

// advanceWorkflow godoc
// @Summary Advance a sub-batch to its next planned department
// @Description Completes the current assignment and moves the sub-batch to the next workflow step
// @Tags workflow
// @Produce json
// @Param subBatchID path int true "Sub-batch ID"
// @Success 200 {object} dto.WorkflowResponse
// @Failure 400 {object} map[string]string "Invalid id or workflow already completed"
// @Failure 404 {object} map[string]string "No workflow for sub-batch"
// @Security BearerAuth
// @Router /workflow/{subBatchID}/advance [post]
func (h *workflowHandler) advanceWorkflow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	subBatchID, ok := parseIDParam(c, "subBatchID")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	workflow, err := h.workflowService.AdvanceWorkflow(c.Request.Context(), subBatchID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to advance workflow", slog.Int64("sub_batch_id", subBatchID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkflowResponse(workflow))
}
