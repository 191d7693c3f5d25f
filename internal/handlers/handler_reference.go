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
)

// referenceHandler exposes the thin reference-data surface (departments
// and workers) the workflow and wage engines consume.
type referenceHandler struct {
	departmentService portssvc.DepartmentSvc
	workerService     portssvc.WorkerSvc
}

// registerReferenceRoutes registers routes for departments and workers
func registerReferenceRoutes(rg *gin.RouterGroup, departmentService portssvc.DepartmentSvc, workerService portssvc.WorkerSvc) {
	h := &referenceHandler{departmentService: departmentService, workerService: workerService}

	departments := rg.Group("/departments")
	{
		departments.POST("", h.createDepartment)
		departments.GET("", h.listDepartments)
		departments.GET("/:departmentID", h.getDepartment)
	}

	workers := rg.Group("/workers")
	{
		workers.POST("", h.createWorker)
		workers.GET("", h.listWorkers)
		workers.GET("/:workerID", h.getWorker)
	}
}

func listPagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// createDepartment godoc
// @Summary Register a department
// @Tags reference
// @Accept json
// @Produce json
// @Param department body dto.CreateDepartmentRequest true "Department"
// @Success 201 {object} dto.DepartmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /departments [post]
func (h *referenceHandler) createDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	department, err := h.departmentService.CreateDepartment(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create department", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToDepartmentResponse(department))
}

// getDepartment godoc
// @Summary Get a department
// @Tags reference
// @Produce json
// @Param departmentID path int true "Department ID"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 404 {object} map[string]string "Department not found"
// @Security BearerAuth
// @Router /departments/{departmentID} [get]
func (h *referenceHandler) getDepartment(c *gin.Context) {
	departmentID, ok := parseIDParam(c, "departmentID")
	if !ok {
		return
	}

	department, err := h.departmentService.GetDepartmentByID(c.Request.Context(), departmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentResponse(department))
}

// listDepartments godoc
// @Summary List departments
// @Tags reference
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.DepartmentResponse
// @Security BearerAuth
// @Router /departments [get]
func (h *referenceHandler) listDepartments(c *gin.Context) {
	limit, offset := listPagination(c)

	departments, err := h.departmentService.ListDepartments(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.DepartmentResponse, len(departments))
	for i := range departments {
		responses[i] = dto.ToDepartmentResponse(&departments[i])
	}
	c.JSON(http.StatusOK, responses)
}

// createWorker godoc
// @Summary Register a worker
// @Tags reference
// @Accept json
// @Produce json
// @Param worker body dto.CreateWorkerRequest true "Worker with wage rule"
// @Success 201 {object} dto.WorkerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /workers [post]
func (h *referenceHandler) createWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	worker, err := h.workerService.CreateWorker(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create worker", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkerResponse(worker))
}

// getWorker godoc
// @Summary Get a worker
// @Tags reference
// @Produce json
// @Param workerID path int true "Worker ID"
// @Success 200 {object} dto.WorkerResponse
// @Failure 404 {object} map[string]string "Worker not found"
// @Security BearerAuth
// @Router /workers/{workerID} [get]
func (h *referenceHandler) getWorker(c *gin.Context) {
	workerID, ok := parseIDParam(c, "workerID")
	if !ok {
		return
	}

	worker, err := h.workerService.GetWorkerByID(c.Request.Context(), workerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerResponse(worker))
}

// listWorkers godoc
// @Summary List workers
// @Tags reference
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.WorkerResponse
// @Security BearerAuth
// @Router /workers [get]
func (h *referenceHandler) listWorkers(c *gin.Context) {
	limit, offset := listPagination(c)

	workers, err := h.workerService.ListWorkers(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.WorkerResponse, len(workers))
	for i := range workers {
		responses[i] = dto.ToWorkerResponse(&workers[i])
	}
	c.JSON(http.StatusOK, responses)
}
