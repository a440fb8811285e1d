package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stock-order-service/internal/models"
	"stock-order-service/internal/repository"
)

// RunsHandler exposes import-run history. It is only registered when a
// database is configured.
type RunsHandler struct {
	repo *repository.RunRepository
}

// NewRunsHandler creates a new runs handler
func NewRunsHandler(repo *repository.RunRepository) *RunsHandler {
	return &RunsHandler{repo: repo}
}

// ListRuns returns recent runs, newest first
// GET /api/v1/stock-orders/runs
func (h *RunsHandler) ListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	runs, total, err := h.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    runs,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetRun returns one run with its per-line errors
// GET /api/v1/stock-orders/runs/:id
func (h *RunsHandler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "run id must be a UUID"},
		})
		return
	}

	run, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "run not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    run,
	})
}
