package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	audit := router.Group("/api/hotels/:hotelId/night-audit")
	audit.Use(middleware.RequireRole("admin", "manager", "auditor"))
	{
		audit.POST("/run", h.StartRun)
		audit.GET("/runs", h.ListRuns)
	}

	runs := router.Group("/api/night-audit/runs")
	runs.Use(middleware.RequireRole("admin", "manager", "auditor"))
	{
		runs.GET("/:id", h.GetRun)
	}
}

// StartRun kicks off a night audit for the hotel's current business date.
// The run executes in the background; progress streams over /ws and the
// returned run id can be polled.
func (h *AuditHandler) StartRun(c *gin.Context) {
	startedBy := c.GetString("userID")

	run, err := h.auditService.StartNightAudit(c.Request.Context(), c.Param("hotelId"), startedBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusAccepted, response.Success(http.StatusAccepted, run))
}

// GetRun returns one audit run with its failure list
func (h *AuditHandler) GetRun(c *gin.Context) {
	run, err := h.auditService.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, run))
}

// ListRuns returns the hotel's audit run history, newest first
func (h *AuditHandler) ListRuns(c *gin.Context) {
	// Run rows carry the full failure list, so pages are kept small.
	params := pagination.ParseDefault(c, 10)

	runs, total, err := h.auditService.ListRuns(c.Request.Context(), c.Param("hotelId"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, runs, total, params.Page, params.Limit))
}
