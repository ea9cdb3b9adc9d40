package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxHandler struct {
	taxService service.TaxService
}

func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

func (h *TaxHandler) RegisterRoutes(router *gin.RouterGroup) {
	hotelScoped := router.Group("/api/hotels/:hotelId")
	hotelScoped.Use(middleware.RequireRole("admin", "manager", "auditor"))
	{
		hotelScoped.GET("/tax-rules", h.ListTaxRules)
		hotelScoped.POST("/tax-preview", h.PreviewTax)
	}

	hotelMutations := router.Group("/api/hotels/:hotelId")
	hotelMutations.Use(middleware.RequireRole("admin", "manager"))
	{
		hotelMutations.POST("/tax-rules", h.CreateTaxRule)
	}

	rules := router.Group("/api/tax-rules")
	rules.Use(middleware.RequireRole("admin", "manager"))
	{
		rules.PUT("/:id", h.UpdateTaxRule)
		rules.DELETE("/:id", h.DeleteTaxRule)
	}
}

// ListTaxRules returns the hotel's tax rules grouped by currency in ladder order
func (h *TaxHandler) ListTaxRules(c *gin.Context) {
	params := pagination.Parse(c)

	rules, total, err := h.taxService.ListTaxRules(c.Request.Context(), c.Param("hotelId"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, rules, total, params.Page, params.Limit))
}

// CreateTaxRule adds a rule to the hotel's tax ladder
func (h *TaxHandler) CreateTaxRule(c *gin.Context) {
	var req service.CreateTaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rule, err := h.taxService.CreateTaxRule(c.Request.Context(), c.Param("hotelId"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rule))
}

// UpdateTaxRule replaces an existing rule's fields
func (h *TaxHandler) UpdateTaxRule(c *gin.Context) {
	var req service.UpdateTaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rule, err := h.taxService.UpdateTaxRule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

// DeleteTaxRule removes a rule from the ladder
func (h *TaxHandler) DeleteTaxRule(c *gin.Context) {
	if err := h.taxService.DeleteTaxRule(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// PreviewTax runs the ladder forward or in reverse over an ad-hoc amount
func (h *TaxHandler) PreviewTax(c *gin.Context) {
	var req service.TaxPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	preview, err := h.taxService.PreviewTax(c.Request.Context(), c.Param("hotelId"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, preview))
}
