package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type MealHandler struct {
	mealService service.MealService
}

func NewMealHandler(mealService service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/api/meal-plans")
	plans.Use(middleware.RequireRole("admin", "manager", "auditor"))
	{
		plans.GET("", h.ListPlans)
	}

	planMutations := router.Group("/api/meal-plans")
	planMutations.Use(middleware.RequireRole("admin", "manager"))
	{
		planMutations.POST("", h.CreatePlan)
	}

	prices := router.Group("/api/hotels/:hotelId/meal-prices")
	prices.Use(middleware.RequireRole("admin", "manager", "auditor"))
	{
		prices.GET("", h.GetPrices)
	}

	priceMutations := router.Group("/api/hotels/:hotelId/meal-prices")
	priceMutations.Use(middleware.RequireRole("admin", "manager"))
	{
		priceMutations.PUT("", h.UpsertPrices)
	}
}

// ListPlans returns the meal plan master list
func (h *MealHandler) ListPlans(c *gin.Context) {
	plans, err := h.mealService.ListPlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, plans))
}

// CreatePlan adds a meal plan definition to the master list
func (h *MealHandler) CreatePlan(c *gin.Context) {
	var req service.CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	plan, err := h.mealService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, plan))
}

// GetPrices returns the hotel's meal allocation prices and account links
func (h *MealHandler) GetPrices(c *gin.Context) {
	prices, err := h.mealService.GetPrices(c.Request.Context(), c.Param("hotelId"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, prices))
}

// UpsertPrices creates or replaces the hotel's meal allocation prices
func (h *MealHandler) UpsertPrices(c *gin.Context) {
	var req service.UpsertMealPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	prices, err := h.mealService.UpsertPrices(c.Request.Context(), c.Param("hotelId"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, prices))
}
