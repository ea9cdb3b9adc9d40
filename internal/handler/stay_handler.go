package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type StayHandler struct {
	stayService service.StayService
}

func NewStayHandler(stayService service.StayService) *StayHandler {
	return &StayHandler{stayService: stayService}
}

func (h *StayHandler) RegisterRoutes(router *gin.RouterGroup) {
	stays := router.Group("/api/hotels/:hotelId/stays")
	stays.Use(middleware.RequireRole("admin", "manager", "auditor"))
	{
		stays.GET("", h.ListStays)
	}

	stayMutations := router.Group("/api/hotels/:hotelId/stays")
	stayMutations.Use(middleware.RequireRole("admin", "manager"))
	{
		stayMutations.POST("", h.CreateStay)
	}
}

// ListStays returns stay records, filtered to one business date when the
// date query parameter is set
func (h *StayHandler) ListStays(c *gin.Context) {
	hotelID := c.Param("hotelId")

	if date := c.Query("date"); date != "" {
		stays, err := h.stayService.ListStaysForDate(c.Request.Context(), hotelID, date)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, stays))
		return
	}

	params := pagination.Parse(c)
	stays, total, err := h.stayService.ListStays(c.Request.Context(), hotelID, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, stays, total, params.Page, params.Limit))
}

// CreateStay records one reservation-detail/day for an upcoming audit
func (h *StayHandler) CreateStay(c *gin.Context) {
	var req service.CreateStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	stay, err := h.stayService.CreateStay(c.Request.Context(), c.Param("hotelId"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, stay))
}
