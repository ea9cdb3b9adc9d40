package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type HotelHandler struct {
	hotelService service.HotelService
}

func NewHotelHandler(hotelService service.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

func (h *HotelHandler) RegisterRoutes(router *gin.RouterGroup) {
	hotels := router.Group("/api/hotels")
	hotels.Use(middleware.RequireRole("admin", "manager", "auditor"))
	{
		hotels.GET("/:hotelId", h.GetHotel)
	}

	admin := router.Group("/api/hotels")
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.POST("", h.CreateHotel)
	}
}

// GetHotel returns the hotel settings, including base currency and the
// current business/audit date
func (h *HotelHandler) GetHotel(c *gin.Context) {
	hotel, err := h.hotelService.GetHotel(c.Request.Context(), c.Param("hotelId"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, hotel))
}

// CreateHotel registers a property with its ledger account links
func (h *HotelHandler) CreateHotel(c *gin.Context) {
	var req service.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	hotel, err := h.hotelService.CreateHotel(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, hotel))
}
