package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateHotelRequest struct {
	Name               string `json:"name" binding:"required"`
	BaseCurrency       string `json:"base_currency" binding:"required,len=3"`
	AuditDate          string `json:"audit_date" binding:"required"` // YYYY-MM-DD
	GuestLedgerAccount string `json:"guest_ledger_account" binding:"required"`
	RoomRevenueAccount string `json:"room_revenue_account" binding:"required"`
}

type HotelResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	BaseCurrency       string `json:"base_currency"`
	AuditDate          string `json:"audit_date"`
	GuestLedgerAccount string `json:"guest_ledger_account"`
	RoomRevenueAccount string `json:"room_revenue_account"`
	AuditDateUpdatedBy string `json:"audit_date_updated_by"`
}

// --- Interface ---

type HotelService interface {
	GetHotel(ctx context.Context, id string) (HotelResponse, error)
	CreateHotel(ctx context.Context, req CreateHotelRequest) (HotelResponse, error)
}

type hotelService struct {
	hotelRepo repository.HotelRepository
}

func NewHotelService(hotelRepo repository.HotelRepository) HotelService {
	return &hotelService{hotelRepo: hotelRepo}
}

// --- Implementation ---

func (s *hotelService) GetHotel(ctx context.Context, id string) (HotelResponse, error) {
	hid, err := uuid.Parse(id)
	if err != nil {
		return HotelResponse{}, fmt.Errorf("invalid hotel id: %w", err)
	}

	hotel, err := s.hotelRepo.FindByID(ctx, hid)
	if err != nil {
		return HotelResponse{}, fmt.Errorf("failed to fetch hotel: %w", err)
	}

	return toHotelResponse(*hotel), nil
}

func (s *hotelService) CreateHotel(ctx context.Context, req CreateHotelRequest) (HotelResponse, error) {
	auditDate, err := time.Parse("2006-01-02", req.AuditDate)
	if err != nil {
		return HotelResponse{}, fmt.Errorf("invalid audit_date format (expected YYYY-MM-DD): %w", err)
	}

	hotel := model.Hotel{
		Name:               req.Name,
		BaseCurrency:       req.BaseCurrency,
		AuditDate:          auditDate,
		GuestLedgerAccount: req.GuestLedgerAccount,
		RoomRevenueAccount: req.RoomRevenueAccount,
	}

	if err := s.hotelRepo.Create(ctx, &hotel); err != nil {
		return HotelResponse{}, fmt.Errorf("failed to create hotel: %w", err)
	}

	return toHotelResponse(hotel), nil
}

// --- Helpers ---

func toHotelResponse(h model.Hotel) HotelResponse {
	return HotelResponse{
		ID:                 h.ID.String(),
		Name:               h.Name,
		BaseCurrency:       h.BaseCurrency,
		AuditDate:          h.AuditDate.Format("2006-01-02"),
		GuestLedgerAccount: h.GuestLedgerAccount,
		RoomRevenueAccount: h.RoomRevenueAccount,
		AuditDateUpdatedBy: h.AuditDateUpdatedBy,
	}
}
