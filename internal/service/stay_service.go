package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateStayRequest struct {
	ReservationID     string `json:"reservation_id" binding:"required"`
	StayDate          string `json:"stay_date" binding:"required"` // YYYY-MM-DD
	RoomNo            string `json:"room_no"`
	GuestName         string `json:"guest_name"`
	RoomRateInclusive string `json:"room_rate_inclusive" binding:"required"`
	Currency          string `json:"currency" binding:"required,len=3"`
	Adults            int    `json:"adults" binding:"required,gt=0"`
	Children          int    `json:"children" binding:"min=0"`
	MealPlanCode      string `json:"meal_plan_code"`
}

type StayResponse struct {
	ID                string `json:"id"`
	ReservationID     string `json:"reservation_id"`
	StayDate          string `json:"stay_date"`
	RoomNo            string `json:"room_no"`
	GuestName         string `json:"guest_name"`
	RoomRateInclusive string `json:"room_rate_inclusive"`
	Currency          string `json:"currency"`
	Adults            int    `json:"adults"`
	Children          int    `json:"children"`
	MealPlanCode      string `json:"meal_plan_code"`
}

// --- Interface ---

type StayService interface {
	CreateStay(ctx context.Context, hotelID string, req CreateStayRequest) (StayResponse, error)
	ListStaysForDate(ctx context.Context, hotelID string, date string) ([]StayResponse, error)
	ListStays(ctx context.Context, hotelID string, page, limit int) ([]StayResponse, int64, error)
}

type stayService struct {
	stayRepo repository.StayRepository
}

func NewStayService(stayRepo repository.StayRepository) StayService {
	return &stayService{stayRepo: stayRepo}
}

// --- Implementation ---

func (s *stayService) CreateStay(ctx context.Context, hotelID string, req CreateStayRequest) (StayResponse, error) {
	hid, err := uuid.Parse(hotelID)
	if err != nil {
		return StayResponse{}, fmt.Errorf("invalid hotel id: %w", err)
	}

	reservationID, err := uuid.Parse(req.ReservationID)
	if err != nil {
		return StayResponse{}, fmt.Errorf("invalid reservation_id: %w", err)
	}

	stayDate, err := time.Parse("2006-01-02", req.StayDate)
	if err != nil {
		return StayResponse{}, fmt.Errorf("invalid stay_date format (expected YYYY-MM-DD): %w", err)
	}

	rate, err := decimal.NewFromString(req.RoomRateInclusive)
	if err != nil {
		return StayResponse{}, fmt.Errorf("invalid room_rate_inclusive: %w", err)
	}
	if rate.IsNegative() {
		return StayResponse{}, fmt.Errorf("room_rate_inclusive must not be negative")
	}

	stay := model.StayRecord{
		ReservationID:     reservationID,
		HotelID:           hid,
		StayDate:          stayDate,
		RoomNo:            req.RoomNo,
		GuestName:         req.GuestName,
		RoomRateInclusive: rate,
		Currency:          req.Currency,
		Adults:            req.Adults,
		Children:          req.Children,
		MealPlanCode:      req.MealPlanCode,
	}

	if err := s.stayRepo.Create(ctx, &stay); err != nil {
		return StayResponse{}, fmt.Errorf("failed to create stay record: %w", err)
	}

	return toStayResponse(stay), nil
}

func (s *stayService) ListStaysForDate(ctx context.Context, hotelID string, date string) ([]StayResponse, error) {
	hid, err := uuid.Parse(hotelID)
	if err != nil {
		return nil, fmt.Errorf("invalid hotel id: %w", err)
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}

	stays, err := s.stayRepo.ListForDate(ctx, hid, day)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stay records: %w", err)
	}

	res := make([]StayResponse, 0, len(stays))
	for _, st := range stays {
		res = append(res, toStayResponse(st))
	}

	return res, nil
}

func (s *stayService) ListStays(ctx context.Context, hotelID string, page, limit int) ([]StayResponse, int64, error) {
	hid, err := uuid.Parse(hotelID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid hotel id: %w", err)
	}

	stays, total, err := s.stayRepo.List(ctx, hid, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch stay records: %w", err)
	}

	res := make([]StayResponse, 0, len(stays))
	for _, st := range stays {
		res = append(res, toStayResponse(st))
	}

	return res, total, nil
}

// --- Helpers ---

func toStayResponse(stay model.StayRecord) StayResponse {
	return StayResponse{
		ID:                stay.ID.String(),
		ReservationID:     stay.ReservationID.String(),
		StayDate:          stay.StayDate.Format("2006-01-02"),
		RoomNo:            stay.RoomNo,
		GuestName:         stay.GuestName,
		RoomRateInclusive: stay.RoomRateInclusive.StringFixed(2),
		Currency:          stay.Currency,
		Adults:            stay.Adults,
		Children:          stay.Children,
		MealPlanCode:      stay.MealPlanCode,
	}
}
