package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// childFactor is the fixed fraction of the adult allocation price charged
// per child.
var childFactor = decimal.NewFromFloat(0.5)

// ResolvedPlan is the meal entitlement a plan code grants for one stay-day.
type ResolvedPlan struct {
	PlanCode         string
	PlanName         string
	IncludeBreakfast bool
	IncludeLunch     bool
	IncludeDinner    bool
	IsAllInclusive   bool
}

// ResolvePlan maps a rate-plan short code to its included meals. The master
// list is matched first, case-insensitively with surrounding whitespace
// trimmed; common industry codes fall back to a fixed table; anything else
// resolves to "no meals included" with the raw code as the display name.
// ResolvePlan never fails.
func ResolvePlan(code string, master []model.MealPlanDefinition) ResolvedPlan {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	for _, def := range master {
		if strings.ToUpper(strings.TrimSpace(def.Code)) == normalized {
			return ResolvedPlan{
				PlanCode:         normalized,
				PlanName:         def.DisplayName,
				IncludeBreakfast: def.IncludeBreakfast,
				IncludeLunch:     def.IncludeLunch,
				IncludeDinner:    def.IncludeDinner,
				IsAllInclusive:   def.IsAllInclusive,
			}
		}
	}

	switch normalized {
	case model.PlanRoomOnly:
		return ResolvedPlan{PlanCode: normalized, PlanName: "Room Only"}
	case model.PlanBedBreakfast:
		return ResolvedPlan{PlanCode: normalized, PlanName: "Bed & Breakfast", IncludeBreakfast: true}
	case model.PlanHalfBoard:
		return ResolvedPlan{PlanCode: normalized, PlanName: "Half Board", IncludeBreakfast: true, IncludeDinner: true}
	case model.PlanFullBoard:
		return ResolvedPlan{PlanCode: normalized, PlanName: "Full Board", IncludeBreakfast: true, IncludeLunch: true, IncludeDinner: true}
	case model.PlanAllInclusive:
		return ResolvedPlan{PlanCode: normalized, PlanName: "All Inclusive", IncludeBreakfast: true, IncludeLunch: true, IncludeDinner: true, IsAllInclusive: true}
	}

	return ResolvedPlan{PlanCode: normalized, PlanName: code}
}

// MealCost allocates per-person meal prices for one stay-day. Each included
// meal costs adults*price plus children*price*0.5; excluded meals contribute
// nothing regardless of occupancy. The all-inclusive account is attached
// only when the plan is all-inclusive.
func MealCost(plan ResolvedPlan, prices model.MealAllocationPrice, adults, children int) model.MealCostBreakdown {
	a := decimal.NewFromInt(int64(adults))
	c := decimal.NewFromInt(int64(children))

	perMeal := func(price decimal.Decimal) decimal.Decimal {
		return roundMoney(a.Mul(price).Add(c.Mul(price).Mul(childFactor)))
	}

	breakdown := model.MealCostBreakdown{
		PlanCode:       plan.PlanCode,
		PlanName:       plan.PlanName,
		IsAllInclusive: plan.IsAllInclusive,
		GrandTotal:     decimal.Zero,
	}
	if plan.IsAllInclusive {
		breakdown.AllInclusiveAccount = prices.AllInclusiveAccount
	}

	if plan.IncludeBreakfast {
		amount := perMeal(prices.BreakfastPrice)
		breakdown.Components = append(breakdown.Components, model.MealComponent{
			MealType:    model.MealBreakfast,
			AccountCode: prices.BreakfastAccount,
			Amount:      amount,
		})
		breakdown.GrandTotal = breakdown.GrandTotal.Add(amount)
	}
	if plan.IncludeLunch {
		amount := perMeal(prices.LunchPrice)
		breakdown.Components = append(breakdown.Components, model.MealComponent{
			MealType:    model.MealLunch,
			AccountCode: prices.LunchAccount,
			Amount:      amount,
		})
		breakdown.GrandTotal = breakdown.GrandTotal.Add(amount)
	}
	if plan.IncludeDinner {
		amount := perMeal(prices.DinnerPrice)
		breakdown.Components = append(breakdown.Components, model.MealComponent{
			MealType:    model.MealDinner,
			AccountCode: prices.DinnerAccount,
			Amount:      amount,
		})
		breakdown.GrandTotal = breakdown.GrandTotal.Add(amount)
	}

	return breakdown
}

// --- DTOs ---

type MealPlanResponse struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	DisplayName      string `json:"display_name"`
	IncludeBreakfast bool   `json:"include_breakfast"`
	IncludeLunch     bool   `json:"include_lunch"`
	IncludeDinner    bool   `json:"include_dinner"`
	IsAllInclusive   bool   `json:"is_all_inclusive"`
}

type CreateMealPlanRequest struct {
	Code             string `json:"code" binding:"required,max=10"`
	DisplayName      string `json:"display_name" binding:"required"`
	IncludeBreakfast bool   `json:"include_breakfast"`
	IncludeLunch     bool   `json:"include_lunch"`
	IncludeDinner    bool   `json:"include_dinner"`
	IsAllInclusive   bool   `json:"is_all_inclusive"`
}

type UpsertMealPricesRequest struct {
	Currency            string `json:"currency" binding:"required,len=3"`
	BreakfastPrice      string `json:"breakfast_price" binding:"required"`
	LunchPrice          string `json:"lunch_price" binding:"required"`
	DinnerPrice         string `json:"dinner_price" binding:"required"`
	BreakfastAccount    string `json:"breakfast_account"`
	LunchAccount        string `json:"lunch_account"`
	DinnerAccount       string `json:"dinner_account"`
	AllInclusiveAccount string `json:"all_inclusive_account"`
}

type MealPricesResponse struct {
	HotelID             string `json:"hotel_id"`
	Currency            string `json:"currency"`
	BreakfastPrice      string `json:"breakfast_price"`
	LunchPrice          string `json:"lunch_price"`
	DinnerPrice         string `json:"dinner_price"`
	BreakfastAccount    string `json:"breakfast_account"`
	LunchAccount        string `json:"lunch_account"`
	DinnerAccount       string `json:"dinner_account"`
	AllInclusiveAccount string `json:"all_inclusive_account"`
}

// --- Interface ---

type MealService interface {
	ListPlans(ctx context.Context) ([]MealPlanResponse, error)
	CreatePlan(ctx context.Context, req CreateMealPlanRequest) (MealPlanResponse, error)
	GetPrices(ctx context.Context, hotelID string) (MealPricesResponse, error)
	UpsertPrices(ctx context.Context, hotelID string, req UpsertMealPricesRequest) (MealPricesResponse, error)
}

type mealService struct {
	mealRepo repository.MealRepository
}

func NewMealService(mealRepo repository.MealRepository) MealService {
	return &mealService{mealRepo: mealRepo}
}

// --- Implementation ---

func (s *mealService) ListPlans(ctx context.Context) ([]MealPlanResponse, error) {
	plans, err := s.mealRepo.ListPlanDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meal plans: %w", err)
	}

	res := make([]MealPlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, toMealPlanResponse(p))
	}

	return res, nil
}

func (s *mealService) CreatePlan(ctx context.Context, req CreateMealPlanRequest) (MealPlanResponse, error) {
	plan := model.MealPlanDefinition{
		Code:             strings.ToUpper(strings.TrimSpace(req.Code)),
		DisplayName:      req.DisplayName,
		IncludeBreakfast: req.IncludeBreakfast,
		IncludeLunch:     req.IncludeLunch,
		IncludeDinner:    req.IncludeDinner,
		IsAllInclusive:   req.IsAllInclusive,
	}

	if err := s.mealRepo.CreatePlanDefinition(ctx, &plan); err != nil {
		return MealPlanResponse{}, fmt.Errorf("failed to create meal plan: %w", err)
	}

	return toMealPlanResponse(plan), nil
}

func (s *mealService) GetPrices(ctx context.Context, hotelID string) (MealPricesResponse, error) {
	hid, err := uuid.Parse(hotelID)
	if err != nil {
		return MealPricesResponse{}, fmt.Errorf("invalid hotel id: %w", err)
	}

	prices, err := s.mealRepo.GetPrices(ctx, hid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MealPricesResponse{}, fmt.Errorf("meal allocation prices not configured for hotel")
		}
		return MealPricesResponse{}, fmt.Errorf("failed to fetch meal prices: %w", err)
	}

	return toMealPricesResponse(*prices), nil
}

func (s *mealService) UpsertPrices(ctx context.Context, hotelID string, req UpsertMealPricesRequest) (MealPricesResponse, error) {
	hid, err := uuid.Parse(hotelID)
	if err != nil {
		return MealPricesResponse{}, fmt.Errorf("invalid hotel id: %w", err)
	}

	breakfast, err := decimal.NewFromString(req.BreakfastPrice)
	if err != nil {
		return MealPricesResponse{}, fmt.Errorf("invalid breakfast_price: %w", err)
	}
	lunch, err := decimal.NewFromString(req.LunchPrice)
	if err != nil {
		return MealPricesResponse{}, fmt.Errorf("invalid lunch_price: %w", err)
	}
	dinner, err := decimal.NewFromString(req.DinnerPrice)
	if err != nil {
		return MealPricesResponse{}, fmt.Errorf("invalid dinner_price: %w", err)
	}
	if breakfast.IsNegative() || lunch.IsNegative() || dinner.IsNegative() {
		return MealPricesResponse{}, fmt.Errorf("meal prices must not be negative")
	}

	prices := model.MealAllocationPrice{
		HotelID:             hid,
		Currency:            req.Currency,
		BreakfastPrice:      breakfast,
		LunchPrice:          lunch,
		DinnerPrice:         dinner,
		BreakfastAccount:    req.BreakfastAccount,
		LunchAccount:        req.LunchAccount,
		DinnerAccount:       req.DinnerAccount,
		AllInclusiveAccount: req.AllInclusiveAccount,
	}

	if err := s.mealRepo.UpsertPrices(ctx, &prices); err != nil {
		return MealPricesResponse{}, fmt.Errorf("failed to save meal prices: %w", err)
	}

	return toMealPricesResponse(prices), nil
}

// --- Helpers ---

func toMealPlanResponse(p model.MealPlanDefinition) MealPlanResponse {
	return MealPlanResponse{
		ID:               p.ID.String(),
		Code:             p.Code,
		DisplayName:      p.DisplayName,
		IncludeBreakfast: p.IncludeBreakfast,
		IncludeLunch:     p.IncludeLunch,
		IncludeDinner:    p.IncludeDinner,
		IsAllInclusive:   p.IsAllInclusive,
	}
}

func toMealPricesResponse(p model.MealAllocationPrice) MealPricesResponse {
	return MealPricesResponse{
		HotelID:             p.HotelID.String(),
		Currency:            p.Currency,
		BreakfastPrice:      p.BreakfastPrice.StringFixed(2),
		LunchPrice:          p.LunchPrice.StringFixed(2),
		DinnerPrice:         p.DinnerPrice.StringFixed(2),
		BreakfastAccount:    p.BreakfastAccount,
		LunchAccount:        p.LunchAccount,
		DinnerAccount:       p.DinnerAccount,
		AllInclusiveAccount: p.AllInclusiveAccount,
	}
}
