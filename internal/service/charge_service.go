package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BuildChargeBreakdown derives the audit figure set for one stay:
//
//  1. reverse the tax-inclusive room rate into an exclusive base,
//  2. allocate meal costs per the stay's plan and occupancy,
//  3. carve the meal allocation out of the room base (clamped at zero),
//  4. apply the same ladder independently to the package, room-only and
//     meals-only bases.
//
// The three tax views are computed separately, not by prorating a single
// package figure, so with ladder rules their room-only and meals-only sums
// can drift from the package view. Only the package view is posted.
func BuildChargeBreakdown(stay model.StayRecord, rules []model.TaxRule, prices model.MealAllocationPrice, plans []model.MealPlanDefinition) model.ChargeBreakdown {
	rev := ReverseExclusiveFromInclusive(stay.RoomRateInclusive, rules)
	roomExclusive := rev.Base
	roomTax := stay.RoomRateInclusive.Sub(roomExclusive)

	plan := ResolvePlan(stay.MealPlanCode, plans)
	meals := MealCost(plan, prices, stay.Adults, stay.Children)

	roomOnly := roomExclusive.Sub(meals.GrandTotal)
	if roomOnly.IsNegative() {
		roomOnly = decimal.Zero
	}

	breakdown := model.ChargeBreakdown{
		StayID:            stay.ID,
		ReservationID:     stay.ReservationID,
		Currency:          stay.Currency,
		RoomRateInclusive: stay.RoomRateInclusive,
		RoomExclusive:     roomExclusive,
		RoomTax:           roomTax,
		RoomOnlyExclusive: roomOnly,
		Meals:             meals,
		PackageTax:        ComputeTaxBreakdown(roomExclusive, rules),
		RoomOnlyTax:       ComputeTaxBreakdown(roomOnly, rules),
		MealsOnlyTax:      ComputeTaxBreakdown(meals.GrandTotal, rules),
	}

	for _, name := range rev.Unresolved {
		breakdown.Warnings = append(breakdown.Warnings,
			fmt.Sprintf("tax rule %q has an unresolved calculation basis and was excluded", name))
	}

	return breakdown
}

// --- Interface ---

type ChargeService interface {
	// BuildBreakdownsForDate computes the charge breakdowns for every stay
	// record on the hotel's given business date. Tax ladders are fetched
	// once per distinct stay currency, not per stay.
	BuildBreakdownsForDate(ctx context.Context, hotelID uuid.UUID, date time.Time) ([]model.ChargeBreakdown, error)
}

type chargeService struct {
	stayRepo    repository.StayRepository
	taxRuleRepo repository.TaxRuleRepository
	mealRepo    repository.MealRepository
}

func NewChargeService(
	stayRepo repository.StayRepository,
	taxRuleRepo repository.TaxRuleRepository,
	mealRepo repository.MealRepository,
) ChargeService {
	return &chargeService{
		stayRepo:    stayRepo,
		taxRuleRepo: taxRuleRepo,
		mealRepo:    mealRepo,
	}
}

// --- Implementation ---

func (s *chargeService) BuildBreakdownsForDate(ctx context.Context, hotelID uuid.UUID, date time.Time) ([]model.ChargeBreakdown, error) {
	stays, err := s.stayRepo.ListForDate(ctx, hotelID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stay records: %w", err)
	}
	if len(stays) == 0 {
		return nil, nil
	}

	prices, err := s.mealRepo.GetPrices(ctx, hotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("meal allocation prices not configured for hotel")
		}
		return nil, fmt.Errorf("failed to fetch meal prices: %w", err)
	}

	plans, err := s.mealRepo.ListPlanDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meal plan definitions: %w", err)
	}

	rulesByCurrency := make(map[string][]model.TaxRule)
	breakdowns := make([]model.ChargeBreakdown, 0, len(stays))

	for _, stay := range stays {
		rules, ok := rulesByCurrency[stay.Currency]
		if !ok {
			rules, err = s.taxRuleRepo.ListForCurrency(ctx, hotelID, stay.Currency)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch tax rules for %s: %w", stay.Currency, err)
			}
			rulesByCurrency[stay.Currency] = rules
		}

		breakdowns = append(breakdowns, BuildChargeBreakdown(stay, rules, *prices, plans))
	}

	return breakdowns, nil
}
