package service

import (
	"testing"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStay(rate, currency, plan string, adults, children int) model.StayRecord {
	return model.StayRecord{
		ID:                uuid.New(),
		ReservationID:     uuid.New(),
		RoomRateInclusive: dec(rate),
		Currency:          currency,
		Adults:            adults,
		Children:          children,
		MealPlanCode:      plan,
	}
}

func testRules() []model.TaxRule {
	return []model.TaxRule{
		rule("Service", "10", model.TaxBasisBase),
		rule("GST", "8", model.TaxBasisLadder),
	}
}

func TestBuildChargeBreakdown_HalfBoard(t *testing.T) {
	stay := testStay("118.80", "USD", "HB", 2, 1)

	b := BuildChargeBreakdown(stay, testRules(), standardPrices(), nil)

	assert.True(t, b.RoomExclusive.Equal(dec("100.00")), "room exclusive: got %s", b.RoomExclusive)
	assert.True(t, b.RoomTax.Equal(dec("18.80")), "room tax: got %s", b.RoomTax)
	assert.True(t, b.Meals.GrandTotal.Equal(dec("75.00")), "meals: got %s", b.Meals.GrandTotal)
	assert.True(t, b.RoomOnlyExclusive.Equal(dec("25.00")), "room only: got %s", b.RoomOnlyExclusive)

	// Three independent tax views over three different bases.
	assert.True(t, b.PackageTax.Base.Equal(dec("100.00")))
	assert.True(t, b.RoomOnlyTax.Base.Equal(dec("25.00")))
	assert.True(t, b.MealsOnlyTax.Base.Equal(dec("75.00")))
	assert.Empty(t, b.Warnings)
}

func TestBuildChargeBreakdown_RoomOnlyClampsAtZero(t *testing.T) {
	// Meal allocation exceeds the reversed room base.
	stay := testStay("59.40", "USD", "FB", 2, 2)

	b := BuildChargeBreakdown(stay, testRules(), standardPrices(), nil)

	// base = 59.40/1.188 = 50.00, meals = 3*45 = 135.00
	assert.True(t, b.RoomExclusive.Equal(dec("50.00")), "got %s", b.RoomExclusive)
	assert.True(t, b.Meals.GrandTotal.Equal(dec("135.00")), "got %s", b.Meals.GrandTotal)
	assert.True(t, b.RoomOnlyExclusive.IsZero(), "got %s", b.RoomOnlyExclusive)
	assert.True(t, b.RoomOnlyTax.TotalTax.IsZero())
}

func TestBuildChargeBreakdown_PackageTaxView(t *testing.T) {
	stay := testStay("237.60", "USD", "HB", 2, 1)

	b := BuildChargeBreakdown(stay, testRules(), standardPrices(), nil)

	// Package view over the full 200.00 base: Service 20.00, GST 8% of
	// 220.00 = 17.60. Only this view feeds ledger lines; the split views
	// are informational and can drift from it by line rounding.
	assert.True(t, b.PackageTax.TotalTax.Equal(dec("37.60")), "package tax: got %s", b.PackageTax.TotalTax)
	assert.True(t, b.RoomOnlyTax.Base.Equal(dec("125.00")), "got %s", b.RoomOnlyTax.Base)
	assert.True(t, b.MealsOnlyTax.Base.Equal(dec("75.00")), "got %s", b.MealsOnlyTax.Base)
}

func TestComputeTaxBreakdown_SplitViewsDriftByRounding(t *testing.T) {
	rules := testRules()

	whole := ComputeTaxBreakdown(dec("100.05"), rules)
	partA := ComputeTaxBreakdown(dec("50.02"), rules)
	partB := ComputeTaxBreakdown(dec("50.03"), rules)

	split := partA.TotalTax.Add(partB.TotalTax)
	assert.True(t, whole.TotalTax.Equal(dec("18.81")), "got %s", whole.TotalTax)
	assert.True(t, split.Equal(dec("18.80")), "got %s", split)
}

func TestBuildChargeBreakdown_UnresolvedBasisBecomesWarning(t *testing.T) {
	rules := append(testRules(), rule("CityLevy", "5", "PER_NIGHT"))
	stay := testStay("118.80", "USD", "RO", 1, 0)

	b := BuildChargeBreakdown(stay, rules, standardPrices(), nil)

	require.Len(t, b.Warnings, 1)
	assert.Contains(t, b.Warnings[0], "CityLevy")
	// The factor still excludes the unresolved rule.
	assert.True(t, b.RoomExclusive.Equal(dec("100.00")), "got %s", b.RoomExclusive)
}

func TestBuildChargeBreakdown_NoRules(t *testing.T) {
	stay := testStay("80.00", "USD", "RO", 1, 0)

	b := BuildChargeBreakdown(stay, nil, standardPrices(), nil)

	assert.True(t, b.RoomExclusive.Equal(dec("80.00")))
	assert.True(t, b.RoomTax.IsZero())
	assert.True(t, b.PackageTax.TotalTax.IsZero())
}

func TestChargeBreakdown_NetTotal(t *testing.T) {
	stay := testStay("118.80", "USD", "HB", 2, 1)

	b := BuildChargeBreakdown(stay, testRules(), standardPrices(), nil)

	// net = room-only 25 + meals 75 + package tax 18.80
	assert.True(t, b.NetTotal().Equal(dec("118.80")), "got %s", b.NetTotal())
}
