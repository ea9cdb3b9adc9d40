package service

import (
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardPrices() model.MealAllocationPrice {
	return model.MealAllocationPrice{
		Currency:            "USD",
		BreakfastPrice:      dec("10"),
		LunchPrice:          dec("15"),
		DinnerPrice:         dec("20"),
		BreakfastAccount:    "REV-BRK",
		LunchAccount:        "REV-LUN",
		DinnerAccount:       "REV-DIN",
		AllInclusiveAccount: "REV-AI",
	}
}

func TestResolvePlan_FallbackTable(t *testing.T) {
	tests := []struct {
		code      string
		breakfast bool
		lunch     bool
		dinner    bool
		allInc    bool
	}{
		{"RO", false, false, false, false},
		{"BB", true, false, false, false},
		{"HB", true, false, true, false},
		{"FB", true, true, true, false},
		{"AI", true, true, true, true},
	}

	for _, tt := range tests {
		plan := ResolvePlan(tt.code, nil)
		assert.Equal(t, tt.breakfast, plan.IncludeBreakfast, "%s breakfast", tt.code)
		assert.Equal(t, tt.lunch, plan.IncludeLunch, "%s lunch", tt.code)
		assert.Equal(t, tt.dinner, plan.IncludeDinner, "%s dinner", tt.code)
		assert.Equal(t, tt.allInc, plan.IsAllInclusive, "%s all-inclusive", tt.code)
	}
}

func TestResolvePlan_MasterListWins(t *testing.T) {
	master := []model.MealPlanDefinition{
		{Code: "HB", DisplayName: "Demi Pension", IncludeLunch: true, IncludeDinner: true},
	}

	// The master list overrides the fallback, matched case-insensitively
	// with whitespace trimmed.
	plan := ResolvePlan("  hb ", master)

	assert.Equal(t, "Demi Pension", plan.PlanName)
	assert.False(t, plan.IncludeBreakfast)
	assert.True(t, plan.IncludeLunch)
	assert.True(t, plan.IncludeDinner)
}

func TestResolvePlan_UnknownCode(t *testing.T) {
	plan := ResolvePlan("XYZ", nil)

	assert.Equal(t, "XYZ", plan.PlanName)
	assert.False(t, plan.IncludeBreakfast)
	assert.False(t, plan.IncludeLunch)
	assert.False(t, plan.IncludeDinner)
	assert.False(t, plan.IsAllInclusive)
}

func TestMealCost_HalfBoardTwoAdultsOneChild(t *testing.T) {
	plan := ResolvePlan("HB", nil)

	cost := MealCost(plan, standardPrices(), 2, 1)

	// breakfast 2*10 + 1*10*0.5 = 25; dinner 2*20 + 1*20*0.5 = 50
	require.Len(t, cost.Components, 2)
	assert.Equal(t, model.MealBreakfast, cost.Components[0].MealType)
	assert.True(t, cost.Components[0].Amount.Equal(dec("25.00")), "got %s", cost.Components[0].Amount)
	assert.Equal(t, model.MealDinner, cost.Components[1].MealType)
	assert.True(t, cost.Components[1].Amount.Equal(dec("50.00")), "got %s", cost.Components[1].Amount)
	assert.True(t, cost.GrandTotal.Equal(dec("75.00")), "got %s", cost.GrandTotal)
	assert.Empty(t, cost.AllInclusiveAccount)
}

func TestMealCost_RoomOnlyIsZeroForAnyOccupancy(t *testing.T) {
	plan := ResolvePlan("RO", nil)

	for _, occ := range []struct{ adults, children int }{{1, 0}, {2, 3}, {10, 10}} {
		cost := MealCost(plan, standardPrices(), occ.adults, occ.children)
		assert.True(t, cost.GrandTotal.IsZero(), "adults=%d children=%d", occ.adults, occ.children)
		assert.Empty(t, cost.Components)
	}
}

func TestMealCost_AllInclusiveAttachesAccount(t *testing.T) {
	plan := ResolvePlan("AI", nil)

	cost := MealCost(plan, standardPrices(), 2, 0)

	assert.True(t, plan.IsAllInclusive)
	assert.Equal(t, "REV-AI", cost.AllInclusiveAccount)
	require.Len(t, cost.Components, 3)
	// 2*(10+15+20)
	assert.True(t, cost.GrandTotal.Equal(dec("90.00")), "got %s", cost.GrandTotal)
}

func TestMealCost_FullBoardIsNotAllInclusive(t *testing.T) {
	plan := ResolvePlan("FB", nil)

	cost := MealCost(plan, standardPrices(), 1, 0)

	assert.False(t, cost.IsAllInclusive)
	assert.Empty(t, cost.AllInclusiveAccount)
	require.Len(t, cost.Components, 3)
	assert.True(t, cost.GrandTotal.Equal(dec("45.00")), "got %s", cost.GrandTotal)
}
