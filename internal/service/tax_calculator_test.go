package service

import (
	"testing"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func rule(name, pct, basis string) model.TaxRule {
	return model.TaxRule{Name: name, Percentage: dec(pct), Basis: basis, AccountCode: "TAX-" + name}
}

func TestComputeTaxBreakdown_ServiceThenLadderGST(t *testing.T) {
	rules := []model.TaxRule{
		rule("Service", "10", model.TaxBasisBase),
		rule("GST", "8", model.TaxBasisLadder),
	}

	breakdown := ComputeTaxBreakdown(dec("100"), rules)

	require.Len(t, breakdown.Lines, 2)
	assert.True(t, breakdown.Lines[0].Amount.Equal(dec("10.00")), "Service should be 10%% of the base: got %s", breakdown.Lines[0].Amount)
	assert.True(t, breakdown.Lines[1].Amount.Equal(dec("8.80")), "GST should compound on 110.00: got %s", breakdown.Lines[1].Amount)
	assert.True(t, breakdown.TotalTax.Equal(dec("18.80")))
}

func TestComputeInclusiveFromExclusive(t *testing.T) {
	rules := []model.TaxRule{
		rule("Service", "10", model.TaxBasisBase),
		rule("GST", "8", model.TaxBasisLadder),
	}

	inclusive := ComputeInclusiveFromExclusive(dec("100"), rules)
	assert.True(t, inclusive.Equal(dec("118.80")), "got %s", inclusive)
}

func TestReverseExclusiveFromInclusive(t *testing.T) {
	rules := []model.TaxRule{
		rule("Service", "10", model.TaxBasisBase),
		rule("GST", "8", model.TaxBasisLadder),
	}

	res := ReverseExclusiveFromInclusive(dec("118.80"), rules)

	assert.True(t, res.Factor.Equal(dec("1.188")), "factor: got %s", res.Factor)
	assert.True(t, res.Base.Equal(dec("100.00")), "base: got %s", res.Base)
	assert.Empty(t, res.Unresolved)
}

func TestReverseExclusiveFromInclusive_NoRules(t *testing.T) {
	res := ReverseExclusiveFromInclusive(dec("250.55"), nil)

	assert.True(t, res.Factor.Equal(dec("1")))
	assert.True(t, res.Base.Equal(dec("250.55")))
	assert.Empty(t, res.Unresolved)
}

func TestReverseExclusiveFromInclusive_UnresolvedBasis(t *testing.T) {
	rules := []model.TaxRule{
		rule("Service", "10", model.TaxBasisBase),
		rule("CityLevy", "5", "PER_NIGHT"),
		rule("GST", "8", model.TaxBasisLadder),
	}

	res := ReverseExclusiveFromInclusive(dec("118.80"), rules)

	// CityLevy is excluded from the factor; Service and GST still apply.
	assert.True(t, res.Factor.Equal(dec("1.188")), "got %s", res.Factor)
	assert.Equal(t, []string{"CityLevy"}, res.Unresolved)
}

func TestTaxRoundTrip(t *testing.T) {
	tolerance := dec("0.01")

	ruleSets := map[string][]model.TaxRule{
		"single base":   {rule("VAT", "7.5", model.TaxBasisBase)},
		"single ladder": {rule("GST", "8", model.TaxBasisLadder)},
		"base then ladder": {
			rule("Service", "10", model.TaxBasisBase),
			rule("GST", "8", model.TaxBasisLadder),
		},
		"ladder stack": {
			rule("Service", "10", model.TaxBasisLadder),
			rule("GST", "8", model.TaxBasisLadder),
			rule("Tourism", "1", model.TaxBasisLadder),
		},
		"empty": {},
	}

	bases := []string{"0", "1", "99.99", "100", "1234.56", "100000"}

	for name, rules := range ruleSets {
		for _, base := range bases {
			exclusive := dec(base)
			inclusive := ComputeInclusiveFromExclusive(exclusive, rules)
			res := ReverseExclusiveFromInclusive(inclusive, rules)

			drift := res.Base.Sub(exclusive).Abs()
			assert.True(t, drift.LessThanOrEqual(tolerance),
				"%s: base %s round-tripped to %s (drift %s)", name, base, res.Base, drift)
		}
	}
}

func TestComputeTaxBreakdown_LadderOrderMatters(t *testing.T) {
	ladderFirst := []model.TaxRule{
		rule("GST", "8", model.TaxBasisLadder),
		rule("Service", "10", model.TaxBasisBase),
	}
	baseFirst := []model.TaxRule{
		rule("Service", "10", model.TaxBasisBase),
		rule("GST", "8", model.TaxBasisLadder),
	}

	// Ladder first sees only the base; ladder second sees base + service.
	first := ComputeTaxBreakdown(dec("100"), ladderFirst)
	second := ComputeTaxBreakdown(dec("100"), baseFirst)

	assert.True(t, first.TotalTax.Equal(dec("18.00")), "got %s", first.TotalTax)
	assert.True(t, second.TotalTax.Equal(dec("18.80")), "got %s", second.TotalTax)
}

func TestComputeTaxBreakdown_LineRoundingIsIndependent(t *testing.T) {
	rules := []model.TaxRule{
		rule("A", "3.33", model.TaxBasisBase),
		rule("B", "3.33", model.TaxBasisBase),
	}

	breakdown := ComputeTaxBreakdown(dec("10"), rules)

	require.Len(t, breakdown.Lines, 2)
	// 0.333 rounds half-up to 0.33 on each line; the total is the sum of the
	// rounded lines, not a rounding of the unrounded sum.
	assert.True(t, breakdown.Lines[0].Amount.Equal(dec("0.33")))
	assert.True(t, breakdown.Lines[1].Amount.Equal(dec("0.33")))
	assert.True(t, breakdown.TotalTax.Equal(dec("0.66")))
}
