package service

import (
	"backend/internal/model"

	"github.com/shopspring/decimal"
)

var (
	oneHundred = decimal.NewFromInt(100)
	one        = decimal.NewFromInt(1)
)

// roundMoney rounds to 2 decimal places, half up. Every tax line is rounded
// independently; unrounded fractional cents never carry between lines.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeTaxBreakdown applies a tax ladder to a tax-exclusive base.
//
// Rules apply in the given order. A BASE rule takes its percentage of the
// original base; a LADDER rule takes its percentage of the running total
// (base plus every tax amount computed so far), which is what makes the
// ladder compound. Each computed amount joins the running total. A rule
// with an unrecognized basis produces no line; the reverse pass is where
// such rules get reported.
func ComputeTaxBreakdown(base decimal.Decimal, rules []model.TaxRule) model.TaxBreakdown {
	running := base
	total := decimal.Zero
	lines := make([]model.TaxLine, 0, len(rules))

	for _, rule := range rules {
		var amount decimal.Decimal
		switch rule.Basis {
		case model.TaxBasisBase:
			amount = roundMoney(base.Mul(rule.Percentage).Div(oneHundred))
		case model.TaxBasisLadder:
			amount = roundMoney(running.Mul(rule.Percentage).Div(oneHundred))
		default:
			continue
		}

		running = running.Add(amount)
		total = total.Add(amount)
		lines = append(lines, model.TaxLine{
			Name:        rule.Name,
			Percentage:  rule.Percentage,
			AccountCode: rule.AccountCode,
			Amount:      amount,
		})
	}

	return model.TaxBreakdown{Base: base, TotalTax: total, Lines: lines}
}

// ReverseResult is the outcome of deriving a tax-exclusive base from a
// tax-inclusive amount.
type ReverseResult struct {
	Base       decimal.Decimal
	Factor     decimal.Decimal // inclusive = base * factor
	Unresolved []string        // rule names whose basis token was not recognized
}

// ReverseExclusiveFromInclusive derives the tax-exclusive base from a
// tax-inclusive amount by simulating the forward pass on a unit base:
// BASE percentages add flat, LADDER percentages compound on the running
// unit total in rule order. Rules with an unrecognized basis are excluded
// from the factor and reported in Unresolved; the caller decides whether
// that warrants a warning or a rejection. With no rules the factor is 1.
func ReverseExclusiveFromInclusive(inclusive decimal.Decimal, rules []model.TaxRule) ReverseResult {
	factor := one
	running := one
	var unresolved []string

	for _, rule := range rules {
		var add decimal.Decimal
		switch rule.Basis {
		case model.TaxBasisBase:
			add = rule.Percentage.Div(oneHundred)
		case model.TaxBasisLadder:
			add = running.Mul(rule.Percentage).Div(oneHundred)
		default:
			unresolved = append(unresolved, rule.Name)
			continue
		}

		factor = factor.Add(add)
		running = running.Add(add)
	}

	base := inclusive
	if !factor.Equal(one) {
		base = inclusive.DivRound(factor, 2)
	}

	return ReverseResult{Base: base, Factor: factor, Unresolved: unresolved}
}

// ComputeInclusiveFromExclusive returns the tax-inclusive total for a
// tax-exclusive base under the given ladder.
func ComputeInclusiveFromExclusive(exclusive decimal.Decimal, rules []model.TaxRule) decimal.Decimal {
	return exclusive.Add(ComputeTaxBreakdown(exclusive, rules).TotalTax)
}
