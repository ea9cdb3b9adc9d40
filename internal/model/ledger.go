package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The types below are derived per audit run and never persisted here;
// the remote ledger owns the durable record of posted transactions.

// TaxLine is one applied tax rule with its computed amount.
type TaxLine struct {
	Name        string          `json:"name"`
	Percentage  decimal.Decimal `json:"percentage"`
	AccountCode string          `json:"account_code"`
	Amount      decimal.Decimal `json:"amount"`
}

// TaxBreakdown is the result of applying a tax ladder to one base amount.
type TaxBreakdown struct {
	Base     decimal.Decimal `json:"base"`
	TotalTax decimal.Decimal `json:"total_tax"`
	Lines    []TaxLine       `json:"lines"`
}

// MealComponent is one included meal type with its cost and revenue account.
type MealComponent struct {
	MealType    string          `json:"meal_type"` // BREAKFAST, LUNCH, DINNER
	AccountCode string          `json:"account_code"`
	Amount      decimal.Decimal `json:"amount"`
}

// MealCostBreakdown holds the allocated meal costs for one stay-day.
type MealCostBreakdown struct {
	PlanCode            string          `json:"plan_code"`
	PlanName            string          `json:"plan_name"`
	IsAllInclusive      bool            `json:"is_all_inclusive"`
	AllInclusiveAccount string          `json:"all_inclusive_account,omitempty"` // set only for all-inclusive plans
	Components          []MealComponent `json:"components"`
	GrandTotal          decimal.Decimal `json:"grand_total"`
}

// ChargeBreakdown is the per-stay audit figure set: the reversed room rate,
// the meal allocation carved out of it, and three independent tax views over
// the package, room-only and meals-only bases.
type ChargeBreakdown struct {
	StayID            uuid.UUID         `json:"stay_id"`
	ReservationID     uuid.UUID         `json:"reservation_id"`
	Currency          string            `json:"currency"`
	RoomRateInclusive decimal.Decimal   `json:"room_rate_inclusive"`
	RoomExclusive     decimal.Decimal   `json:"room_exclusive"`
	RoomTax           decimal.Decimal   `json:"room_tax"`
	RoomOnlyExclusive decimal.Decimal   `json:"room_only_exclusive"`
	Meals             MealCostBreakdown `json:"meals"`
	PackageTax        TaxBreakdown      `json:"package_tax"`
	RoomOnlyTax       TaxBreakdown      `json:"room_only_tax"`
	MealsOnlyTax      TaxBreakdown      `json:"meals_only_tax"`
	Warnings          []string          `json:"warnings,omitempty"` // e.g. unresolved tax basis tokens
}

// NetTotal is the amount debited to the guest ledger: room-only base plus
// meal allocation plus package tax.
func (b ChargeBreakdown) NetTotal() decimal.Decimal {
	return b.RoomOnlyExclusive.Add(b.Meals.GrandTotal).Add(b.PackageTax.TotalTax)
}

// LedgerLine is one debit or credit of a transaction. Exactly one of
// Debit/Credit is non-zero.
type LedgerLine struct {
	AccountCode string          `json:"account_code"`
	Memo        string          `json:"memo"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// LedgerTransaction is a balanced multi-line posting for one stay-day.
type LedgerTransaction struct {
	StayID        uuid.UUID    `json:"stay_id"`
	ReservationID uuid.UUID    `json:"reservation_id"`
	PostingDate   time.Time    `json:"posting_date"`
	Currency      string       `json:"currency"` // hotel base currency after FX conversion
	Lines         []LedgerLine `json:"lines"`
}

// BalanceTolerance bounds the rounding drift allowed between a
// transaction's debit and credit totals. Lines are rounded independently,
// so the balance is approximate, not exact.
var BalanceTolerance = decimal.NewFromFloat(0.02)

func (t LedgerTransaction) TotalDebit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range t.Lines {
		sum = sum.Add(l.Debit)
	}
	return sum
}

func (t LedgerTransaction) TotalCredit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range t.Lines {
		sum = sum.Add(l.Credit)
	}
	return sum
}

// Balanced reports whether debits equal credits within BalanceTolerance.
func (t LedgerTransaction) Balanced() bool {
	diff := t.TotalDebit().Sub(t.TotalCredit()).Abs()
	return diff.LessThanOrEqual(BalanceTolerance)
}
