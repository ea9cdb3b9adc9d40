package service

import (
	"testing"
	"time"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHotel() model.Hotel {
	return model.Hotel{
		BaseCurrency:       "USD",
		GuestLedgerAccount: "GL-GUEST",
		RoomRevenueAccount: "REV-ROOM",
	}
}

func TestBuildLedgerTransaction_LineOrderAndBalance(t *testing.T) {
	stay := testStay("118.80", "USD", "HB", 2, 1)
	b := BuildChargeBreakdown(stay, testRules(), standardPrices(), nil)

	tx := BuildLedgerTransaction(b, one, testHotel(), time.Now())

	// debit, room revenue, breakfast, dinner, two tax lines
	require.Len(t, tx.Lines, 6)
	assert.Equal(t, "GL-GUEST", tx.Lines[0].AccountCode)
	assert.True(t, tx.Lines[0].Debit.Equal(dec("118.80")), "got %s", tx.Lines[0].Debit)
	assert.Equal(t, "REV-ROOM", tx.Lines[1].AccountCode)
	assert.True(t, tx.Lines[1].Credit.Equal(dec("25.00")))
	assert.Equal(t, "REV-BRK", tx.Lines[2].AccountCode)
	assert.True(t, tx.Lines[2].Credit.Equal(dec("25.00")))
	assert.Equal(t, "REV-DIN", tx.Lines[3].AccountCode)
	assert.True(t, tx.Lines[3].Credit.Equal(dec("50.00")))
	assert.Equal(t, "TAX-Service", tx.Lines[4].AccountCode)
	assert.True(t, tx.Lines[4].Credit.Equal(dec("10.00")))
	assert.Equal(t, "TAX-GST", tx.Lines[5].AccountCode)
	assert.True(t, tx.Lines[5].Credit.Equal(dec("8.80")))

	assert.True(t, tx.Balanced())
	assert.Equal(t, "USD", tx.Currency)
}

func TestBuildLedgerTransaction_SkipsZeroAndUnlinkedLines(t *testing.T) {
	// Room-only plan: no meal lines at all. Rule without an account code
	// produces no credit line even though its amount is positive.
	rules := []model.TaxRule{
		{Name: "Service", Percentage: dec("10"), Basis: model.TaxBasisBase},
	}
	stay := testStay("110.00", "USD", "RO", 1, 0)
	b := BuildChargeBreakdown(stay, rules, standardPrices(), nil)

	tx := BuildLedgerTransaction(b, one, testHotel(), time.Now())

	require.Len(t, tx.Lines, 2)
	assert.Equal(t, "GL-GUEST", tx.Lines[0].AccountCode)
	assert.Equal(t, "REV-ROOM", tx.Lines[1].AccountCode)
	// Unlinked tax credit is skipped, so the transaction is intentionally
	// off-balance here and the builder leaves that judgement to the caller.
	assert.False(t, tx.Balanced())
}

func TestBuildLedgerTransaction_AllInclusivePostsCombinedMealLine(t *testing.T) {
	stay := testStay("356.40", "USD", "AI", 2, 0)
	b := BuildChargeBreakdown(stay, testRules(), standardPrices(), nil)

	tx := BuildLedgerTransaction(b, one, testHotel(), time.Now())

	// base 300.00, meals 90.00, room-only 210.00
	var mealLines []model.LedgerLine
	for _, l := range tx.Lines {
		if l.AccountCode == "REV-AI" {
			mealLines = append(mealLines, l)
		}
	}
	require.Len(t, mealLines, 1)
	assert.True(t, mealLines[0].Credit.Equal(dec("90.00")), "got %s", mealLines[0].Credit)
	assert.True(t, tx.Balanced())
}

func TestBuildLedgerTransaction_AppliesFXRatePerLine(t *testing.T) {
	stay := testStay("118.80", "EUR", "HB", 2, 1)
	b := BuildChargeBreakdown(stay, testRules(), standardPrices(), nil)

	tx := BuildLedgerTransaction(b, dec("1.10"), testHotel(), time.Now())

	// Each line converts and rounds independently.
	assert.True(t, tx.Lines[0].Debit.Equal(dec("130.68")), "got %s", tx.Lines[0].Debit)
	assert.True(t, tx.Lines[1].Credit.Equal(dec("27.50")), "got %s", tx.Lines[1].Credit)
	assert.True(t, tx.Balanced(), "debit %s credit %s", tx.TotalDebit(), tx.TotalCredit())
	assert.Equal(t, "USD", tx.Currency)
}

func TestBuildLedgerTransaction_BalanceWithinToleranceAcrossRates(t *testing.T) {
	stay := testStay("237.60", "USD", "FB", 2, 1)
	b := BuildChargeBreakdown(stay, testRules(), standardPrices(), nil)

	for _, rate := range []string{"1", "0.93", "1.10", "17.25", "0.0071"} {
		tx := BuildLedgerTransaction(b, dec(rate), testHotel(), time.Now())
		assert.True(t, tx.Balanced(), "rate %s: debit %s credit %s", rate, tx.TotalDebit(), tx.TotalCredit())
	}
}
