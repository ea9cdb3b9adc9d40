package service

import (
	"time"

	"backend/internal/model"

	"github.com/shopspring/decimal"
)

// BuildLedgerTransaction turns a charge breakdown into a balanced posting
// in the hotel's base currency. Every source amount is converted with the
// given rate (1 when the stay is already in the base currency) and rounded
// to 2 decimals per line before the line is emitted.
//
// Line order is fixed:
//
//	1. debit the guest ledger for the net total (room-only + meals + package tax),
//	2. credit room revenue for the room-only exclusive amount if positive,
//	3. credit each meal component account with a positive amount and an
//	   account code (all-inclusive plans post the combined meal total to the
//	   all-inclusive account instead),
//	4. credit each package tax line with a positive amount and an account code.
//
// Because each line rounds independently the transaction balances only
// within model.BalanceTolerance, not exactly.
func BuildLedgerTransaction(b model.ChargeBreakdown, fxRate decimal.Decimal, hotel model.Hotel, postingDate time.Time) model.LedgerTransaction {
	convert := func(d decimal.Decimal) decimal.Decimal {
		return roundMoney(d.Mul(fxRate))
	}

	tx := model.LedgerTransaction{
		StayID:        b.StayID,
		ReservationID: b.ReservationID,
		PostingDate:   postingDate,
		Currency:      hotel.BaseCurrency,
	}

	tx.Lines = append(tx.Lines, model.LedgerLine{
		AccountCode: hotel.GuestLedgerAccount,
		Memo:        "Room and board charge",
		Debit:       convert(b.NetTotal()),
		Credit:      decimal.Zero,
	})

	if roomOnly := convert(b.RoomOnlyExclusive); roomOnly.IsPositive() {
		tx.Lines = append(tx.Lines, model.LedgerLine{
			AccountCode: hotel.RoomRevenueAccount,
			Memo:        "Room revenue",
			Debit:       decimal.Zero,
			Credit:      roomOnly,
		})
	}

	if b.Meals.IsAllInclusive && b.Meals.AllInclusiveAccount != "" {
		if total := convert(b.Meals.GrandTotal); total.IsPositive() {
			tx.Lines = append(tx.Lines, model.LedgerLine{
				AccountCode: b.Meals.AllInclusiveAccount,
				Memo:        "All-inclusive meal revenue",
				Debit:       decimal.Zero,
				Credit:      total,
			})
		}
	} else {
		for _, comp := range b.Meals.Components {
			amount := convert(comp.Amount)
			if !amount.IsPositive() || comp.AccountCode == "" {
				continue
			}
			tx.Lines = append(tx.Lines, model.LedgerLine{
				AccountCode: comp.AccountCode,
				Memo:        "Meal revenue " + comp.MealType,
				Debit:       decimal.Zero,
				Credit:      amount,
			})
		}
	}

	for _, line := range b.PackageTax.Lines {
		amount := convert(line.Amount)
		if !amount.IsPositive() || line.AccountCode == "" {
			continue
		}
		tx.Lines = append(tx.Lines, model.LedgerLine{
			AccountCode: line.AccountCode,
			Memo:        "Tax " + line.Name,
			Debit:       decimal.Zero,
			Credit:      amount,
		})
	}

	return tx
}
