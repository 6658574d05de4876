// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package finance computes the rental totals and balances. All
// functions are pure, so the creation, extension, check-in, payment,
// and summary flows obtain identical amounts for identical inputs.
package finance

import (
	"errors"
	"fmt"
	"time"

	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/shopspring/decimal"
)

// ErrNegativePrice is returned when a daily price is negative.
var ErrNegativePrice = errors.New("daily price is negative")

const day = 24 * time.Hour

// DayCount returns the number of billed days from start to end.
// Only the calendar dates matter (the time of day is ignored), a
// same-day rental is billed as one day, and a zero or negative
// difference (bad data) is clamped to one day too.
func DayCount(start, end time.Time) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	if n := int(e.Sub(s) / day); n > 1 {
		return n
	}
	return 1
}

// Quote is a computed day count and total amount.
type Quote struct {
	Days  int
	Total decimal.Decimal
}

// Compute returns the canonical quote of renting from start to end
// with the price daily price.
func Compute(start, end time.Time, price decimal.Decimal) (Quote, error) {
	if price.IsNegative() {
		return Quote{}, ErrNegativePrice
	}
	n := DayCount(start, end)
	return Quote{
		Days:  n,
		Total: price.Mul(decimal.NewFromInt(int64(n))),
	}, nil
}

// TotalWithFallback computes the total of a possibly partial (legacy)
// record. When both dates are present, the date-based total is used.
// Otherwise, a positive storedTotal is kept, then storedDays x price
// is tried, and finally zero is returned.
func TotalWithFallback(
	start, end *time.Time,
	price, storedTotal decimal.Decimal,
	storedDays int,
) decimal.Decimal {
	if start != nil && end != nil && !price.IsNegative() {
		q, _ := Compute(*start, *end, price)
		return q.Total
	}
	if storedTotal.IsPositive() {
		return storedTotal
	}
	if storedDays > 0 && price.IsPositive() {
		return price.Mul(decimal.NewFromInt(int64(storedDays)))
	}
	return decimal.Zero
}

// Summarize returns the balance of a rental with the given total and
// paid amounts.
func Summarize(total, paid decimal.Decimal) model.Balance {
	b := model.Balance{
		Total:     total,
		Paid:      paid,
		Remaining: decimal.Zero,
		Overpaid:  decimal.Zero,
	}
	switch diff := total.Sub(paid); {
	case diff.IsPositive():
		b.Remaining = diff
	case diff.IsNegative():
		b.Overpaid = diff.Neg()
	}
	return b
}

// CheckPayment validates a new payment of amount against a rental
// with the given total and already paid amounts. A payment which is
// not positive or pushes the paid amount above total is rejected with
// a field error on "montant" which cites the exact remaining amount.
func CheckPayment(total, paid, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return cerr.Invalid("montant", "amount must be positive")
	}
	remaining := Summarize(total, paid).Remaining
	if amount.GreaterThan(remaining) {
		return cerr.Invalid("montant", fmt.Sprintf(
			"amount %s exceeds the remaining amount %s",
			amount.StringFixed(2), remaining.StringFixed(2),
		))
	}
	return nil
}
