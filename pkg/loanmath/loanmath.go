// Package loanmath holds the pure repayment arithmetic: the fixed monthly
// installment of an amortizing loan, the next due date, and repayment
// progress. Nothing here touches storage or the clock except where a
// reference time is passed in.
package loanmath

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositivePrincipal = errors.New("principal must be positive")
	ErrNonPositiveTerm      = errors.New("term must be a positive number of months")
	ErrNegativeRate         = errors.New("annual rate must not be negative")
)

// MonthlyPayment returns the fixed monthly installment for a standard
// amortizing loan, rounded to 2 decimal places. annualRatePct is a
// percentage (5.0 means 5%). A zero rate degrades to principal/term.
func MonthlyPayment(principal float64, termMonths int, annualRatePct float64) (float64, error) {
	if principal <= 0 {
		return 0, ErrNonPositivePrincipal
	}
	if termMonths <= 0 {
		return 0, ErrNonPositiveTerm
	}
	if annualRatePct < 0 {
		return 0, ErrNegativeRate
	}

	r := annualRatePct / 100 / 12
	var payment float64
	if r == 0 {
		payment = principal / float64(termMonths)
	} else {
		payment = principal * r / (1 - math.Pow(1+r, -float64(termMonths)))
	}
	return round2(payment), nil
}

// NextPaymentDate returns the next due date: one calendar month after the
// last payment, or one calendar month after now when the loan has never
// been paid. Day-of-month overflow clamps to the last valid day of the
// target month (Jan 31 -> Feb 28/29).
func NextPaymentDate(lastPayment *time.Time, now time.Time) time.Time {
	base := now
	if lastPayment != nil {
		base = *lastPayment
	}
	return AddMonthClamped(base)
}

// AddMonthClamped advances t by one calendar month, clamping the day when
// the target month is shorter.
func AddMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	if last := daysIn(y, m+1, t.Location()); d > last {
		d = last
	}
	return time.Date(y, m+1, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month. Day 0 of the
// following month normalizes to that month's last day.
func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// Progress returns the repaid share of the principal as a whole percentage
// in [0,100]. A zero principal reports 0.
func Progress(principal, remaining float64) int {
	if principal <= 0 {
		return 0
	}
	p := int(math.Round((principal - remaining) / principal * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
