package valueobject

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// DayCountConvention – immutable value object
// ---------------------------------------------------------------------------

// DayCountConvention fixes how calendar time between two payment dates is
// converted into a fraction of a year for interest accrual. The convention is
// part of a schedule's identity: changing it changes every interest amount.
type DayCountConvention struct {
	value string
}

const (
	dayCountThirty360 = "THIRTY_360"
	dayCountAct365    = "ACTUAL_365"
	dayCountAct360    = "ACTUAL_360"
)

var (
	// DayCountThirty360 treats every month as 30 days over a 360-day year
	// (U.S. bond basis). Under this convention every period of a monthly
	// schedule accrues exactly 1/12 of the annual rate.
	DayCountThirty360 = DayCountConvention{value: dayCountThirty360}
	// DayCountActual365 accrues over actual calendar days against a fixed
	// 365-day year.
	DayCountActual365 = DayCountConvention{value: dayCountAct365}
	// DayCountActual360 accrues over actual calendar days against a 360-day
	// year (money-market basis).
	DayCountActual360 = DayCountConvention{value: dayCountAct360}
)

var validDayCounts = map[string]DayCountConvention{
	dayCountThirty360: DayCountThirty360,
	dayCountAct365:    DayCountActual365,
	dayCountAct360:    DayCountActual360,
}

// NewDayCountConvention creates a DayCountConvention from a raw string.
func NewDayCountConvention(s string) (DayCountConvention, error) {
	v, ok := validDayCounts[s]
	if !ok {
		return DayCountConvention{}, fmt.Errorf("invalid day count convention: %q", s)
	}
	return v, nil
}

// String returns the string representation of the convention.
func (c DayCountConvention) String() string { return c.value }

// IsZero returns true if the convention has not been initialised.
func (c DayCountConvention) IsZero() bool { return c.value == "" }

// Equal returns true when both conventions carry the same value.
func (c DayCountConvention) Equal(other DayCountConvention) bool { return c.value == other.value }

// YearFraction returns the fraction of a year between start and end under
// this convention, at intermediate calculation precision.
func (c DayCountConvention) YearFraction(start, end time.Time) decimal.Decimal {
	var days, base int
	switch c.value {
	case dayCountAct365:
		days, base = actualDays(start, end), 365
	case dayCountAct360:
		days, base = actualDays(start, end), 360
	default:
		days, base = days360US(start, end), 360
	}
	return decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(int64(base)))
}

func actualDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// days360US applies the 30/360 U.S. (bond basis) rules:
//   - if d1 == 31, d1 = 30
//   - if d2 == 31 and d1 >= 30, d2 = 30
func days360US(start, end time.Time) int {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()

	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 && d1 >= 30 {
		d2 = 30
	}
	return (y2-y1)*360 + int(m2-m1)*30 + (d2 - d1)
}
