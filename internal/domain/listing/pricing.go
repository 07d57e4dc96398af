package listing

import (
	"time"

	"bookcars/internal/pkg/errs"
)

var ErrInvalidRateUnit = errs.New("invalid rate unit")

// RateUnit is a display multiplier over the hourly base price.
type RateUnit string

const (
	RatePerHour  RateUnit = "hour"
	RatePerDay   RateUnit = "day"
	RatePerWeek  RateUnit = "week"
	RatePerMonth RateUnit = "month"
)

var rateMultipliers = map[RateUnit]int64{
	RatePerHour:  1,
	RatePerDay:   24,
	RatePerWeek:  24 * 7,
	RatePerMonth: 24 * 30,
}

func NewRateUnit(s string) (RateUnit, error) {
	unit := RateUnit(s)
	if _, ok := rateMultipliers[unit]; !ok {
		return "", ErrInvalidRateUnit
	}
	return unit, nil
}

// RateFor returns the listing price for one unit at the given granularity.
func (l *Listing) RateFor(unit RateUnit) (int64, error) {
	mult, ok := rateMultipliers[unit]
	if !ok {
		return 0, ErrInvalidRateUnit
	}
	return l.priceCents * mult, nil
}

// QuoteCents prices a rental duration: hourly base times the duration rounded
// up to whole hours, minimum one hour.
func (l *Listing) QuoteCents(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	if hours == 0 {
		hours = 1
	}
	return l.priceCents * hours
}
