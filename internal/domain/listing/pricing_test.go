//go:build unit

package listing_test

import (
	"testing"
	"time"

	"bookcars/internal/domain/listing"
	"bookcars/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateFor(t *testing.T) {
	l, err := builder.NewListingBuilder().WithPriceCents(15000).BuildDomain()
	require.NoError(t, err)

	cases := []struct {
		unit listing.RateUnit
		want int64
	}{
		{listing.RatePerHour, 15000},
		{listing.RatePerDay, 15000 * 24},
		{listing.RatePerWeek, 15000 * 24 * 7},
		{listing.RatePerMonth, 15000 * 24 * 30},
	}
	for _, c := range cases {
		t.Run(string(c.unit), func(t *testing.T) {
			got, err := l.RateFor(c.unit)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	t.Run("unknown unit", func(t *testing.T) {
		_, err := l.RateFor(listing.RateUnit("fortnight"))
		require.ErrorIs(t, err, listing.ErrInvalidRateUnit)
	})
}

func TestNewRateUnit(t *testing.T) {
	unit, err := listing.NewRateUnit("week")
	require.NoError(t, err)
	assert.Equal(t, listing.RatePerWeek, unit)

	_, err = listing.NewRateUnit("decade")
	require.ErrorIs(t, err, listing.ErrInvalidRateUnit)
}

func TestQuoteCents(t *testing.T) {
	l, err := builder.NewListingBuilder().WithPriceCents(10000).BuildDomain()
	require.NoError(t, err)

	cases := []struct {
		name string
		d    time.Duration
		want int64
	}{
		{"zero duration", 0, 0},
		{"sub hour rounds up to one", 20 * time.Minute, 10000},
		{"exact hours", 4 * time.Hour, 40000},
		{"partial hour rounds up", 4*time.Hour + time.Minute, 50000},
		{"full day", 24 * time.Hour, 240000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, l.QuoteCents(c.d))
		})
	}
}
