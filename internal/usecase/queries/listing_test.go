//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"bookcars/internal/domain/availability"
	"bookcars/internal/domain/listing"
	"bookcars/internal/usecase/queries"
	"bookcars/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAvailabilityReads feeds the calendar engine a fixed snapshot.
type stubAvailabilityReads struct {
	listing   *listing.Listing
	intervals []availability.Interval
}

func (s *stubAvailabilityReads) ListingSnapshot(_ context.Context, _ uuid.UUID) (*listing.Listing, error) {
	return s.listing, nil
}

func (s *stubAvailabilityReads) ActiveIntervals(_ context.Context, _ uuid.UUID) ([]availability.Interval, error) {
	return s.intervals, nil
}

// view repo is unused by the calendar and quote paths
type stubListingViewRepo struct{}

func (stubListingViewRepo) FindByID(_ context.Context, _ uuid.UUID) (*queries.ListingView, error) {
	panic("not expected")
}

func (stubListingViewRepo) Search(_ context.Context, _ queries.SearchListingsParams) ([]*queries.ListingListItem, error) {
	panic("not expected")
}

func newCalendarFixture(t *testing.T, intervals []availability.Interval) queries.ListingQueries {
	t.Helper()

	l, err := builder.NewListingBuilder().
		WithPriceCents(25000).
		WithWindow(
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		).
		BuildDomain()
	require.NoError(t, err)

	return queries.NewListingQueries(stubListingViewRepo{}, &stubAvailabilityReads{
		listing:   l,
		intervals: intervals,
	})
}

func TestListingQueries_Calendar(t *testing.T) {
	ctx := context.Background()

	intervals := []availability.Interval{
		// partial day
		{Start: time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 3, 18, 0, 0, 0, time.UTC)},
		// whole day
		{Start: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)},
	}

	q := newCalendarFixture(t, intervals)

	t.Run("classifies every day of the month", func(t *testing.T) {
		days, err := q.Calendar(ctx, uuid.New(), 2024, time.June)
		require.NoError(t, err)
		require.Len(t, days, 30)

		byDate := make(map[string]string, len(days))
		for _, d := range days {
			byDate[d.Day.Format("2006-01-02")] = d.Class
		}

		assert.Equal(t, "available", byDate["2024-06-01"])
		assert.Equal(t, "partially_booked", byDate["2024-06-03"])
		assert.Equal(t, "fully_booked", byDate["2024-06-05"])
		assert.Equal(t, "available", byDate["2024-06-06"])
	})

	t.Run("month outside the offer window is fully out_of_window", func(t *testing.T) {
		days, err := q.Calendar(ctx, uuid.New(), 2024, time.July)
		require.NoError(t, err)
		require.Len(t, days, 31)

		for _, d := range days {
			assert.Equal(t, "out_of_window", d.Class, d.Day.Format("2006-01-02"))
		}
	})
}

func TestListingQueries_BlockedSlots(t *testing.T) {
	ctx := context.Background()

	intervals := []availability.Interval{
		{Start: time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 3, 18, 0, 0, 0, time.UTC)},
	}
	q := newCalendarFixture(t, intervals)

	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	blocked, err := q.BlockedSlots(ctx, uuid.New(), day, time.Hour)
	require.NoError(t, err)

	// hour slots 10:00 through 17:00 collide with the reservation
	require.Len(t, blocked, 8)
	assert.Equal(t, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), blocked[0])
	assert.Equal(t, time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC), blocked[len(blocked)-1])
}

func TestListingQueries_Quote(t *testing.T) {
	ctx := context.Background()

	intervals := []availability.Interval{
		{Start: time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 3, 18, 0, 0, 0, time.UTC)},
	}
	q := newCalendarFixture(t, intervals)

	t.Run("prices whole hours", func(t *testing.T) {
		start := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)

		quote, err := q.Quote(ctx, uuid.New(), start, end)
		require.NoError(t, err)

		assert.Equal(t, int64(8), quote.Hours)
		assert.Equal(t, int64(8*25000), quote.PriceCents)
		assert.True(t, quote.Available)
	})

	t.Run("rounds partial hours up", func(t *testing.T) {
		start := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
		end := start.Add(90 * time.Minute)

		quote, err := q.Quote(ctx, uuid.New(), start, end)
		require.NoError(t, err)

		assert.Equal(t, int64(2), quote.Hours)
		assert.Equal(t, int64(2*25000), quote.PriceCents)
	})

	t.Run("overlapping period is priced but unavailable", func(t *testing.T) {
		start := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 3, 14, 0, 0, 0, time.UTC)

		quote, err := q.Quote(ctx, uuid.New(), start, end)
		require.NoError(t, err)

		assert.False(t, quote.Available)
		assert.Equal(t, int64(2*25000), quote.PriceCents)
	})

	t.Run("touching reservation end stays available", func(t *testing.T) {
		start := time.Date(2024, 6, 3, 18, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 3, 20, 0, 0, 0, time.UTC)

		quote, err := q.Quote(ctx, uuid.New(), start, end)
		require.NoError(t, err)

		assert.True(t, quote.Available)
	})

	t.Run("period outside the window is unavailable", func(t *testing.T) {
		start := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
		end := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

		quote, err := q.Quote(ctx, uuid.New(), start, end)
		require.NoError(t, err)

		assert.False(t, quote.Available)
	})

	t.Run("rejects inverted period", func(t *testing.T) {
		start := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)

		_, err := q.Quote(ctx, uuid.New(), start, end)
		require.ErrorIs(t, err, availability.ErrInvalidInterval)
	})
}
