package queries

import (
	"context"
	"time"

	"bookcars/internal/domain/availability"
	"bookcars/internal/domain/listing"

	"github.com/google/uuid"
)

type ListingQueries interface {
	Search(ctx context.Context, params SearchListingsParams) ([]*ListingListItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	Calendar(ctx context.Context, listingID uuid.UUID, year int, month time.Month) ([]CalendarDay, error)
	BlockedSlots(ctx context.Context, listingID uuid.UUID, day time.Time, granularity time.Duration) ([]time.Time, error)
	Quote(ctx context.Context, listingID uuid.UUID, start, end time.Time) (*QuoteView, error)
}

type ListingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	Search(ctx context.Context, params SearchListingsParams) ([]*ListingListItem, error)
}

// AvailabilityReads supplies the snapshot the calendar engine runs on:
// the listing's offer window and its active booking intervals.
type AvailabilityReads interface {
	ListingSnapshot(ctx context.Context, listingID uuid.UUID) (*listing.Listing, error)
	ActiveIntervals(ctx context.Context, listingID uuid.UUID) ([]availability.Interval, error)
}

type listingQueriesImpl struct {
	repo  ListingViewRepo
	reads AvailabilityReads
}

func NewListingQueries(repo ListingViewRepo, reads AvailabilityReads) ListingQueries {
	return &listingQueriesImpl{repo: repo, reads: reads}
}

func (q *listingQueriesImpl) Search(ctx context.Context, params SearchListingsParams) ([]*ListingListItem, error) {
	if params.Limit <= 0 {
		params.Limit = 50
	}
	return q.repo.Search(ctx, params)
}

func (q *listingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ListingView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *listingQueriesImpl) Calendar(ctx context.Context, listingID uuid.UUID, year int, month time.Month) ([]CalendarDay, error) {
	l, err := q.reads.ListingSnapshot(ctx, listingID)
	if err != nil {
		return nil, err
	}
	intervals, err := q.reads.ActiveIntervals(ctx, listingID)
	if err != nil {
		return nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := make([]CalendarDay, 0, 31)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		days = append(days, CalendarDay{
			Day:   day,
			Class: availability.ClassifyDay(day, l.Window(), intervals).String(),
		})
	}
	return days, nil
}

func (q *listingQueriesImpl) BlockedSlots(ctx context.Context, listingID uuid.UUID, day time.Time, granularity time.Duration) ([]time.Time, error) {
	l, err := q.reads.ListingSnapshot(ctx, listingID)
	if err != nil {
		return nil, err
	}
	intervals, err := q.reads.ActiveIntervals(ctx, listingID)
	if err != nil {
		return nil, err
	}
	return availability.BlockedSlots(day, granularity, l.Window(), intervals), nil
}

// Quote prices the interval and reports whether it could currently be booked.
// The answer is advisory; only the insert-time recheck holds the slot.
func (q *listingQueriesImpl) Quote(ctx context.Context, listingID uuid.UUID, start, end time.Time) (*QuoteView, error) {
	candidate, err := availability.NewInterval(start, end)
	if err != nil {
		return nil, err
	}

	l, err := q.reads.ListingSnapshot(ctx, listingID)
	if err != nil {
		return nil, err
	}
	intervals, err := q.reads.ActiveIntervals(ctx, listingID)
	if err != nil {
		return nil, err
	}

	available := availability.Validate(candidate, l.Window(), intervals) == nil

	return &QuoteView{
		ListingID:  listingID,
		StartAt:    candidate.Start,
		EndAt:      candidate.End,
		Hours:      billableHours(candidate.Duration()),
		PriceCents: l.QuoteCents(candidate.Duration()),
		Available:  available,
	}, nil
}

func billableHours(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}
	return hours
}
