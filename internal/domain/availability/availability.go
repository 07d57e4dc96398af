// Package availability implements the pure booking-availability engine:
// interval overlap checks, candidate validation against a listing's offer
// window, and per-day calendar classification. All functions operate on
// immutable snapshots supplied by the caller and are safe for concurrent use.
package availability

import (
	"fmt"
	"sort"
	"time"

	"bookcars/internal/pkg/errs"
)

var (
	ErrInvalidInterval = errs.New("interval end must be strictly after start")
	ErrOutsideWindow   = errs.New("interval falls outside the availability window")
	ErrConflict        = errs.New("interval conflicts with an existing reservation")
)

// Window is the inclusive range during which a listing is offered at all.
type Window struct {
	From time.Time
	Till time.Time
}

func NewWindow(from, till time.Time) (Window, error) {
	if till.Before(from) {
		return Window{}, ErrInvalidInterval
	}
	return Window{From: from, Till: till}, nil
}

// Contains reports whether t lies within the window, inclusive on both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.Till)
}

// Interval is a half-open [Start, End) pickup-to-dropoff span.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps is symmetric. Touching endpoints do not overlap, so back-to-back
// reservations are always legal.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// ConflictError reports the first existing reservation a candidate collides
// with. errors.Is(err, ErrConflict) matches it.
type ConflictError struct {
	Conflicting Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("interval conflicts with existing reservation [%s, %s)",
		e.Conflicting.Start.Format(time.RFC3339), e.Conflicting.End.Format(time.RFC3339))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Validate checks a candidate interval against the window and the current
// reservation snapshot. Checks run in order and the first failure wins:
// interval ordering, window containment, then overlap. Which conflict is
// reported depends on the order of existing; whether one is reported does not.
//
// A nil result is advisory only. It does not hold the interval; the write
// path must re-check atomically at insert time.
func Validate(candidate Interval, window Window, existing []Interval) error {
	if !candidate.End.After(candidate.Start) {
		return ErrInvalidInterval
	}
	if !window.Contains(candidate.Start) || !window.Contains(candidate.End) {
		return ErrOutsideWindow
	}
	for _, e := range existing {
		if candidate.Overlaps(e) {
			return &ConflictError{Conflicting: e}
		}
	}
	return nil
}

type DayClass string

const (
	DayAvailable       DayClass = "available"
	DayPartiallyBooked DayClass = "partially_booked"
	DayFullyBooked     DayClass = "fully_booked"
	DayOutOfWindow     DayClass = "out_of_window"
)

func (d DayClass) String() string {
	return string(d)
}

// ClassifyDay labels one calendar day for calendar rendering. The day is
// interpreted in day's own location and spans [midnight, midnight+24h).
// The result is invariant under permutation of existing because intervals
// are merged before coverage is summed.
func ClassifyDay(day time.Time, window Window, existing []Interval) DayClass {
	start := startOfDay(day)
	end := start.Add(24 * time.Hour)

	// The day contains an offerable instant iff [start, end) intersects
	// the inclusive [From, Till] window.
	if !start.Before(end) || end.Compare(window.From) <= 0 || start.After(window.Till) {
		return DayOutOfWindow
	}

	covered := coveredDuration(start, end, existing)
	switch {
	case covered == 0:
		return DayAvailable
	case covered >= 24*time.Hour:
		return DayFullyBooked
	default:
		return DayPartiallyBooked
	}
}

// BlockedSlots returns the slot start times on day, at the given granularity,
// in which a pickup or dropoff may not begin without immediately colliding
// with an existing reservation. Used to disable time-picker entries.
func BlockedSlots(day time.Time, granularity time.Duration, window Window, existing []Interval) []time.Time {
	if granularity <= 0 {
		return nil
	}

	start := startOfDay(day)
	end := start.Add(24 * time.Hour)

	var blocked []time.Time
	for t := start; t.Before(end); t = t.Add(granularity) {
		slot := Interval{Start: t, End: t.Add(granularity)}
		for _, e := range existing {
			if slot.Overlaps(e) {
				blocked = append(blocked, t)
				break
			}
		}
	}
	return blocked
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// coveredDuration sums the intersection of existing intervals with
// [start, end), merging overlapping and touching intervals first so shared
// time is not double-counted.
func coveredDuration(start, end time.Time, existing []Interval) time.Duration {
	clipped := make([]Interval, 0, len(existing))
	for _, e := range existing {
		s, t := e.Start, e.End
		if s.Before(start) {
			s = start
		}
		if t.After(end) {
			t = end
		}
		if t.After(s) {
			clipped = append(clipped, Interval{Start: s, End: t})
		}
	}
	if len(clipped) == 0 {
		return 0
	}

	sort.Slice(clipped, func(i, j int) bool {
		return clipped[i].Start.Before(clipped[j].Start)
	})

	var total time.Duration
	cur := clipped[0]
	for _, iv := range clipped[1:] {
		if !iv.Start.After(cur.End) {
			if iv.End.After(cur.End) {
				cur.End = iv.End
			}
			continue
		}
		total += cur.End.Sub(cur.Start)
		cur = iv
	}
	total += cur.End.Sub(cur.Start)
	return total
}
