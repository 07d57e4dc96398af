package queries

import (
	"context"

	"bookcars/internal/domain/user"
	"bookcars/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingAccessDenied = errs.New("booking does not belong to the requester")

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error)
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, uuid.UUID, error)
	FindByRenterID(ctx context.Context, renterID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

// GetByID enforces ownership: the renter, the listing's owner, and admins may
// read a booking.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error) {
	view, listingOwnerID, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != user.RoleAdmin && actorID != view.RenterID && actorID != listingOwnerID {
		return nil, ErrBookingAccessDenied
	}
	return view, nil
}

// GetByIDSystem skips the ownership check for internal callers such as
// idempotent replay and notification rendering.
func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, _, err := q.repo.FindByID(ctx, id)
	return view, err
}

func (q *bookingQueriesImpl) ListByRenter(ctx context.Context, renterID uuid.UUID, limit, offset int32) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByRenterID(ctx, renterID, limit, offset)
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByOwnerID(ctx, ownerID, limit, offset)
}
