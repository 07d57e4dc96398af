package commands

import (
	"context"

	"bookcars/internal/domain/availability"
	"bookcars/internal/domain/listing"
	"bookcars/internal/domain/user"
	reqdto "bookcars/internal/handler/dto/request"
	"bookcars/internal/infra"
	"bookcars/internal/infra/repository"
	"bookcars/internal/pkg/clock"
	"bookcars/internal/pkg/errs"
	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotListingOwner    = errs.New("listing does not belong to the requester")
	ErrCannotListVehicles = errs.New("only owners can list vehicles")
	ErrListingHasBookings = errs.New("listing has active bookings")
	ErrListingHasHistory  = errs.New("listing is referenced by past bookings or reviews")
)

type ListingCommands interface {
	CreateListing(ctx context.Context, req reqdto.CreateListingRequest, ownerID uuid.UUID, ownerRole user.Role) (*queries.ListingView, error)
	UpdateListing(ctx context.Context, listingID uuid.UUID, req reqdto.UpdateListingRequest, actorID uuid.UUID, actorRole user.Role) (*queries.ListingView, error)
	DeleteListing(ctx context.Context, listingID, actorID uuid.UUID, actorRole user.Role) error
}

type listingCommandsImpl struct {
	listingRepo    *repository.ListingRepository
	bookingRepo    *repository.BookingRepository
	listingQueries queries.ListingQueries
	db             *pgxpool.Pool
	clock          clock.Clock
}

func NewListingCommands(
	listingRepo *repository.ListingRepository,
	bookingRepo *repository.BookingRepository,
	listingQueries queries.ListingQueries,
	pool *pgxpool.Pool,
	clk clock.Clock,
) ListingCommands {
	return &listingCommandsImpl{
		listingRepo:    listingRepo,
		bookingRepo:    bookingRepo,
		listingQueries: listingQueries,
		db:             pool,
		clock:          clk,
	}
}

func (c *listingCommandsImpl) CreateListing(
	ctx context.Context,
	req reqdto.CreateListingRequest,
	ownerID uuid.UUID,
	ownerRole user.Role,
) (*queries.ListingView, error) {
	if ownerRole != user.RoleOwner && ownerRole != user.RoleAdmin {
		return nil, ErrCannotListVehicles
	}

	entity, err := req.ToDomain(ownerID, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := c.listingRepo.Create(ctx, c.db, entity, c.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.listingQueries.GetByID(ctx, entity.ID())
}

func (c *listingCommandsImpl) UpdateListing(
	ctx context.Context,
	listingID uuid.UUID,
	req reqdto.UpdateListingRequest,
	actorID uuid.UUID,
	actorRole user.Role,
) (*queries.ListingView, error) {
	entity, err := c.findOwnedListing(ctx, listingID, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	if req.PriceCents != nil {
		if err := entity.UpdatePrice(*req.PriceCents, now); err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
	}
	if req.WindowFrom != nil || req.WindowTill != nil {
		window := entity.Window()
		if req.WindowFrom != nil {
			window.From = *req.WindowFrom
		}
		if req.WindowTill != nil {
			window.Till = *req.WindowTill
		}
		if err := entity.UpdateWindow(window, now); err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
	}

	if err := c.listingRepo.Update(ctx, c.db, entity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.listingQueries.GetByID(ctx, entity.ID())
}

// DeleteListing refuses while active bookings exist; owners cancel those
// first so renters are notified and refunded.
func (c *listingCommandsImpl) DeleteListing(ctx context.Context, listingID, actorID uuid.UUID, actorRole user.Role) error {
	if _, err := c.findOwnedListing(ctx, listingID, actorID, actorRole); err != nil {
		return err
	}

	intervals, err := c.bookingRepo.ActiveIntervals(ctx, c.db, listingID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if c.hasUpcoming(intervals) {
		return ErrListingHasBookings
	}

	if err := c.listingRepo.Delete(ctx, c.db, listingID); err != nil {
		// Completed or canceled bookings and reviews keep their listing
		// reference; the row must stay for their sake.
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return ErrListingHasHistory
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *listingCommandsImpl) findOwnedListing(ctx context.Context, listingID, actorID uuid.UUID, actorRole user.Role) (*listing.Listing, error) {
	entity, err := c.listingRepo.FindByID(ctx, c.db, listingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if actorRole != user.RoleAdmin && !entity.IsOwnedBy(actorID) {
		return nil, ErrNotListingOwner
	}
	return entity, nil
}

func (c *listingCommandsImpl) hasUpcoming(intervals []availability.Interval) bool {
	now := c.clock.Now()
	for _, iv := range intervals {
		if iv.End.After(now) {
			return true
		}
	}
	return false
}
