package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"bookcars/internal/domain/availability"
	"bookcars/internal/domain/booking"
	"bookcars/internal/domain/listing"
	"bookcars/internal/domain/user"
	reqdto "bookcars/internal/handler/dto/request"
	"bookcars/internal/infra"
	"bookcars/internal/infra/db"
	"bookcars/internal/infra/jobs"
	"bookcars/internal/infra/repository"
	"bookcars/internal/pkg/clock"
	"bookcars/internal/pkg/errs"
	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrListingNotFound         = errs.New("listing not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrInvalidPeriod           = errs.New("invalid booking period")
	ErrOutsideWindow           = errs.New("period is outside the listing's availability window")
	ErrBookingConflict         = errs.New("period conflicts with an existing booking")
	ErrDuplicateBooking        = errs.New("duplicate booking request")
	ErrIdempotencyInProgress   = errs.New("an identical request is in progress")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrNotBookingParty         = errs.New("booking does not belong to the requester")
	ErrPaymentFailed           = errs.New("payment processing failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const bookingEndpoint = "POST /bookings"

// PaymentProvider charges and refunds bookings; the reference identifies the
// charge at the provider.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amountCents int64, description, receiptEmail string) (string, error)
	Refund(ctx context.Context, paymentRef string) error
}

type CreateBookingResult struct {
	Booking       *queries.BookingView
	PaymentIntent string
	IsReplayed    bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, renterID uuid.UUID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	ConfirmBooking(ctx context.Context, bookingID, renterID uuid.UUID, paymentRef string) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) error
}

type bookingCommandsImpl struct {
	bookingRepo     *repository.BookingRepository
	listingRepo     *repository.ListingRepository
	idempotencyRepo *repository.IdempotencyRepository
	notifications   *repository.NotificationRepository
	bookingQueries  queries.BookingQueries
	payment         PaymentProvider
	db              *pgxpool.Pool
	clock           clock.Clock
}

func NewBookingCommands(
	bookingRepo *repository.BookingRepository,
	listingRepo *repository.ListingRepository,
	idempotencyRepo *repository.IdempotencyRepository,
	notifications *repository.NotificationRepository,
	bookingQueries queries.BookingQueries,
	payment PaymentProvider,
	pool *pgxpool.Pool,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:     bookingRepo,
		listingRepo:     listingRepo,
		idempotencyRepo: idempotencyRepo,
		notifications:   notifications,
		bookingQueries:  bookingQueries,
		payment:         payment,
		db:              pool,
		clock:           clk,
	}
}

func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	renterID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := c.clock.Now().Add(24 * time.Hour)

	replayed, err := c.handleIdempotency(ctx, idempotencyKey, renterID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
	}

	return c.createNewBooking(ctx, req, renterID, idempotencyKey)
}

func (c *bookingCommandsImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, renterID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.BookingView, error) {
	claimed, err := c.idempotencyRepo.TryInsert(ctx, c.db, idempotencyKey, renterID, bookingEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if claimed {
		return nil, nil
	}

	existing, err := c.idempotencyRepo.Get(ctx, c.db, idempotencyKey, renterID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultBookingID == nil {
			return nil, errs.New("completed request missing result booking ID")
		}
		return c.bookingQueries.GetByIDSystem(ctx, *existing.ResultBookingID)

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateBooking
		}
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *bookingCommandsImpl) createNewBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	renterID, idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	l, err := c.findListing(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	entity, err := c.buildBooking(ctx, req, l, renterID)
	if err != nil {
		return nil, err
	}

	description := l.Brand() + " " + l.Model() + " rental"
	paymentIntent, err := c.payment.CreateIntent(ctx, entity.PriceCents(), description, entity.Contact().Email())
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentFailed)
	}

	view, err := c.persistBooking(ctx, entity, idempotencyKey, renterID)
	if err != nil {
		return nil, err
	}

	return &CreateBookingResult{
		Booking:       view,
		PaymentIntent: paymentIntent,
		IsReplayed:    false,
	}, nil
}

func (c *bookingCommandsImpl) findListing(ctx context.Context, listingID uuid.UUID) (*listing.Listing, error) {
	l, err := c.listingRepo.FindByID(ctx, c.db, listingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return l, nil
}

// buildBooking runs the advisory availability check against a snapshot of the
// active reservations. The exclusion constraint re-checks atomically at
// insert time, so a race here degrades to a conflict error, never to a
// double booking.
func (c *bookingCommandsImpl) buildBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	l *listing.Listing,
	renterID uuid.UUID,
) (*booking.Booking, error) {
	candidate, err := availability.NewInterval(req.StartAt, req.EndAt)
	if err != nil {
		return nil, ErrInvalidPeriod
	}

	existing, err := c.bookingRepo.ActiveIntervals(ctx, c.db, l.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := availability.Validate(candidate, l.Window(), existing); err != nil {
		switch {
		case errors.Is(err, availability.ErrOutsideWindow):
			return nil, ErrOutsideWindow
		case errors.Is(err, availability.ErrConflict):
			return nil, ErrBookingConflict
		default:
			return nil, ErrInvalidPeriod
		}
	}

	route, err := booking.NewRoute(l.City(), req.PickupPoint, req.DropoffPoint)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	contact, err := booking.NewContact(req.ContactName, req.ContactEmail, req.ContactPhone)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	entity, err := booking.NewBooking(booking.NewBookingParams{
		ListingID:  l.ID(),
		RenterID:   renterID,
		Interval:   candidate,
		Route:      route,
		Contact:    contact,
		PriceCents: l.QuoteCents(candidate.Duration()),
	}, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	return entity, nil
}

// persistBooking re-validates availability inside the transaction while
// holding the listing row lock, so concurrent bookings of the same listing
// serialize here. The exclusion constraint remains the last line of defense.
func (c *bookingCommandsImpl) persistBooking(
	ctx context.Context,
	entity *booking.Booking,
	idempotencyKey, renterID uuid.UUID,
) (*queries.BookingView, error) {
	err := db.RunInTx(ctx, c.db, func(ctx context.Context, tx db.DBTX) error {
		locked, err := c.listingRepo.FindByIDForUpdate(ctx, tx, entity.ListingID())
		if err != nil {
			return err
		}
		existing, err := c.bookingRepo.ActiveIntervals(ctx, tx, entity.ListingID())
		if err != nil {
			return err
		}
		if err := availability.Validate(entity.Interval(), locked.Window(), existing); err != nil {
			return err
		}
		if err := c.bookingRepo.Create(ctx, tx, entity); err != nil {
			return err
		}
		responseHash := calculateIDHash(entity.ID())
		return c.idempotencyRepo.UpdateStatusCompleted(ctx, tx, idempotencyKey, renterID, responseHash, entity.ID())
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrConflict), infra.IsKind(err, infra.KindConflict):
			return nil, ErrBookingConflict
		case errors.Is(err, availability.ErrOutsideWindow):
			// Window shrank between the advisory check and the insert.
			return nil, ErrOutsideWindow
		case errors.Is(err, availability.ErrInvalidInterval):
			return nil, ErrInvalidPeriod
		default:
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	// Read-after-write: return the full view from the read store.
	view, err := c.bookingQueries.GetByIDSystem(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// ConfirmBooking records the completed payment and queues the confirmation
// email through the outbox.
func (c *bookingCommandsImpl) ConfirmBooking(ctx context.Context, bookingID, renterID uuid.UUID, paymentRef string) (*queries.BookingView, error) {
	entity, err := c.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if entity.RenterID() != renterID {
		return nil, ErrNotBookingParty
	}

	if err := entity.Confirm(paymentRef, c.clock.Now()); err != nil {
		return nil, err
	}

	err = db.RunInTx(ctx, c.db, func(ctx context.Context, tx db.DBTX) error {
		if err := c.bookingRepo.UpdateStatus(ctx, tx, entity); err != nil {
			return err
		}
		return c.enqueueNotification(ctx, tx, jobs.TopicBookingConfirmed, entity.ID())
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.bookingQueries.GetByIDSystem(ctx, entity.ID())
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) error {
	entity, err := c.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if actorRole != user.RoleAdmin && entity.RenterID() != actorID {
		return ErrNotBookingParty
	}

	paymentRef := entity.PaymentRef()

	if err := entity.Cancel(c.clock.Now()); err != nil {
		return err
	}

	err = db.RunInTx(ctx, c.db, func(ctx context.Context, tx db.DBTX) error {
		if err := c.bookingRepo.UpdateStatus(ctx, tx, entity); err != nil {
			return err
		}
		return c.enqueueNotification(ctx, tx, jobs.TopicBookingCanceled, entity.ID())
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Refund after commit: the cancellation stands even if the refund needs
	// a manual retry.
	if paymentRef != "" {
		if err := c.payment.Refund(ctx, paymentRef); err != nil {
			slog.Error("refund failed, needs manual follow-up",
				"booking_id", entity.ID(),
				"payment_ref", paymentRef,
				"error", err.Error())
		}
	}
	return nil
}

func (c *bookingCommandsImpl) findBooking(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error) {
	entity, err := c.bookingRepo.FindByID(ctx, c.db, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

func (c *bookingCommandsImpl) enqueueNotification(ctx context.Context, tx db.DBTX, topic string, bookingID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{"booking_id": bookingID})
	if err != nil {
		return err
	}
	return c.notifications.CreateJob(ctx, tx, "email", topic, payload, c.clock.Now())
}

func calculateRequestHash(req reqdto.CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
