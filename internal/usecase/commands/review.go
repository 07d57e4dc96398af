package commands

import (
	"context"

	"bookcars/internal/domain/booking"
	domreview "bookcars/internal/domain/review"
	reqdto "bookcars/internal/handler/dto/request"
	"bookcars/internal/infra"
	"bookcars/internal/infra/repository"
	"bookcars/internal/pkg/clock"
	"bookcars/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotReviewer       = errs.New("only the renter can review the booking")
	ErrBookingNotEnded   = errs.New("only completed bookings can be reviewed")
	ErrDuplicateReview   = errs.New("booking has already been reviewed")
	ErrReviewPersistence = errs.New("failed to store review")
)

type ReviewCommands interface {
	CreateReview(ctx context.Context, req reqdto.CreateReviewRequest, userID uuid.UUID) (*domreview.Review, error)
}

type reviewCommandsImpl struct {
	reviewRepo  *repository.ReviewRepository
	bookingRepo *repository.BookingRepository
	db          *pgxpool.Pool
	clock       clock.Clock
}

func NewReviewCommands(
	reviewRepo *repository.ReviewRepository,
	bookingRepo *repository.BookingRepository,
	pool *pgxpool.Pool,
	clk clock.Clock,
) ReviewCommands {
	return &reviewCommandsImpl{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		db:          pool,
		clock:       clk,
	}
}

func (c *reviewCommandsImpl) CreateReview(ctx context.Context, req reqdto.CreateReviewRequest, userID uuid.UUID) (*domreview.Review, error) {
	b, err := c.bookingRepo.FindByID(ctx, c.db, req.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if b.RenterID() != userID {
		return nil, ErrNotReviewer
	}
	if b.Status() != booking.StatusCompleted {
		return nil, ErrBookingNotEnded
	}

	entity, err := domreview.NewReview(uuid.Nil, userID, b.ListingID(), b.ID(), req.Rating, req.Comment, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := c.reviewRepo.Create(ctx, c.db, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateReview
		}
		return nil, errs.Mark(err, ErrReviewPersistence)
	}

	return entity, nil
}
