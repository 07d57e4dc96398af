package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookcars/internal/infra/db"
	"bookcars/internal/infra/repository"
	"bookcars/internal/pkg/clock"
	"bookcars/internal/pkg/config"
	"bookcars/internal/pkg/errs"
	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxSendAttempts = 5
	retryDelay      = 2 * time.Minute
)

// Notification topics written by the booking command side.
const (
	TopicBookingConfirmed = "booking_confirmed"
	TopicBookingCanceled  = "booking_canceled"
)

type Mailer interface {
	Send(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error
}

type notificationPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
}

// OutboxDispatcher drains the notification_jobs table. Jobs are claimed with
// SKIP LOCKED inside a transaction, so overlapping runs never send twice.
type OutboxDispatcher struct {
	pool           *pgxpool.Pool
	notifications  *repository.NotificationRepository
	bookingQueries queries.BookingQueries
	mailer         Mailer
	clock          clock.Clock
	siteURL        string
	batchSize      int
}

func NewOutboxDispatcher(
	pool *pgxpool.Pool,
	notifications *repository.NotificationRepository,
	bookingQueries queries.BookingQueries,
	mailer Mailer,
	clk clock.Clock,
	cfg config.Config,
) *OutboxDispatcher {
	return &OutboxDispatcher{
		pool:           pool,
		notifications:  notifications,
		bookingQueries: bookingQueries,
		mailer:         mailer,
		clock:          clk,
		siteURL:        cfg.SendGrid.SiteURL,
		batchSize:      cfg.Jobs.OutboxBatchSize,
	}
}

func (d *OutboxDispatcher) DispatchOnce(ctx context.Context) error {
	return db.RunInTx(ctx, d.pool, func(ctx context.Context, tx db.DBTX) error {
		now := d.clock.Now()
		jobs, err := d.notifications.ClaimPending(ctx, tx, now, d.batchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			if err := d.deliver(ctx, job); err != nil {
				slog.Warn("notification delivery failed",
					"job_id", job.ID,
					"topic", job.Topic,
					"attempt", job.Attempts+1,
					"error", err.Error())
				if markErr := d.notifications.MarkFailed(ctx, tx, job.ID, err.Error(), maxSendAttempts, now.Add(retryDelay), now); markErr != nil {
					return markErr
				}
				continue
			}
			if err := d.notifications.MarkSent(ctx, tx, job.ID, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *OutboxDispatcher) deliver(ctx context.Context, job repository.NotificationJob) error {
	var payload notificationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return errs.Wrap(err, "malformed notification payload")
	}

	view, err := d.bookingQueries.GetByIDSystem(ctx, payload.BookingID)
	if err != nil {
		return err
	}

	subject, plain, html := d.renderEmail(job.Topic, view)
	return d.mailer.Send(ctx, view.ContactEmail, view.ContactName, subject, plain, html)
}

func (d *OutboxDispatcher) renderEmail(topic string, v *queries.BookingView) (subject, plain, html string) {
	car := v.ListingBrand + " " + v.ListingModel
	bookingURL := fmt.Sprintf("%s/bookings/%s", d.siteURL, v.ID)
	period := fmt.Sprintf("%s to %s",
		v.StartAt.Format("Mon, 02 Jan 2006 15:04 MST"),
		v.EndAt.Format("Mon, 02 Jan 2006 15:04 MST"))

	switch topic {
	case TopicBookingCanceled:
		subject = "Your booking has been canceled"
		plain = fmt.Sprintf(
			"Hello %s,\n\nYour booking of the %s (%s) has been canceled.\nIf you paid for it, the refund is on its way.\n\nDetails: %s\n",
			v.ContactName, car, period, bookingURL)
	default:
		subject = "Your booking is confirmed"
		plain = fmt.Sprintf(
			"Hello %s,\n\nYour booking of the %s is confirmed.\nPeriod: %s\nPickup: %s\nDropoff: %s\n\nDetails: %s\n",
			v.ContactName, car, period, v.PickupPoint, v.DropoffPoint, bookingURL)
	}

	html = "<p>" + strings.ReplaceAll(plain, "\n", "<br>") + "</p>"
	return subject, plain, html
}
