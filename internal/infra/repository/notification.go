package repository

import (
	"context"
	"time"

	"bookcars/internal/infra"
	"bookcars/internal/infra/db"
)

type NotificationJob struct {
	ID       int64
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int
}

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

const createJobSQL = `
INSERT INTO notification_jobs (kind, topic, payload, run_at)
VALUES ($1, $2, $3, $4)
`

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, createJobSQL, kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}

const claimPendingSQL = `
SELECT id, kind, topic, payload, attempts
FROM notification_jobs
WHERE status = 'pending' AND run_at <= $1
ORDER BY run_at
LIMIT $2
FOR UPDATE SKIP LOCKED
`

// ClaimPending uses SKIP LOCKED so concurrent dispatcher runs never pick up
// the same job twice.
func (r *NotificationRepository) ClaimPending(ctx context.Context, tx db.DBTX, now time.Time, limit int) ([]NotificationJob, error) {
	rows, err := tx.Query(ctx, claimPendingSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var j NotificationJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx db.DBTX, id int64, now time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE notification_jobs SET status = 'sent', attempts = attempts + 1, updated_at = $2 WHERE id = $1`,
		id, now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification sent", err)
	}
	return nil
}

const markFailedSQL = `
UPDATE notification_jobs
SET status = CASE WHEN attempts + 1 >= $3 THEN 'failed' ELSE 'pending' END,
    attempts = attempts + 1,
    last_error = $2,
    run_at = $4,
    updated_at = $5
WHERE id = $1
`

// MarkFailed re-queues the job with a delay until the attempt limit is hit.
func (r *NotificationRepository) MarkFailed(ctx context.Context, tx db.DBTX, id int64, cause string, maxAttempts int, retryAt, now time.Time) error {
	_, err := tx.Exec(ctx, markFailedSQL, id, cause, maxAttempts, retryAt, now)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification failed", err)
	}
	return nil
}
