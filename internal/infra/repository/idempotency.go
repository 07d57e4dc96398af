package repository

import (
	"context"
	"time"

	"bookcars/internal/infra"
	"bookcars/internal/infra/db"

	"github.com/google/uuid"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	RequestHash     string
	Status          string
	ResultBookingID *uuid.UUID
	ResponseHash    *string
	ExpiresAt       time.Time
}

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

const tryInsertIdempotencySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO NOTHING
`

// TryInsert claims the key if unclaimed and reports whether this call made
// the claim. An existing claim is not an error; the caller distinguishes
// replay from conflict by reading the record back.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, tryInsertIdempotencySQL, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

const getIdempotencySQL = `
SELECT key, user_id, endpoint, request_hash, status, result_booking_id, response_hash, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`

func (r *IdempotencyRepository) Get(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) (*IdempotencyRecord, error) {
	var rec IdempotencyRecord
	err := tx.QueryRow(ctx, getIdempotencySQL, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.Endpoint, &rec.RequestHash,
		&rec.Status, &rec.ResultBookingID, &rec.ResponseHash, &rec.ExpiresAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get idempotency record", err)
	}
	return &rec, nil
}

const completeIdempotencySQL = `
UPDATE idempotency_keys
SET status = 'completed', response_hash = $3, result_booking_id = $4
WHERE key = $1 AND user_id = $2
`

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, responseHash string, resultBookingID uuid.UUID) error {
	_, err := tx.Exec(ctx, completeIdempotencySQL, key, userID, responseHash, resultBookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency record", err)
	}
	return nil
}

// DeleteExpired is run by the maintenance job.
func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
