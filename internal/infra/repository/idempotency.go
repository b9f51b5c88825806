package repository

import (
	"context"
	"time"

	"rinto/internal/infra/db"
	"rinto/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

const tryInsertIdempotencySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at, created_at)
VALUES ($1, $2, $3, $4, 'processing', $5, now())
ON CONFLICT (key, user_id) DO NOTHING
`

// TryInsert claims the key with ON CONFLICT DO NOTHING so exactly one of
// any set of racing requests wins.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := dbtx.Exec(ctx, tryInsertIdempotencySQL,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
		endpoint,
		requestHash,
		pgconv.TimeToPgtype(expiresAt),
	)
	if err != nil {
		return false, wrapPgErr("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

const completeIdempotencySQL = `
UPDATE idempotency_keys
SET status = 'completed', result_booking_id = $3
WHERE key = $1 AND user_id = $2
`

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID, resultBookingID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, completeIdempotencySQL,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
		pgconv.UUIDToPgtype(resultBookingID),
	); err != nil {
		return wrapPgErr("failed to complete idempotency key", err)
	}
	return nil
}

const deleteIdempotencySQL = `
DELETE FROM idempotency_keys
WHERE key = $1 AND user_id = $2 AND status = 'processing'
`

// Delete only touches processing rows; a completed record keeps its
// replay result until it expires.
func (r *IdempotencyRepository) Delete(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, deleteIdempotencySQL,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
	); err != nil {
		return wrapPgErr("failed to release idempotency key", err)
	}
	return nil
}
