package repository

import (
	"context"

	"rinto/internal/domain/review"
	"rinto/internal/infra/db"
	"rinto/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

const createReviewSQL = `
INSERT INTO reviews (id, booking_id, listing_id, user_id, rating, comment, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

func (r *ReviewRepository) Create(ctx context.Context, dbtx db.DBTX, rev *review.Review) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createReviewSQL,
		pgconv.UUIDToPgtype(rev.ID()),
		pgconv.UUIDToPgtype(rev.BookingID()),
		pgconv.UUIDToPgtype(rev.ListingID()),
		pgconv.UUIDToPgtype(rev.UserID()),
		rev.Rating().Value(),
		rev.Comment(),
		pgconv.TimeToPgtype(rev.CreatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create review", err)
	}
	return id, nil
}
