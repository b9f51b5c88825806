package repository

import (
	"context"

	"rinto/internal/infra/db"
	"rinto/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type RatingStatsRepository struct{}

func NewRatingStatsRepository() *RatingStatsRepository {
	return &RatingStatsRepository{}
}

const recalcListingRatingStatsSQL = `
UPDATE listings
SET rating = stats.avg_rating,
    review_count = stats.cnt,
    updated_at = now()
FROM (
    SELECT AVG(rating)::float8 AS avg_rating, COUNT(*)::int AS cnt
    FROM reviews
    WHERE listing_id = $1
) AS stats
WHERE listings.id = $1
`

// RecalcListingRatingStats recomputes the aggregate from the review rows
// instead of applying a delta, so it self-heals after any drift.
func (r *RatingStatsRepository) RecalcListingRatingStats(ctx context.Context, dbtx db.DBTX, listingID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, recalcListingRatingStatsSQL, pgconv.UUIDToPgtype(listingID)); err != nil {
		return wrapPgErr("failed to recalculate listing rating stats", err)
	}
	return nil
}
