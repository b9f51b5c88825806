package readstore

import (
	"context"

	"rinto/internal/infra/db"
	"rinto/internal/pkg/pgconv"
	"rinto/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

const findReviewsByListingSQL = `
SELECT id, booking_id, listing_id, user_id, rating, comment, created_at
FROM reviews
WHERE listing_id = $1
ORDER BY created_at DESC
`

func (r *ReviewReadStore) FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*queries.ReviewView, error) {
	rows, err := r.db.Query(ctx, findReviewsByListingSQL, pgconv.UUIDToPgtype(listingID))
	if err != nil {
		return nil, wrapPgErr("failed to list reviews by listing", err)
	}
	defer rows.Close()

	var views []*queries.ReviewView
	for rows.Next() {
		var (
			id, bookingID, lid, userID pgtype.UUID
			rating                     int
			comment                    string
			createdAt                  pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &bookingID, &lid, &userID, &rating, &comment, &createdAt); err != nil {
			return nil, wrapPgErr("failed to scan review row", err)
		}
		views = append(views, &queries.ReviewView{
			ID:        pgconv.UUIDFromPgtype(id),
			BookingID: pgconv.UUIDFromPgtype(bookingID),
			ListingID: pgconv.UUIDFromPgtype(lid),
			UserID:    pgconv.UUIDFromPgtype(userID),
			Rating:    rating,
			Comment:   comment,
			CreatedAt: pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate review rows", err)
	}
	return views, nil
}
