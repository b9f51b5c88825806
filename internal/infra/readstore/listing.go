package readstore

import (
	"context"
	"time"

	"rinto/internal/infra/db"
	"rinto/internal/pkg/pgconv"
	"rinto/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ListingReadStore struct {
	db db.DBTX
}

func NewListingReadStore(dbtx db.DBTX) *ListingReadStore {
	return &ListingReadStore{db: dbtx}
}

const listingViewColumns = `
id, owner_id, title, description, location, price_per_hour_cents, is_active, rating, review_count, created_at, updated_at
`

const findListingByIDSQL = `
SELECT ` + listingViewColumns + `
FROM listings
WHERE id = $1
`

func (r *ListingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ListingView, error) {
	row := r.db.QueryRow(ctx, findListingByIDSQL, pgconv.UUIDToPgtype(id))
	view, err := scanListingView(row)
	if err != nil {
		return nil, wrapPgErr("failed to find listing by id", err)
	}
	return view, nil
}

const findActiveListingsSQL = `
SELECT ` + listingViewColumns + `
FROM listings
WHERE is_active
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

func (r *ListingReadStore) FindActive(ctx context.Context, limit, offset int32) ([]*queries.ListingView, error) {
	rows, err := r.db.Query(ctx, findActiveListingsSQL, limit, offset)
	if err != nil {
		return nil, wrapPgErr("failed to list active listings", err)
	}
	defer rows.Close()
	return collectListingViews(rows)
}

const findListingsByOwnerSQL = `
SELECT ` + listingViewColumns + `
FROM listings
WHERE owner_id = $1
ORDER BY created_at DESC
`

func (r *ListingReadStore) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*queries.ListingView, error) {
	rows, err := r.db.Query(ctx, findListingsByOwnerSQL, pgconv.UUIDToPgtype(ownerID))
	if err != nil {
		return nil, wrapPgErr("failed to list owner listings", err)
	}
	defer rows.Close()
	return collectListingViews(rows)
}

const findWindowsSQL = `
SELECT id, listing_id, date, start_min, end_min, is_available
FROM availability_windows
WHERE listing_id = $1 AND date = $2
ORDER BY start_min
`

func (r *ListingReadStore) FindWindows(ctx context.Context, listingID uuid.UUID, date time.Time) ([]*queries.AvailabilityWindowView, error) {
	rows, err := r.db.Query(ctx, findWindowsSQL, pgconv.UUIDToPgtype(listingID), pgconv.DateToPgtype(date))
	if err != nil {
		return nil, wrapPgErr("failed to list availability windows", err)
	}
	defer rows.Close()

	var views []*queries.AvailabilityWindowView
	for rows.Next() {
		var (
			id, lid  pgtype.UUID
			d        pgtype.Date
			startMin int
			endMin   int
			avail    bool
		)
		if err := rows.Scan(&id, &lid, &d, &startMin, &endMin, &avail); err != nil {
			return nil, wrapPgErr("failed to scan availability window row", err)
		}
		views = append(views, &queries.AvailabilityWindowView{
			ID:          pgconv.UUIDFromPgtype(id),
			ListingID:   pgconv.UUIDFromPgtype(lid),
			Date:        pgconv.DateFromPgtype(d),
			StartMin:    startMin,
			EndMin:      endMin,
			IsAvailable: avail,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate availability window rows", err)
	}
	return views, nil
}

func scanListingView(row pgx.Row) (*queries.ListingView, error) {
	var (
		id, ownerID                  pgtype.UUID
		title, description, location string
		pricePerHourCents            int64
		isActive                     bool
		rating                       pgtype.Float8
		reviewCount                  int32
		createdAt, updatedAt         pgtype.Timestamptz
	)
	if err := row.Scan(&id, &ownerID, &title, &description, &location, &pricePerHourCents, &isActive, &rating, &reviewCount, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	view := &queries.ListingView{
		ID:                pgconv.UUIDFromPgtype(id),
		OwnerID:           pgconv.UUIDFromPgtype(ownerID),
		Title:             title,
		Description:       description,
		Location:          location,
		PricePerHourCents: pricePerHourCents,
		IsActive:          isActive,
		ReviewCount:       reviewCount,
		CreatedAt:         pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:         pgconv.TimeFromPgtype(updatedAt),
	}
	if rating.Valid {
		view.Rating = &rating.Float64
	}
	return view, nil
}

func collectListingViews(rows pgx.Rows) ([]*queries.ListingView, error) {
	var views []*queries.ListingView
	for rows.Next() {
		view, err := scanListingView(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan listing row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate listing rows", err)
	}
	return views, nil
}
