package readstore

import (
	"context"

	"rinto/internal/infra/db"
	"rinto/internal/pkg/pgconv"
	"rinto/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewColumns = `
id, listing_id, renter_id, start_time, end_time, status, price_cents, payment_ref, created_at, updated_at
`

const findBookingByIDSQL = `
SELECT ` + bookingViewColumns + `
FROM bookings
WHERE id = $1
`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, findBookingByIDSQL, pgconv.UUIDToPgtype(id))
	view, err := scanBookingView(row)
	if err != nil {
		return nil, wrapPgErr("failed to find booking by id", err)
	}
	return view, nil
}

const findBookingsByRenterSQL = `
SELECT ` + bookingViewColumns + `
FROM bookings
WHERE renter_id = $1
ORDER BY start_time DESC
`

func (r *BookingReadStore) FindByRenterID(ctx context.Context, renterID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, findBookingsByRenterSQL, pgconv.UUIDToPgtype(renterID))
	if err != nil {
		return nil, wrapPgErr("failed to list bookings by renter", err)
	}
	defer rows.Close()
	return collectBookingViews(rows)
}

const findBookingsByListingSQL = `
SELECT ` + bookingViewColumns + `
FROM bookings
WHERE listing_id = $1
ORDER BY start_time DESC
`

func (r *BookingReadStore) FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, findBookingsByListingSQL, pgconv.UUIDToPgtype(listingID))
	if err != nil {
		return nil, wrapPgErr("failed to list bookings by listing", err)
	}
	defer rows.Close()
	return collectBookingViews(rows)
}

const listingOwnerIDSQL = `
SELECT owner_id FROM listings WHERE id = $1
`

func (r *BookingReadStore) ListingOwnerID(ctx context.Context, listingID uuid.UUID) (uuid.UUID, error) {
	var owner pgtype.UUID
	if err := r.db.QueryRow(ctx, listingOwnerIDSQL, pgconv.UUIDToPgtype(listingID)).Scan(&owner); err != nil {
		return uuid.Nil, wrapPgErr("failed to resolve listing owner", err)
	}
	return pgconv.UUIDFromPgtype(owner), nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		id, listingID, renterID pgtype.UUID
		startTime, endTime      pgtype.Timestamptz
		status                  string
		priceCents              int64
		paymentRef              pgtype.Text
		createdAt, updatedAt    pgtype.Timestamptz
	)
	if err := row.Scan(&id, &listingID, &renterID, &startTime, &endTime, &status, &priceCents, &paymentRef, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return &queries.BookingView{
		ID:         pgconv.UUIDFromPgtype(id),
		ListingID:  pgconv.UUIDFromPgtype(listingID),
		RenterID:   pgconv.UUIDFromPgtype(renterID),
		StartTime:  pgconv.TimeFromPgtype(startTime),
		EndTime:    pgconv.TimeFromPgtype(endTime),
		Status:     status,
		PriceCents: priceCents,
		PaymentRef: pgconv.StringPtrFromPgtype(paymentRef),
		CreatedAt:  pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:  pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

func collectBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate booking rows", err)
	}
	return views, nil
}
