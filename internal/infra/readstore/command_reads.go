package readstore

import (
	"context"
	"time"

	"rinto/internal/domain/availability"
	"rinto/internal/domain/booking"
	"rinto/internal/infra/db"
	"rinto/internal/pkg/pgconv"
	"rinto/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// CommandReads serves the validation reads the command side needs. It is
// bound to whatever DBTX it is constructed with, so inside a transaction
// the reads see that transaction's snapshot.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

const listingSnapshotSQL = `
SELECT id, owner_id, title, description, location, price_per_hour_cents, is_active, created_at, updated_at
FROM listings
WHERE id = $1
`

func (r *CommandReads) ListingByID(ctx context.Context, id uuid.UUID) (*shared.ListingSnapshot, error) {
	var (
		lid, ownerID                 pgtype.UUID
		title, description, location string
		pricePerHourCents            int64
		isActive                     bool
		createdAt, updatedAt         pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, listingSnapshotSQL, pgconv.UUIDToPgtype(id)).
		Scan(&lid, &ownerID, &title, &description, &location, &pricePerHourCents, &isActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, wrapPgErr("failed to read listing snapshot", err)
	}
	return &shared.ListingSnapshot{
		ID:                pgconv.UUIDFromPgtype(lid),
		OwnerID:           pgconv.UUIDFromPgtype(ownerID),
		Title:             title,
		Description:       description,
		Location:          location,
		PricePerHourCents: pricePerHourCents,
		IsActive:          isActive,
		CreatedAt:         pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:         pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

const bookingSnapshotSQL = `
SELECT id, listing_id, renter_id, start_time, end_time, status, price_cents, payment_ref, created_at, updated_at
FROM bookings
WHERE id = $1
`

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row := r.db.QueryRow(ctx, bookingSnapshotSQL, pgconv.UUIDToPgtype(id))
	snap, err := scanBookingSnapshot(row)
	if err != nil {
		return nil, wrapPgErr("failed to read booking snapshot", err)
	}
	return snap, nil
}

const bookingSnapshotForUpdateSQL = bookingSnapshotSQL + ` FOR UPDATE`

func (r *CommandReads) BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row := r.db.QueryRow(ctx, bookingSnapshotForUpdateSQL, pgconv.UUIDToPgtype(id))
	snap, err := scanBookingSnapshot(row)
	if err != nil {
		return nil, wrapPgErr("failed to lock booking", err)
	}
	return snap, nil
}

const elapsedConfirmedSQL = `
SELECT id, listing_id, renter_id, start_time, end_time, status, price_cents, payment_ref, created_at, updated_at
FROM bookings
WHERE status = 'confirmed' AND end_time <= $1
ORDER BY end_time
FOR UPDATE SKIP LOCKED
`

// ElapsedConfirmedForUpdate locks the rows it returns. SKIP LOCKED keeps
// concurrent sweeps from blocking on or double-processing each other's
// bookings.
func (r *CommandReads) ElapsedConfirmedForUpdate(ctx context.Context, now time.Time) ([]shared.BookingSnapshot, error) {
	rows, err := r.db.Query(ctx, elapsedConfirmedSQL, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, wrapPgErr("failed to find elapsed bookings", err)
	}
	defer rows.Close()

	var snaps []shared.BookingSnapshot
	for rows.Next() {
		snap, err := scanBookingSnapshot(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan elapsed booking", err)
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate elapsed bookings", err)
	}
	return snaps, nil
}

const overlappingBookingsSQL = `
SELECT id, listing_id, renter_id, start_time, end_time, status, price_cents, payment_ref, created_at, updated_at
FROM bookings
WHERE listing_id = $1
  AND status IN ('pending', 'confirmed')
  AND start_time < $3
  AND end_time > $2
  AND id <> $4
ORDER BY start_time
`

func (r *CommandReads) OverlappingBookings(ctx context.Context, listingID uuid.UUID, period booking.Period, excludeID uuid.UUID) ([]shared.BookingSnapshot, error) {
	rows, err := r.db.Query(ctx, overlappingBookingsSQL,
		pgconv.UUIDToPgtype(listingID),
		pgconv.TimeToPgtype(period.Start()),
		pgconv.TimeToPgtype(period.End()),
		pgconv.UUIDToPgtype(excludeID),
	)
	if err != nil {
		return nil, wrapPgErr("failed to find overlapping bookings", err)
	}
	defer rows.Close()

	var snaps []shared.BookingSnapshot
	for rows.Next() {
		snap, err := scanBookingSnapshot(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan overlapping booking", err)
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate overlapping bookings", err)
	}
	return snaps, nil
}

const windowsForDateSQL = `
SELECT start_min, end_min, is_available
FROM availability_windows
WHERE listing_id = $1 AND date = $2
ORDER BY start_min
`

func (r *CommandReads) WindowsForDate(ctx context.Context, listingID uuid.UUID, date time.Time) ([]availability.Window, error) {
	rows, err := r.db.Query(ctx, windowsForDateSQL, pgconv.UUIDToPgtype(listingID), pgconv.DateToPgtype(date))
	if err != nil {
		return nil, wrapPgErr("failed to read availability windows", err)
	}
	defer rows.Close()

	var windows []availability.Window
	for rows.Next() {
		var startMin, endMin int
		var avail bool
		if err := rows.Scan(&startMin, &endMin, &avail); err != nil {
			return nil, wrapPgErr("failed to scan availability window", err)
		}
		w, err := availability.NewWindow(startMin, endMin, avail)
		if err != nil {
			return nil, wrapPgErr("stored availability window is invalid", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate availability windows", err)
	}
	return windows, nil
}

const reviewByBookingSQL = `
SELECT id, booking_id, listing_id, user_id, rating, comment
FROM reviews
WHERE booking_id = $1
`

func (r *CommandReads) ReviewByBookingID(ctx context.Context, bookingID uuid.UUID) (*shared.ReviewSnapshot, error) {
	var (
		id, bid, lid, userID pgtype.UUID
		rating               int
		comment              string
	)
	err := r.db.QueryRow(ctx, reviewByBookingSQL, pgconv.UUIDToPgtype(bookingID)).
		Scan(&id, &bid, &lid, &userID, &rating, &comment)
	if err != nil {
		return nil, wrapPgErr("failed to read review snapshot", err)
	}
	return &shared.ReviewSnapshot{
		ID:        pgconv.UUIDFromPgtype(id),
		BookingID: pgconv.UUIDFromPgtype(bid),
		ListingID: pgconv.UUIDFromPgtype(lid),
		UserID:    pgconv.UUIDFromPgtype(userID),
		Rating:    rating,
		Comment:   comment,
	}, nil
}

const idempotencyByKeySQL = `
SELECT key, user_id, status, request_hash, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`

func (r *CommandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		k, uid          pgtype.UUID
		status          string
		requestHash     string
		resultBookingID pgtype.UUID
		expiresAt       pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, idempotencyByKeySQL, pgconv.UUIDToPgtype(key), pgconv.UUIDToPgtype(userID)).
		Scan(&k, &uid, &status, &requestHash, &resultBookingID, &expiresAt)
	if err != nil {
		return nil, wrapPgErr("failed to read idempotency record", err)
	}

	record := &shared.IdempotencyRecord{
		Key:         pgconv.UUIDFromPgtype(k),
		UserID:      pgconv.UUIDFromPgtype(uid),
		Status:      status,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeFromPgtype(expiresAt),
	}
	if resultBookingID.Valid {
		id := pgconv.UUIDFromPgtype(resultBookingID)
		record.ResultBookingID = &id
	}
	return record, nil
}

func scanBookingSnapshot(row pgx.Row) (*shared.BookingSnapshot, error) {
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
	return &shared.BookingSnapshot{
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
