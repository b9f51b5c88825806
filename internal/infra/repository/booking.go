package repository

import (
	"context"

	"rinto/internal/domain/booking"
	"rinto/internal/infra"
	"rinto/internal/infra/db"
	"rinto/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (id, listing_id, renter_id, start_time, end_time, status, price_cents, payment_ref, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id
`

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createBookingSQL,
		pgconv.UUIDToPgtype(b.ID()),
		pgconv.UUIDToPgtype(b.ListingID()),
		pgconv.UUIDToPgtype(b.RenterID()),
		pgconv.TimeToPgtype(b.Period().Start()),
		pgconv.TimeToPgtype(b.Period().End()),
		b.Status().String(),
		b.PriceCents(),
		pgconv.StringPtrToPgtype(b.PaymentRef()),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create booking", err)
	}
	return id, nil
}

const updateBookingStateSQL = `
UPDATE bookings
SET status = $2, payment_ref = $3, updated_at = $4
WHERE id = $1
`

func (r *BookingRepository) UpdateState(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	tag, err := dbtx.Exec(ctx, updateBookingStateSQL,
		pgconv.UUIDToPgtype(b.ID()),
		b.Status().String(),
		pgconv.StringPtrToPgtype(b.PaymentRef()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return wrapPgErr("failed to update booking state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "booking not found for state update", errNoRowsAffected)
	}
	return nil
}

