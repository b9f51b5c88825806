package repository

import (
	"context"
	"time"

	"rinto/internal/domain/availability"
	"rinto/internal/infra/db"
	"rinto/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type AvailabilityRepository struct{}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{}
}

const createWindowSQL = `
INSERT INTO availability_windows (id, listing_id, date, start_min, end_min, is_available, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
RETURNING id
`

func (r *AvailabilityRepository) CreateWindow(ctx context.Context, dbtx db.DBTX, listingID uuid.UUID, date time.Time, w availability.Window) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createWindowSQL,
		pgconv.UUIDToPgtype(uuid.New()),
		pgconv.UUIDToPgtype(listingID),
		pgconv.DateToPgtype(date),
		w.StartMin(),
		w.EndMin(),
		w.Available(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create availability window", err)
	}
	return id, nil
}
