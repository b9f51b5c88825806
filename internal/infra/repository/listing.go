package repository

import (
	"context"

	"rinto/internal/domain/listing"
	"rinto/internal/infra"
	"rinto/internal/infra/db"
	"rinto/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ListingRepository struct{}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{}
}

const createListingSQL = `
INSERT INTO listings (id, owner_id, title, description, location, price_per_hour_cents, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id
`

func (r *ListingRepository) Create(ctx context.Context, dbtx db.DBTX, l *listing.Listing) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createListingSQL,
		pgconv.UUIDToPgtype(l.ID()),
		pgconv.UUIDToPgtype(l.OwnerID()),
		l.Title(),
		l.Description(),
		l.Location(),
		l.PricePerHourCents(),
		l.IsActive(),
		pgconv.TimeToPgtype(l.CreatedAt()),
		pgconv.TimeToPgtype(l.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create listing", err)
	}
	return id, nil
}

const updateListingSQL = `
UPDATE listings
SET title = $2, description = $3, location = $4, price_per_hour_cents = $5, is_active = $6, updated_at = $7
WHERE id = $1
`

func (r *ListingRepository) Update(ctx context.Context, dbtx db.DBTX, l *listing.Listing) error {
	tag, err := dbtx.Exec(ctx, updateListingSQL,
		pgconv.UUIDToPgtype(l.ID()),
		l.Title(),
		l.Description(),
		l.Location(),
		l.PricePerHourCents(),
		l.IsActive(),
		pgconv.TimeToPgtype(l.UpdatedAt()),
	)
	if err != nil {
		return wrapPgErr("failed to update listing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "listing not found for update", errNoRowsAffected)
	}
	return nil
}
