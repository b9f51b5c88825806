package commands

import (
	"context"
	"errors"
	"time"

	"rinto/internal/domain/availability"
	"rinto/internal/domain/listing"
	"rinto/internal/infra"
	"rinto/internal/pkg/clock"
	"rinto/internal/pkg/errs"
	"rinto/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	Location          string `json:"location"`
	PricePerHourCents int64  `json:"price_per_hour_cents"`
}

type UpdateListingRequest struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	Location          string `json:"location"`
	PricePerHourCents int64  `json:"price_per_hour_cents"`
}

type AddWindowRequest struct {
	Date        time.Time `json:"date"`
	StartMin    int       `json:"start_min"`
	EndMin      int       `json:"end_min"`
	IsAvailable bool      `json:"is_available"`
}

type ListingCommands interface {
	CreateListing(ctx context.Context, ownerID uuid.UUID, req CreateListingRequest) (uuid.UUID, error)
	UpdateListing(ctx context.Context, listingID, ownerID uuid.UUID, req UpdateListingRequest) error
	DeactivateListing(ctx context.Context, listingID, ownerID uuid.UUID) error
	AddAvailabilityWindow(ctx context.Context, listingID, ownerID uuid.UUID, req AddWindowRequest) (uuid.UUID, error)
}

type listingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewListingCommands(uow shared.UnitOfWork, clk clock.Clock) ListingCommands {
	return &listingCommandsImpl{uow: uow, clock: clk}
}

func (uc *listingCommandsImpl) CreateListing(ctx context.Context, ownerID uuid.UUID, req CreateListingRequest) (uuid.UUID, error) {
	entity, err := listing.NewListing(ownerID, req.Title, req.Description, req.Location, req.PricePerHourCents, uc.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidListing)
	}

	var id uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var cerr error
		id, cerr = tx.Listings().Create(ctx, tx.DB(), entity)
		return cerr
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInternal)
	}
	return id, nil
}

func (uc *listingCommandsImpl) UpdateListing(ctx context.Context, listingID, ownerID uuid.UUID, req UpdateListingRequest) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := uc.loadOwnedListing(ctx, tx, listingID, ownerID)
		if err != nil {
			return err
		}
		if err := entity.UpdateDetails(req.Title, req.Description, req.Location, req.PricePerHourCents, uc.clock.Now()); err != nil {
			return errs.Mark(err, ErrInvalidListing)
		}
		return tx.Listings().Update(ctx, tx.DB(), entity)
	})
	return uc.mapListingErr(err)
}

func (uc *listingCommandsImpl) DeactivateListing(ctx context.Context, listingID, ownerID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := uc.loadOwnedListing(ctx, tx, listingID, ownerID)
		if err != nil {
			return err
		}
		if err := entity.Deactivate(uc.clock.Now()); err != nil {
			return errs.Mark(err, ErrInvalidListing)
		}
		return tx.Listings().Update(ctx, tx.DB(), entity)
	})
	return uc.mapListingErr(err)
}

func (uc *listingCommandsImpl) AddAvailabilityWindow(ctx context.Context, listingID, ownerID uuid.UUID, req AddWindowRequest) (uuid.UUID, error) {
	window, err := availability.NewWindow(req.StartMin, req.EndMin, req.IsAvailable)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidWindow)
	}

	var id uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := uc.loadOwnedListing(ctx, tx, listingID, ownerID)
		if err != nil {
			return err
		}
		var werr error
		id, werr = tx.Availability().CreateWindow(ctx, tx.DB(), entity.ID(), req.Date, window)
		return werr
	})
	if err != nil {
		return uuid.Nil, uc.mapListingErr(err)
	}
	return id, nil
}

func (uc *listingCommandsImpl) loadOwnedListing(ctx context.Context, tx shared.Tx, listingID, ownerID uuid.UUID) (*listing.Listing, error) {
	snap, err := tx.Reads().ListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	entity := listing.ReconstructListing(
		snap.ID, snap.OwnerID, snap.Title, snap.Description, snap.Location,
		snap.PricePerHourCents, snap.IsActive, snap.CreatedAt, snap.UpdatedAt,
	)
	if err := entity.RequireOwner(ownerID); err != nil {
		return nil, ErrNotAllowed
	}
	return entity, nil
}

func (uc *listingCommandsImpl) mapListingErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotAllowed), errors.Is(err, ErrInvalidListing), errors.Is(err, ErrInvalidWindow):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return ErrListingNotFound
	default:
		return errs.Mark(err, ErrInternal)
	}
}
