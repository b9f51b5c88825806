package queries

import (
	"context"

	"rinto/internal/infra"
	"rinto/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrViewNotAllowed  = errs.New("caller may not view this booking")
)

type BookingQueries interface {
	// GetByID is visible to the renter and the listing owner only.
	GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses the actor check for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID) ([]*BookingView, error)
	// ListByListing is restricted to the listing owner.
	ListByListing(ctx context.Context, actor uuid.UUID, listingID uuid.UUID) ([]*BookingView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByRenterID(ctx context.Context, renterID uuid.UUID) ([]*BookingView, error)
	FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*BookingView, error)
	ListingOwnerID(ctx context.Context, listingID uuid.UUID) (uuid.UUID, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}

	if view.RenterID == actor {
		return view, nil
	}
	ownerID, err := q.store.ListingOwnerID(ctx, view.ListingID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to resolve listing owner")
	}
	if ownerID != actor {
		return nil, ErrViewNotAllowed
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]*BookingView, error) {
	views, err := q.store.FindByRenterID(ctx, renterID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list renter bookings")
	}
	return views, nil
}

func (q *bookingQueriesImpl) ListByListing(ctx context.Context, actor uuid.UUID, listingID uuid.UUID) ([]*BookingView, error) {
	ownerID, err := q.store.ListingOwnerID(ctx, listingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to resolve listing owner")
	}
	if ownerID != actor {
		return nil, ErrViewNotAllowed
	}

	views, err := q.store.FindByListingID(ctx, listingID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list listing bookings")
	}
	return views, nil
}
