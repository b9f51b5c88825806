package queries

import (
	"context"
	"time"

	"rinto/internal/infra"
	"rinto/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrListingNotFound = errs.New("listing not found")

type ListingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	ListActive(ctx context.Context, limit, offset int) ([]*ListingView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ListingView, error)
	WindowsForDate(ctx context.Context, listingID uuid.UUID, date time.Time) ([]*AvailabilityWindowView, error)
}

type ListingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	FindActive(ctx context.Context, limit, offset int32) ([]*ListingView, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*ListingView, error)
	FindWindows(ctx context.Context, listingID uuid.UUID, date time.Time) ([]*AvailabilityWindowView, error)
}

type listingQueriesImpl struct {
	store ListingReadStore
}

func NewListingQueries(store ListingReadStore) ListingQueries {
	return &listingQueriesImpl{store: store}
}

func (q *listingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ListingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, errs.Wrap(err, "failed to find listing")
	}
	return view, nil
}

func (q *listingQueriesImpl) ListActive(ctx context.Context, limit, offset int) ([]*ListingView, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	views, err := q.store.FindActive(ctx, int32(limit), int32(offset))
	if err != nil {
		return nil, errs.Wrap(err, "failed to list active listings")
	}
	return views, nil
}

func (q *listingQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ListingView, error) {
	views, err := q.store.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list owner listings")
	}
	return views, nil
}

func (q *listingQueriesImpl) WindowsForDate(ctx context.Context, listingID uuid.UUID, date time.Time) ([]*AvailabilityWindowView, error) {
	views, err := q.store.FindWindows(ctx, listingID, date)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list availability windows")
	}
	return views, nil
}
