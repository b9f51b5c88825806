package queries

import (
	"context"

	"rinto/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReviewQueries interface {
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]*ReviewView, error)
}

type ReviewReadStore interface {
	FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*ReviewView, error)
}

type reviewQueriesImpl struct {
	store ReviewReadStore
}

func NewReviewQueries(store ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{store: store}
}

func (q *reviewQueriesImpl) ListByListing(ctx context.Context, listingID uuid.UUID) ([]*ReviewView, error) {
	views, err := q.store.FindByListingID(ctx, listingID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list reviews")
	}
	return views, nil
}
