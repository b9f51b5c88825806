//go:build unit

package queries_test

import (
	"context"
	"testing"

	"rinto/internal/infra"
	"rinto/internal/usecase/queries"
	"rinto/tests/common/builder"
	queriesmock "rinto/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBookingQueriesGetByID(t *testing.T) {
	ctx := context.Background()
	renterID := uuid.New()
	ownerID := uuid.New()
	strangerID := uuid.New()

	newStore := func(t *testing.T) (*queriesmock.MockBookingReadStore, queries.BookingQueries) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		return store, queries.NewBookingQueries(store)
	}

	view := builder.NewBookingBuilder().WithRenterID(renterID).BuildView()

	t.Run("renter sees their own booking", func(t *testing.T) {
		store, q := newStore(t)
		store.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		got, err := q.GetByID(ctx, renterID, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})

	t.Run("listing owner sees the booking", func(t *testing.T) {
		store, q := newStore(t)
		store.EXPECT().FindByID(ctx, view.ID).Return(view, nil)
		store.EXPECT().ListingOwnerID(ctx, view.ListingID).Return(ownerID, nil)

		got, err := q.GetByID(ctx, ownerID, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		store, q := newStore(t)
		store.EXPECT().FindByID(ctx, view.ID).Return(view, nil)
		store.EXPECT().ListingOwnerID(ctx, view.ListingID).Return(ownerID, nil)

		_, err := q.GetByID(ctx, strangerID, view.ID)
		assert.ErrorIs(t, err, queries.ErrViewNotAllowed)
	})

	t.Run("missing booking maps to not found", func(t *testing.T) {
		store, q := newStore(t)
		store.EXPECT().FindByID(ctx, view.ID).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "booking not found", nil))

		_, err := q.GetByID(ctx, renterID, view.ID)
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})

	t.Run("system lookup skips the actor check", func(t *testing.T) {
		store, q := newStore(t)
		store.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		got, err := q.GetByIDSystem(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})
}

func TestBookingQueriesListByListing(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	listingID := uuid.New()

	views := []*queries.BookingView{
		builder.NewBookingBuilder().WithListingID(listingID).BuildView(),
		builder.NewBookingBuilder().WithListingID(listingID).BuildView(),
	}

	t.Run("owner lists the listing's bookings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		q := queries.NewBookingQueries(store)

		store.EXPECT().ListingOwnerID(ctx, listingID).Return(ownerID, nil)
		store.EXPECT().FindByListingID(ctx, listingID).Return(views, nil)

		got, err := q.ListByListing(ctx, ownerID, listingID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("non-owner is rejected before any booking is read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		q := queries.NewBookingQueries(store)

		store.EXPECT().ListingOwnerID(ctx, listingID).Return(ownerID, nil)

		_, err := q.ListByListing(ctx, uuid.New(), listingID)
		assert.ErrorIs(t, err, queries.ErrViewNotAllowed)
	})
}
