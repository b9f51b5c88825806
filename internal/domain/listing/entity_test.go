//go:build unit

package listing_test

import (
	"testing"
	"time"

	"rinto/internal/domain/listing"
	"rinto/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListing(t *testing.T) {
	t.Run("creates an active listing", func(t *testing.T) {
		l, err := builder.NewListingBuilder().BuildDomain()
		require.NoError(t, err)

		assert.True(t, l.IsActive())
		assert.Equal(t, "Bayliner Element E16", l.Title())
		assert.Equal(t, int64(9500), l.PricePerHourCents())
	})

	t.Run("title is trimmed and required", func(t *testing.T) {
		_, err := builder.NewListingBuilder().WithTitle("   ").BuildDomain()
		assert.ErrorIs(t, err, listing.ErrEmptyTitle)

		l, err := builder.NewListingBuilder().WithTitle("  Pontoon  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Pontoon", l.Title())
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		_, err := builder.NewListingBuilder().WithRate(-1).BuildDomain()
		assert.ErrorIs(t, err, listing.ErrNegativeRate)
	})
}

func TestListingOwnership(t *testing.T) {
	ownerID := uuid.New()
	l, err := builder.NewListingBuilder().WithOwner(ownerID).BuildDomain()
	require.NoError(t, err)

	assert.NoError(t, l.RequireOwner(ownerID))
	assert.ErrorIs(t, l.RequireOwner(uuid.New()), listing.ErrNotOwner)
}

func TestListingUpdateDetails(t *testing.T) {
	now := time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC)
	l, err := builder.NewListingBuilder().BuildDomain()
	require.NoError(t, err)

	t.Run("updates all fields", func(t *testing.T) {
		require.NoError(t, l.UpdateDetails("Sea Ray 210", "Refitted 2025", "Elliott Bay Marina", 12000, now))
		assert.Equal(t, "Sea Ray 210", l.Title())
		assert.Equal(t, int64(12000), l.PricePerHourCents())
		assert.Equal(t, now, l.UpdatedAt())
	})

	t.Run("validation matches creation", func(t *testing.T) {
		assert.ErrorIs(t, l.UpdateDetails("", "d", "loc", 100, now), listing.ErrEmptyTitle)
		assert.ErrorIs(t, l.UpdateDetails("t", "d", "loc", -100, now), listing.ErrNegativeRate)
	})
}

func TestListingDeactivate(t *testing.T) {
	now := time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC)
	l, err := builder.NewListingBuilder().BuildDomain()
	require.NoError(t, err)

	require.NoError(t, l.Deactivate(now))
	assert.False(t, l.IsActive())

	assert.ErrorIs(t, l.Deactivate(now), listing.ErrAlreadyInactive)
}
