//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rinto/internal/domain/booking"
	"rinto/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	t.Run("admits a pending booking with a fixed price", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithRate(2000).WithDuration(90 * time.Minute)
		got, err := b.BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, booking.StatusPending, got.Status())
		assert.Equal(t, int64(3000), got.PriceCents())
		assert.Nil(t, got.PaymentRef())
		assert.NotEqual(t, got.ID().String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("rejects a start in the past", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		_, err := b.WithStart(b.Now().Add(-time.Hour)).WithDuration(2 * time.Hour).BuildDomain()
		assert.ErrorIs(t, err, booking.ErrPastStartTime)
	})

	t.Run("rejects a negative rate", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().WithRate(-100).BuildDomain()
		assert.ErrorIs(t, err, booking.ErrNegativePrice)
	})
}

func TestBookingLifecycle(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	pending := func(t *testing.T) *booking.Booking {
		t.Helper()
		b, err := builder.NewBookingBuilder().WithNow(now).BuildDomain()
		require.NoError(t, err)
		return b
	}
	confirmed := func(t *testing.T) *booking.Booking {
		t.Helper()
		b := pending(t)
		require.NoError(t, b.Confirm("pi_123", now))
		return b
	}

	t.Run("confirm requires a payment reference", func(t *testing.T) {
		b := pending(t)
		assert.ErrorIs(t, b.Confirm("", now), booking.ErrMissingPaymentRef)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("confirm records the payment reference", func(t *testing.T) {
		b := pending(t)
		require.NoError(t, b.Confirm("pi_123", now.Add(time.Minute)))

		assert.Equal(t, booking.StatusConfirmed, b.Status())
		require.NotNil(t, b.PaymentRef())
		assert.Equal(t, "pi_123", *b.PaymentRef())
		assert.Equal(t, now.Add(time.Minute), b.UpdatedAt())
	})

	t.Run("confirm twice fails", func(t *testing.T) {
		b := confirmed(t)
		assert.ErrorIs(t, b.Confirm("pi_456", now), booking.ErrInvalidTransition)
	})

	t.Run("cancel a pending booking", func(t *testing.T) {
		b := pending(t)
		require.NoError(t, b.Cancel(now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("cancel after confirmation fails", func(t *testing.T) {
		b := confirmed(t)
		assert.ErrorIs(t, b.Cancel(now), booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("payment failure cancels a pending booking", func(t *testing.T) {
		b := pending(t)
		require.NoError(t, b.CancelByPaymentFailure(now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("complete before the period ends fails", func(t *testing.T) {
		b := confirmed(t)
		err := b.Complete(b.Period().End().Add(-time.Second))
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("complete an elapsed confirmed booking", func(t *testing.T) {
		b := confirmed(t)
		require.NoError(t, b.Complete(b.Period().End()))
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("complete is idempotent", func(t *testing.T) {
		b := confirmed(t)
		after := b.Period().End().Add(time.Hour)
		require.NoError(t, b.Complete(after))
		updatedAt := b.UpdatedAt()

		require.NoError(t, b.Complete(after.Add(time.Hour)))
		assert.Equal(t, booking.StatusCompleted, b.Status())
		assert.Equal(t, updatedAt, b.UpdatedAt(), "repeat completion should not touch the row")
	})

	t.Run("complete a pending booking fails", func(t *testing.T) {
		b := pending(t)
		err := b.Complete(b.Period().End().Add(time.Hour))
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})

	t.Run("attach payment ref only while pending", func(t *testing.T) {
		b := pending(t)
		require.NoError(t, b.AttachPaymentRef("pi_789", now))
		require.NotNil(t, b.PaymentRef())
		assert.Equal(t, "pi_789", *b.PaymentRef())

		c := confirmed(t)
		assert.ErrorIs(t, c.AttachPaymentRef("pi_other", now), booking.ErrInvalidTransition)
	})
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "completed", "cancelled"} {
		got, err := booking.ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, got.String())
	}

	_, err := booking.ParseStatus("archived")
	assert.ErrorIs(t, err, booking.ErrUnknownStatus)
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, booking.StatusPending.IsBlocking())
	assert.True(t, booking.StatusConfirmed.IsBlocking())
	assert.False(t, booking.StatusCancelled.IsBlocking())
	assert.False(t, booking.StatusCompleted.IsBlocking())

	assert.True(t, booking.StatusCancelled.IsTerminal())
	assert.True(t, booking.StatusCompleted.IsTerminal())
	assert.False(t, booking.StatusPending.IsTerminal())
}
