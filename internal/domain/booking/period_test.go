//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rinto/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("start must be before end", func(t *testing.T) {
		_, err := booking.NewPeriod(base, base)
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)

		_, err = booking.NewPeriod(base.Add(time.Hour), base)
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("half-open overlap", func(t *testing.T) {
		mk := func(startOffset, endOffset time.Duration) booking.Period {
			p, err := booking.NewPeriod(base.Add(startOffset), base.Add(endOffset))
			require.NoError(t, err)
			return p
		}

		cases := []struct {
			name     string
			a, b     booking.Period
			overlaps bool
		}{
			{"identical", mk(0, time.Hour), mk(0, time.Hour), true},
			{"partial", mk(0, 2*time.Hour), mk(time.Hour, 3*time.Hour), true},
			{"contained", mk(0, 3*time.Hour), mk(time.Hour, 2*time.Hour), true},
			{"back to back", mk(0, time.Hour), mk(time.Hour, 2*time.Hour), false},
			{"disjoint", mk(0, time.Hour), mk(2*time.Hour, 3*time.Hour), false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b))
				assert.Equal(t, tc.overlaps, tc.b.Overlaps(tc.a))
			})
		}
	})

	t.Run("past start validation", func(t *testing.T) {
		p, err := booking.NewPeriod(base, base.Add(time.Hour))
		require.NoError(t, err)

		assert.NoError(t, p.ValidateNotPast(base))
		assert.NoError(t, p.ValidateNotPast(base.Add(-time.Minute)))
		assert.ErrorIs(t, p.ValidateNotPast(base.Add(time.Minute)), booking.ErrPastStartTime)
	})
}
