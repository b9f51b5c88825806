//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rinto/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHalfHourPriceCalculator(t *testing.T) {
	calc := booking.NewHalfHourPriceCalculator()
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	period := func(d time.Duration) booking.Period {
		p, err := booking.NewPeriod(base, base.Add(d))
		require.NoError(t, err)
		return p
	}

	t.Run("billable duration", func(t *testing.T) {
		cases := []struct {
			name      string
			rateCents int64
			duration  time.Duration
			expected  int64
		}{
			{"exactly one hour", 2000, time.Hour, 2000},
			{"ninety minutes bills three half hours", 2000, 90 * time.Minute, 3000},
			{"fifteen minutes floors to one hour", 2000, 15 * time.Minute, 2000},
			{"sixty one minutes rounds up to ninety", 2000, 61 * time.Minute, 3000},
			{"one hour forty bills two hours", 2000, 100 * time.Minute, 4000},
			{"full day", 2000, 24 * time.Hour, 48000},
			{"one second over an hour rounds up", 2000, time.Hour + time.Second, 3000},
			{"zero rate", 0, 3 * time.Hour, 0},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := calc.CalculatePriceCents(tc.rateCents, period(tc.duration))
				require.NoError(t, err)
				assert.Equal(t, tc.expected, got)
			})
		}
	})

	t.Run("odd rate rounds half up on the final halving", func(t *testing.T) {
		// 3 half hours at 1001/h = 3003/2 = 1501.5, rounds up to 1502.
		got, err := calc.CalculatePriceCents(1001, period(90*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(1502), got)
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		_, err := calc.CalculatePriceCents(-1, period(time.Hour))
		assert.ErrorIs(t, err, booking.ErrNegativePrice)
	})
}
