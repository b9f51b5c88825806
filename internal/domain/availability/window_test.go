//go:build unit

package availability_test

import (
	"testing"
	"time"

	"rinto/internal/domain/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, startMin, endMin int, available bool) availability.Window {
	t.Helper()
	w, err := availability.NewWindow(startMin, endMin, available)
	require.NoError(t, err)
	return w
}

func TestNewWindow(t *testing.T) {
	cases := []struct {
		name     string
		startMin int
		endMin   int
		wantErr  bool
	}{
		{"normal working hours", 480, 1080, false},
		{"full day", 0, 1440, false},
		{"end before start", 600, 480, true},
		{"zero length", 480, 480, true},
		{"negative start", -1, 480, true},
		{"start at end of day", 1440, 1500, true},
		{"end past end of day", 480, 1441, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := availability.NewWindow(tc.startMin, tc.endMin, true)
			if tc.wantErr {
				assert.ErrorIs(t, err, availability.ErrInvalidWindow)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDayPolicyResolve(t *testing.T) {
	policy := availability.DayPolicy{OpenStartMin: 480, OpenEndMin: 1080}

	t.Run("no declared windows falls back to the default open hours", func(t *testing.T) {
		got := policy.Resolve(nil)
		require.Len(t, got, 1)
		assert.Equal(t, 480, got[0].StartMin())
		assert.Equal(t, 1080, got[0].EndMin())
	})

	t.Run("empty means closed when configured", func(t *testing.T) {
		closed := availability.DayPolicy{OpenStartMin: 480, OpenEndMin: 1080, EmptyMeansClosed: true}
		assert.Empty(t, closed.Resolve(nil))
	})

	t.Run("declared windows override the default and drop blocked ones", func(t *testing.T) {
		declared := []availability.Window{
			mustWindow(t, 0, 360, true),
			mustWindow(t, 600, 720, false),
			mustWindow(t, 900, 1440, true),
		}
		got := policy.Resolve(declared)
		require.Len(t, got, 2)
		assert.Equal(t, 0, got[0].StartMin())
		assert.Equal(t, 900, got[1].StartMin())
	})

	t.Run("only blocked windows means fully closed", func(t *testing.T) {
		declared := []availability.Window{mustWindow(t, 0, 1440, false)}
		assert.Empty(t, policy.Resolve(declared))
	})
}

func TestSplitByDate(t *testing.T) {
	loc := time.UTC

	t.Run("single day", func(t *testing.T) {
		start := time.Date(2026, 6, 1, 10, 0, 0, 0, loc)
		segs := availability.SplitByDate(start, start.Add(2*time.Hour), loc)

		require.Len(t, segs, 1)
		assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, loc), segs[0].Date)
		assert.Equal(t, 600, segs[0].StartMin)
		assert.Equal(t, 720, segs[0].EndMin)
	})

	t.Run("crossing midnight", func(t *testing.T) {
		start := time.Date(2026, 6, 1, 23, 0, 0, 0, loc)
		segs := availability.SplitByDate(start, start.Add(3*time.Hour), loc)

		require.Len(t, segs, 2)
		assert.Equal(t, 1380, segs[0].StartMin)
		assert.Equal(t, 1440, segs[0].EndMin)
		assert.Equal(t, time.Date(2026, 6, 2, 0, 0, 0, 0, loc), segs[1].Date)
		assert.Equal(t, 0, segs[1].StartMin)
		assert.Equal(t, 120, segs[1].EndMin)
	})

	t.Run("spanning a full intermediate day", func(t *testing.T) {
		start := time.Date(2026, 6, 1, 12, 0, 0, 0, loc)
		end := time.Date(2026, 6, 3, 12, 0, 0, 0, loc)
		segs := availability.SplitByDate(start, end, loc)

		require.Len(t, segs, 3)
		assert.Equal(t, 0, segs[1].StartMin)
		assert.Equal(t, 1440, segs[1].EndMin)
	})

	t.Run("partial minutes round conservatively", func(t *testing.T) {
		start := time.Date(2026, 6, 1, 10, 0, 30, 0, loc)
		end := time.Date(2026, 6, 1, 11, 0, 30, 0, loc)
		segs := availability.SplitByDate(start, end, loc)

		require.Len(t, segs, 1)
		assert.Equal(t, 600, segs[0].StartMin, "start floors to the minute")
		assert.Equal(t, 661, segs[0].EndMin, "end rounds up to the minute")
	})

	t.Run("respects the listing timezone", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		// 03:00 UTC on June 2 is still June 1 evening in New York.
		start := time.Date(2026, 6, 2, 3, 0, 0, 0, time.UTC)
		segs := availability.SplitByDate(start, start.Add(time.Hour), ny)

		require.Len(t, segs, 1)
		assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, ny), segs[0].Date)
		assert.Equal(t, 23*60, segs[0].StartMin)
	})
}

func TestCovers(t *testing.T) {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	seg := func(startMin, endMin int) availability.DaySegment {
		return availability.DaySegment{Date: day, StartMin: startMin, EndMin: endMin}
	}

	t.Run("inside a single window", func(t *testing.T) {
		windows := []availability.Window{mustWindow(t, 480, 1080, true)}
		assert.True(t, availability.Covers(seg(600, 720), windows))
		assert.True(t, availability.Covers(seg(480, 1080), windows))
	})

	t.Run("sticking out of the window", func(t *testing.T) {
		windows := []availability.Window{mustWindow(t, 480, 1080, true)}
		assert.False(t, availability.Covers(seg(420, 600), windows))
		assert.False(t, availability.Covers(seg(1000, 1100), windows))
	})

	t.Run("adjacent windows merge", func(t *testing.T) {
		windows := []availability.Window{
			mustWindow(t, 480, 720, true),
			mustWindow(t, 720, 1080, true),
		}
		assert.True(t, availability.Covers(seg(600, 900), windows))
	})

	t.Run("gap between windows breaks coverage", func(t *testing.T) {
		windows := []availability.Window{
			mustWindow(t, 480, 700, true),
			mustWindow(t, 720, 1080, true),
		}
		assert.False(t, availability.Covers(seg(600, 900), windows))
	})

	t.Run("no windows covers nothing", func(t *testing.T) {
		assert.False(t, availability.Covers(seg(600, 720), nil))
	})

	t.Run("empty segment is trivially covered", func(t *testing.T) {
		assert.True(t, availability.Covers(seg(600, 600), nil))
	})
}
