package availability

import (
	"errors"
	"sort"
	"time"
)

const minutesPerDay = 1440

var (
	ErrInvalidWindow = errors.New("invalid availability window")
)

// Window is an owner-declared interval on one calendar date, expressed
// in minutes from midnight. endMin may be 1440 (end of day).
type Window struct {
	startMin  int
	endMin    int
	available bool
}

func NewWindow(startMin, endMin int, available bool) (Window, error) {
	if startMin < 0 || startMin >= minutesPerDay {
		return Window{}, ErrInvalidWindow
	}
	if endMin <= startMin || endMin > minutesPerDay {
		return Window{}, ErrInvalidWindow
	}
	return Window{startMin: startMin, endMin: endMin, available: available}, nil
}

func (w Window) StartMin() int   { return w.startMin }
func (w Window) EndMin() int     { return w.endMin }
func (w Window) Available() bool { return w.available }

// DayPolicy decides what a date with no declared windows means.
type DayPolicy struct {
	OpenStartMin     int
	OpenEndMin       int
	EmptyMeansClosed bool
}

// Resolve returns the effective available windows for one date. With no
// declared windows the policy default applies (or nothing, when the
// operator configured absence to mean closed).
func (p DayPolicy) Resolve(declared []Window) []Window {
	if len(declared) == 0 {
		if p.EmptyMeansClosed {
			return nil
		}
		w, err := NewWindow(p.OpenStartMin, p.OpenEndMin, true)
		if err != nil {
			return nil
		}
		return []Window{w}
	}

	open := make([]Window, 0, len(declared))
	for _, w := range declared {
		if w.available {
			open = append(open, w)
		}
	}
	return open
}

// DaySegment is the portion of a requested interval that falls on a
// single calendar date.
type DaySegment struct {
	Date     time.Time
	StartMin int
	EndMin   int
}

// SplitByDate cuts [start, end) into per-date segments in loc. Minute
// boundaries are conservative: segment starts floor to the minute and
// segment ends round up, so partial minutes still require coverage.
func SplitByDate(start, end time.Time, loc *time.Location) []DaySegment {
	start = start.In(loc)
	end = end.In(loc)

	var segs []DaySegment
	cur := start
	for cur.Before(end) {
		day := time.Date(cur.Year(), cur.Month(), cur.Day(), 0, 0, 0, 0, loc)
		next := day.AddDate(0, 0, 1)

		segEnd := end
		if next.Before(end) {
			segEnd = next
		}

		startSec := int(cur.Sub(day).Seconds())
		endSec := int(segEnd.Sub(day).Seconds())
		segs = append(segs, DaySegment{
			Date:     day,
			StartMin: startSec / 60,
			EndMin:   (endSec + 59) / 60,
		})

		cur = next
	}
	return segs
}

// Covers reports whether the segment is fully inside the union of the
// given available windows.
func Covers(seg DaySegment, windows []Window) bool {
	if seg.StartMin >= seg.EndMin {
		return true
	}

	merged := mergeWindows(windows)
	for _, w := range merged {
		if w.startMin <= seg.StartMin && seg.EndMin <= w.endMin {
			return true
		}
	}
	return false
}

func mergeWindows(windows []Window) []Window {
	if len(windows) == 0 {
		return nil
	}

	sorted := make([]Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].startMin < sorted[j].startMin
	})

	merged := []Window{sorted[0]}
	for _, w := range sorted[1:] {
		last := &merged[len(merged)-1]
		if w.startMin <= last.endMin {
			if w.endMin > last.endMin {
				last.endMin = w.endMin
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}
