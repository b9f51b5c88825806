package booking

import (
	"fmt"
	"time"
)

// Period is a half-open rental interval [start, end).
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if !start.Before(end) {
		return Period{}, ErrInvalidInterval
	}
	return Period{start: start, end: end}, nil
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

func (p Period) Duration() time.Duration {
	return p.end.Sub(p.start)
}

// Overlaps uses half-open semantics: back-to-back periods do not overlap.
func (p Period) Overlaps(other Period) bool {
	return p.start.Before(other.end) && other.start.Before(p.end)
}

func (p Period) ValidateNotPast(now time.Time) error {
	if p.start.Before(now) {
		return ErrPastStartTime
	}
	return nil
}

func (p Period) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", p.start.Format(time.RFC3339), p.end.Format(time.RFC3339))
}
