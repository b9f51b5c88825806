package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsBlocking reports whether a booking in this status occupies the
// listing's calendar for overlap purposes.
func (s Status) IsBlocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrUnknownStatus
	}
}

type Event string

const (
	EventPaymentSucceeded Event = "payment_succeeded"
	EventPaymentFailed    Event = "payment_failed"
	EventCancel           Event = "cancel"
	EventComplete         Event = "complete"
)

// Transition is the single source of truth for lifecycle moves.
// Completing an already-completed booking is a no-op rather than an
// error so that the elapsed-booking sweep stays idempotent.
func Transition(current Status, ev Event) (Status, error) {
	switch current {
	case StatusPending:
		switch ev {
		case EventPaymentSucceeded:
			return StatusConfirmed, nil
		case EventPaymentFailed, EventCancel:
			return StatusCancelled, nil
		}
	case StatusConfirmed:
		if ev == EventComplete {
			return StatusCompleted, nil
		}
	case StatusCompleted:
		if ev == EventComplete {
			return StatusCompleted, nil
		}
	}
	return current, ErrInvalidTransition
}
