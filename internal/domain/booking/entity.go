package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInterval   = errors.New("invalid booking interval")
	ErrPastStartTime     = errors.New("booking start time is in the past")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrUnknownStatus     = errors.New("unknown booking status")
	ErrMissingPaymentRef = errors.New("payment reference required to confirm")
)

type Booking struct {
	id         uuid.UUID
	listingID  uuid.UUID
	renterID   uuid.UUID
	period     Period
	status     Status
	priceCents int64
	paymentRef *string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking admits a new pending booking. The price is fixed here and
// never recomputed implicitly afterwards.
func NewBooking(
	listingID, renterID uuid.UUID,
	period Period,
	pricePerHourCents int64,
	calc PriceCalculator,
	now time.Time,
) (*Booking, error) {
	if err := period.ValidateNotPast(now); err != nil {
		return nil, err
	}

	price, err := calc.CalculatePriceCents(pricePerHourCents, period)
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:         uuid.New(),
		listingID:  listingID,
		renterID:   renterID,
		period:     period,
		status:     StatusPending,
		priceCents: price,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructBooking(
	id, listingID, renterID uuid.UUID,
	period Period,
	status Status,
	priceCents int64,
	paymentRef *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		listingID:  listingID,
		renterID:   renterID,
		period:     period,
		status:     status,
		priceCents: priceCents,
		paymentRef: paymentRef,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) Confirm(paymentRef string, now time.Time) error {
	if paymentRef == "" {
		return ErrMissingPaymentRef
	}
	next, err := Transition(b.status, EventPaymentSucceeded)
	if err != nil {
		return err
	}
	b.status = next
	b.paymentRef = &paymentRef
	b.updatedAt = now
	return nil
}

func (b *Booking) CancelByPaymentFailure(now time.Time) error {
	next, err := Transition(b.status, EventPaymentFailed)
	if err != nil {
		return err
	}
	b.status = next
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	next, err := Transition(b.status, EventCancel)
	if err != nil {
		return err
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// Complete moves a confirmed booking whose period has elapsed to the
// completed state. Calling it again on a completed booking is a no-op.
func (b *Booking) Complete(now time.Time) error {
	if now.Before(b.period.End()) {
		return ErrInvalidTransition
	}
	prev := b.status
	next, err := Transition(b.status, EventComplete)
	if err != nil {
		return err
	}
	if next != prev {
		b.status = next
		b.updatedAt = now
	}
	return nil
}

func (b *Booking) AttachPaymentRef(ref string, now time.Time) error {
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	b.paymentRef = &ref
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) ListingID() uuid.UUID { return b.listingID }
func (b *Booking) RenterID() uuid.UUID  { return b.renterID }
func (b *Booking) Period() Period       { return b.period }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) PriceCents() int64    { return b.priceCents }
func (b *Booking) PaymentRef() *string  { return b.paymentRef }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
