package builder

import (
	"time"

	"rinto/internal/domain/booking"
	reqdto "rinto/internal/handler/dto/request"
	"rinto/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingBuilder assembles a valid pending booking and lets each test
// mutate just the field under test.
type BookingBuilder struct {
	listingID         uuid.UUID
	renterID          uuid.UUID
	start             time.Time
	end               time.Time
	pricePerHourCents int64
	now               time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		listingID:         uuid.New(),
		renterID:          uuid.New(),
		start:             now.Add(24 * time.Hour),
		end:               now.Add(26 * time.Hour),
		pricePerHourCents: 2000,
		now:               now,
	}
}

func (b *BookingBuilder) WithStart(t time.Time) *BookingBuilder {
	b.start = t
	return b
}

func (b *BookingBuilder) WithEnd(t time.Time) *BookingBuilder {
	b.end = t
	return b
}

func (b *BookingBuilder) WithDuration(d time.Duration) *BookingBuilder {
	b.end = b.start.Add(d)
	return b
}

func (b *BookingBuilder) WithRate(cents int64) *BookingBuilder {
	b.pricePerHourCents = cents
	return b
}

func (b *BookingBuilder) WithNow(t time.Time) *BookingBuilder {
	b.now = t
	return b
}

func (b *BookingBuilder) Now() time.Time { return b.now }

func (b *BookingBuilder) BuildPeriod() (booking.Period, error) {
	return booking.NewPeriod(b.start, b.end)
}

func (b *BookingBuilder) WithListingID(id uuid.UUID) *BookingBuilder {
	b.listingID = id
	return b
}

func (b *BookingBuilder) WithRenterID(id uuid.UUID) *BookingBuilder {
	b.renterID = id
	return b
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ListingID: b.listingID,
		StartTime: b.start,
		EndTime:   b.end,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:         uuid.New(),
		ListingID:  b.listingID,
		RenterID:   b.renterID,
		StartTime:  b.start,
		EndTime:    b.end,
		Status:     booking.StatusPending.String(),
		PriceCents: 4000,
		CreatedAt:  b.now,
		UpdatedAt:  b.now,
	}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	period, err := booking.NewPeriod(b.start, b.end)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(
		b.listingID, b.renterID, period,
		b.pricePerHourCents, booking.NewHalfHourPriceCalculator(), b.now,
	)
}
