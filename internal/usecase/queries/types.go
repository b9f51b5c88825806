package queries

import (
	"time"

	"github.com/google/uuid"
)

type BookingView struct {
	ID         uuid.UUID `json:"id"`
	ListingID  uuid.UUID `json:"listing_id"`
	RenterID   uuid.UUID `json:"renter_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"price_cents"`
	PaymentRef *string   `json:"payment_ref,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListingView struct {
	ID                uuid.UUID `json:"id"`
	OwnerID           uuid.UUID `json:"owner_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Location          string    `json:"location"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	IsActive          bool      `json:"is_active"`
	Rating            *float64  `json:"rating,omitempty"`
	ReviewCount       int32     `json:"review_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type AvailabilityWindowView struct {
	ID          uuid.UUID `json:"id"`
	ListingID   uuid.UUID `json:"listing_id"`
	Date        time.Time `json:"date"`
	StartMin    int       `json:"start_min"`
	EndMin      int       `json:"end_min"`
	IsAvailable bool      `json:"is_available"`
}

type ReviewView struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	ListingID uuid.UUID `json:"listing_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
