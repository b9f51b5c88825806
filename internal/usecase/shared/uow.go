package shared

import (
	"context"
	"time"

	"rinto/internal/domain/availability"
	"rinto/internal/domain/booking"
	"rinto/internal/domain/listing"
	"rinto/internal/domain/review"
	"rinto/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in a read-committed transaction, retrying on
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB runs single-query operations on the pool with implicit
	// transactions.
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads gives validation reads outside any transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Listings() ListingRepository
	Availability() AvailabilityRepository
	Reviews() ReviewRepository
	RatingStats() RatingStatsRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ListingByID(ctx context.Context, id uuid.UUID) (*ListingSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// BookingByIDForUpdate row-locks the booking so racing lifecycle
	// transitions serialize; callable only inside a transaction.
	BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// OverlappingBookings returns blocking (pending/confirmed) bookings
	// whose half-open interval intersects the given period.
	OverlappingBookings(ctx context.Context, listingID uuid.UUID, period booking.Period, excludeID uuid.UUID) ([]BookingSnapshot, error)
	// ElapsedConfirmedForUpdate row-locks confirmed bookings whose end
	// time has passed, skipping rows a concurrent sweep already holds;
	// callable only inside a transaction.
	ElapsedConfirmedForUpdate(ctx context.Context, now time.Time) ([]BookingSnapshot, error)
	WindowsForDate(ctx context.Context, listingID uuid.UUID, date time.Time) ([]availability.Window, error)
	ReviewByBookingID(ctx context.Context, bookingID uuid.UUID) (*ReviewSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type ListingSnapshot struct {
	ID                uuid.UUID
	OwnerID           uuid.UUID
	Title             string
	Description       string
	Location          string
	PricePerHourCents int64
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type BookingSnapshot struct {
	ID         uuid.UUID
	ListingID  uuid.UUID
	RenterID   uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Status     string
	PriceCents int64
	PaymentRef *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ReviewSnapshot struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	ListingID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// UpdateState persists status, payment reference and updatedAt.
	UpdateState(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
}

type ListingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, l *listing.Listing) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, l *listing.Listing) error
}

type AvailabilityRepository interface {
	CreateWindow(ctx context.Context, dbtx db.DBTX, listingID uuid.UUID, date time.Time, w availability.Window) (uuid.UUID, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, r *review.Review) (uuid.UUID, error)
}

type RatingStatsRepository interface {
	// RecalcListingRatingStats recomputes the listing's mean rating and
	// review count from its reviews.
	RecalcListingRatingStats(ctx context.Context, dbtx db.DBTX, listingID uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert claims the key; inserted=false means another request
	// already holds it.
	TryInsert(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID, resultBookingID uuid.UUID) error
	// Delete releases an unfinished claim so the key can be retried.
	// Completed records are never deleted here.
	Delete(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
