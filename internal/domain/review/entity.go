package review

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxCommentLength = 2000

var (
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong        = errors.New("comment exceeds maximum length")
	ErrBookingNotEligible    = errors.New("booking is not eligible for review")
	ErrReviewAlreadyExists   = errors.New("review already exists for this booking")
	ErrReviewerNotRenter     = errors.New("only the renter may review the booking")
	ErrBookingListingMissing = errors.New("review listing does not match booking")
)

type Rating struct {
	value int
}

func NewRating(value int) (Rating, error) {
	if value < 1 || value > 5 {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: value}, nil
}

func (r Rating) Value() int { return r.value }

type Review struct {
	id        uuid.UUID
	bookingID uuid.UUID
	listingID uuid.UUID
	userID    uuid.UUID
	rating    Rating
	comment   string
	createdAt time.Time
}

func NewReview(bookingID, listingID, userID uuid.UUID, rating Rating, comment string, now time.Time) (*Review, error) {
	comment = strings.TrimSpace(comment)
	if len(comment) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	return &Review{
		id:        uuid.New(),
		bookingID: bookingID,
		listingID: listingID,
		userID:    userID,
		rating:    rating,
		comment:   comment,
		createdAt: now,
	}, nil
}

func ReconstructReview(id, bookingID, listingID, userID uuid.UUID, rating Rating, comment string, createdAt time.Time) *Review {
	return &Review{
		id:        id,
		bookingID: bookingID,
		listingID: listingID,
		userID:    userID,
		rating:    rating,
		comment:   comment,
		createdAt: createdAt,
	}
}

func (r *Review) ID() uuid.UUID        { return r.id }
func (r *Review) BookingID() uuid.UUID { return r.bookingID }
func (r *Review) ListingID() uuid.UUID { return r.listingID }
func (r *Review) UserID() uuid.UUID    { return r.userID }
func (r *Review) Rating() Rating       { return r.rating }
func (r *Review) Comment() string      { return r.comment }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
