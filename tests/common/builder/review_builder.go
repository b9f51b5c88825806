package builder

import (
	"time"

	"rinto/internal/domain/review"
	reqdto "rinto/internal/handler/dto/request"
	"rinto/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	bookingID uuid.UUID
	listingID uuid.UUID
	userID    uuid.UUID
	rating    int
	comment   string
	now       time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		bookingID: uuid.New(),
		listingID: uuid.New(),
		userID:    uuid.New(),
		rating:    5,
		comment:   "Great boat, spotless and fast.",
		now:       time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	b.rating = rating
	return b
}

func (b *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	b.comment = comment
	return b
}

func (b *ReviewBuilder) WithBookingID(id uuid.UUID) *ReviewBuilder {
	b.bookingID = id
	return b
}

func (b *ReviewBuilder) BuildCreateRequestDTO() reqdto.CreateReviewRequest {
	return reqdto.CreateReviewRequest{
		BookingID: b.bookingID,
		Rating:    b.rating,
		Comment:   b.comment,
	}
}

func (b *ReviewBuilder) BuildView() *queries.ReviewView {
	return &queries.ReviewView{
		ID:        uuid.New(),
		BookingID: b.bookingID,
		ListingID: b.listingID,
		UserID:    b.userID,
		Rating:    b.rating,
		Comment:   b.comment,
		CreatedAt: b.now,
	}
}

func (b *ReviewBuilder) BuildDomain() (*review.Review, error) {
	rating, err := review.NewRating(b.rating)
	if err != nil {
		return nil, err
	}
	return review.NewReview(b.bookingID, b.listingID, b.userID, rating, b.comment, b.now)
}
