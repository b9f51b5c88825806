package response

import (
	"time"

	"rinto/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"bookingId"`
	ListingID uuid.UUID `json:"listingId"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromReviewView(view *queries.ReviewView) *ReviewResponse {
	return &ReviewResponse{
		ID:        view.ID,
		BookingID: view.BookingID,
		ListingID: view.ListingID,
		UserID:    view.UserID,
		Rating:    view.Rating,
		Comment:   view.Comment,
		CreatedAt: view.CreatedAt,
	}
}

func FromReviewViews(views []*queries.ReviewView) []*ReviewResponse {
	responses := make([]*ReviewResponse, len(views))
	for i, view := range views {
		responses[i] = FromReviewView(view)
	}
	return responses
}
