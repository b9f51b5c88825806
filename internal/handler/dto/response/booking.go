package response

import (
	"time"

	"rinto/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	ListingID  uuid.UUID `json:"listingId"`
	RenterID   uuid.UUID `json:"renterId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"priceCents"`
	PaymentRef *string   `json:"paymentRef,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:         view.ID,
		ListingID:  view.ListingID,
		RenterID:   view.RenterID,
		StartTime:  view.StartTime,
		EndTime:    view.EndTime,
		Status:     view.Status,
		PriceCents: view.PriceCents,
		PaymentRef: view.PaymentRef,
		CreatedAt:  view.CreatedAt,
		UpdatedAt:  view.UpdatedAt,
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	responses := make([]*BookingResponse, len(views))
	for i, view := range views {
		responses[i] = FromBookingView(view)
	}
	return responses
}

type SweepResponse struct {
	Completed int64 `json:"completed"`
}
