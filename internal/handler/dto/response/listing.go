package response

import (
	"time"

	"rinto/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListingResponse struct {
	ID                uuid.UUID `json:"id"`
	OwnerID           uuid.UUID `json:"ownerId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Location          string    `json:"location"`
	PricePerHourCents int64     `json:"pricePerHourCents"`
	IsActive          bool      `json:"isActive"`
	Rating            *float64  `json:"rating,omitempty"`
	ReviewCount       int32     `json:"reviewCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func FromListingView(view *queries.ListingView) *ListingResponse {
	return &ListingResponse{
		ID:                view.ID,
		OwnerID:           view.OwnerID,
		Title:             view.Title,
		Description:       view.Description,
		Location:          view.Location,
		PricePerHourCents: view.PricePerHourCents,
		IsActive:          view.IsActive,
		Rating:            view.Rating,
		ReviewCount:       view.ReviewCount,
		CreatedAt:         view.CreatedAt,
		UpdatedAt:         view.UpdatedAt,
	}
}

func FromListingViews(views []*queries.ListingView) []*ListingResponse {
	responses := make([]*ListingResponse, len(views))
	for i, view := range views {
		responses[i] = FromListingView(view)
	}
	return responses
}

type AvailabilityWindowResponse struct {
	ID          uuid.UUID `json:"id"`
	ListingID   uuid.UUID `json:"listingId"`
	Date        string    `json:"date"`
	StartMin    int       `json:"startMin"`
	EndMin      int       `json:"endMin"`
	IsAvailable bool      `json:"isAvailable"`
}

func FromWindowView(view *queries.AvailabilityWindowView) *AvailabilityWindowResponse {
	return &AvailabilityWindowResponse{
		ID:          view.ID,
		ListingID:   view.ListingID,
		Date:        view.Date.Format("2006-01-02"),
		StartMin:    view.StartMin,
		EndMin:      view.EndMin,
		IsAvailable: view.IsAvailable,
	}
}

func FromWindowViews(views []*queries.AvailabilityWindowView) []*AvailabilityWindowResponse {
	responses := make([]*AvailabilityWindowResponse, len(views))
	for i, view := range views {
		responses[i] = FromWindowView(view)
	}
	return responses
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
