package builder

import (
	"time"

	"rinto/internal/domain/listing"
	reqdto "rinto/internal/handler/dto/request"
	"rinto/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	ownerID           uuid.UUID
	title             string
	description       string
	location          string
	pricePerHourCents int64
	now               time.Time
}

func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		ownerID:           uuid.New(),
		title:             "Bayliner Element E16",
		description:       "Easy to drive bowrider, great for a day on the lake.",
		location:          "Lake Union, Seattle",
		pricePerHourCents: 9500,
		now:               time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ListingBuilder) WithTitle(title string) *ListingBuilder {
	b.title = title
	return b
}

func (b *ListingBuilder) WithRate(cents int64) *ListingBuilder {
	b.pricePerHourCents = cents
	return b
}

func (b *ListingBuilder) WithOwner(ownerID uuid.UUID) *ListingBuilder {
	b.ownerID = ownerID
	return b
}

func (b *ListingBuilder) BuildCreateRequestDTO() reqdto.CreateListingRequest {
	return reqdto.CreateListingRequest{
		Title:             b.title,
		Description:       b.description,
		Location:          b.location,
		PricePerHourCents: b.pricePerHourCents,
	}
}

func (b *ListingBuilder) BuildView() *queries.ListingView {
	return &queries.ListingView{
		ID:                uuid.New(),
		OwnerID:           b.ownerID,
		Title:             b.title,
		Description:       b.description,
		Location:          b.location,
		PricePerHourCents: b.pricePerHourCents,
		IsActive:          true,
		ReviewCount:       0,
		CreatedAt:         b.now,
		UpdatedAt:         b.now,
	}
}

func (b *ListingBuilder) BuildDomain() (*listing.Listing, error) {
	return listing.NewListing(b.ownerID, b.title, b.description, b.location, b.pricePerHourCents, b.now)
}
