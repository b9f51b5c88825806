package listing

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle      = errors.New("listing title cannot be empty")
	ErrNegativeRate    = errors.New("hourly rate cannot be negative")
	ErrNotOwner        = errors.New("caller does not own this listing")
	ErrAlreadyInactive = errors.New("listing is already inactive")
)

type Listing struct {
	id                uuid.UUID
	ownerID           uuid.UUID
	title             string
	description       string
	location          string
	pricePerHourCents int64
	isActive          bool
	createdAt         time.Time
	updatedAt         time.Time
}

func NewListing(ownerID uuid.UUID, title, description, location string, pricePerHourCents int64, now time.Time) (*Listing, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if pricePerHourCents < 0 {
		return nil, ErrNegativeRate
	}

	return &Listing{
		id:                uuid.New(),
		ownerID:           ownerID,
		title:             title,
		description:       description,
		location:          location,
		pricePerHourCents: pricePerHourCents,
		isActive:          true,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func ReconstructListing(
	id, ownerID uuid.UUID,
	title, description, location string,
	pricePerHourCents int64,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Listing {
	return &Listing{
		id:                id,
		ownerID:           ownerID,
		title:             title,
		description:       description,
		location:          location,
		pricePerHourCents: pricePerHourCents,
		isActive:          isActive,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (l *Listing) RequireOwner(userID uuid.UUID) error {
	if l.ownerID != userID {
		return ErrNotOwner
	}
	return nil
}

func (l *Listing) UpdateDetails(title, description, location string, pricePerHourCents int64, now time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if pricePerHourCents < 0 {
		return ErrNegativeRate
	}
	l.title = title
	l.description = description
	l.location = location
	l.pricePerHourCents = pricePerHourCents
	l.updatedAt = now
	return nil
}

func (l *Listing) Deactivate(now time.Time) error {
	if !l.isActive {
		return ErrAlreadyInactive
	}
	l.isActive = false
	l.updatedAt = now
	return nil
}

func (l *Listing) ID() uuid.UUID            { return l.id }
func (l *Listing) OwnerID() uuid.UUID       { return l.ownerID }
func (l *Listing) Title() string            { return l.title }
func (l *Listing) Description() string      { return l.description }
func (l *Listing) Location() string         { return l.location }
func (l *Listing) PricePerHourCents() int64 { return l.pricePerHourCents }
func (l *Listing) IsActive() bool           { return l.isActive }
func (l *Listing) CreatedAt() time.Time     { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time     { return l.updatedAt }
