package commands

import (
	"context"
	"time"

	"rinto/internal/domain/availability"

	"github.com/google/uuid"
)

// AvailabilityPolicy resolves calendar days and empty-date semantics
// for the admission engine. Built once from configuration.
type AvailabilityPolicy struct {
	Day      availability.DayPolicy
	Location *time.Location
}

type IntentMetadata struct {
	BookingID uuid.UUID
	ListingID uuid.UUID
	RenterID  uuid.UUID
}

type PaymentIntent struct {
	Reference    string
	ClientSecret string
}

type PaymentOutcome string

const (
	PaymentOutcomeSucceeded PaymentOutcome = "succeeded"
	PaymentOutcomeFailed    PaymentOutcome = "failed"
)

// PaymentGateway is the external card-processing collaborator. Only the
// intent creation handshake is modeled; the final outcome arrives
// through the payment outcome callback.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, meta IntentMetadata) (*PaymentIntent, error)
}
