package commands

import (
	"context"
	"encoding/json"
	"errors"

	"rinto/internal/infra"
	"rinto/internal/pkg/clock"
	"rinto/internal/pkg/errs"
	"rinto/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentCommands interface {
	// CreatePaymentIntent opens a payment with the gateway for a pending
	// booking and records the gateway reference on the booking.
	CreatePaymentIntent(ctx context.Context, bookingID, renterID uuid.UUID) (*PaymentIntent, error)
	// HandlePaymentOutcome applies the gateway's verdict. Success
	// confirms the booking, failure cancels it. Row-locked so racing
	// callbacks serialize.
	HandlePaymentOutcome(ctx context.Context, bookingID uuid.UUID, outcome PaymentOutcome, paymentRef string) error
}

type paymentCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	clock   clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, gateway PaymentGateway, clk clock.Clock) PaymentCommands {
	return &paymentCommandsImpl{uow: uow, gateway: gateway, clock: clk}
}

func (uc *paymentCommandsImpl) CreatePaymentIntent(ctx context.Context, bookingID, renterID uuid.UUID) (*PaymentIntent, error) {
	snap, err := uc.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrInternal)
	}
	if snap.RenterID != renterID {
		return nil, ErrNotAllowed
	}

	entity, err := reconstructFromSnapshot(snap)
	if err != nil {
		return nil, errs.Mark(err, ErrInternal)
	}

	intent, err := uc.gateway.CreateIntent(ctx, entity.PriceCents(), IntentMetadata{
		BookingID: snap.ID,
		ListingID: snap.ListingID,
		RenterID:  snap.RenterID,
	})
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGatewayFailed)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		current, err := reconstructFromSnapshot(locked)
		if err != nil {
			return err
		}
		if err := current.AttachPaymentRef(intent.Reference, uc.clock.Now()); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		return tx.Bookings().UpdateState(ctx, tx.DB(), current)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		return nil, errs.Mark(err, ErrInternal)
	}
	return intent, nil
}

func (uc *paymentCommandsImpl) HandlePaymentOutcome(ctx context.Context, bookingID uuid.UUID, outcome PaymentOutcome, paymentRef string) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		entity, err := reconstructFromSnapshot(locked)
		if err != nil {
			return err
		}

		switch outcome {
		case PaymentOutcomeSucceeded:
			if err := entity.Confirm(paymentRef, uc.clock.Now()); err != nil {
				return errs.Mark(err, ErrInvalidTransition)
			}
			// The slot was held as pending; a cancelled-then-rebooked
			// race could still have confirmed a rival in the meantime,
			// so re-check before committing the confirmation.
			overlaps, err := tx.Reads().OverlappingBookings(ctx, entity.ListingID(), entity.Period(), entity.ID())
			if err != nil {
				return err
			}
			for _, other := range overlaps {
				if other.Status == "confirmed" {
					return ErrSlotConflict
				}
			}
		case PaymentOutcomeFailed:
			if err := entity.CancelByPaymentFailure(uc.clock.Now()); err != nil {
				return errs.Mark(err, ErrInvalidTransition)
			}
		default:
			return errs.Mark(errs.New("unknown payment outcome"), ErrInternal)
		}

		if err := tx.Bookings().UpdateState(ctx, tx.DB(), entity); err != nil {
			return err
		}
		return uc.enqueueOutcomeNotification(ctx, tx, entity.ID(), outcome)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrSlotConflict):
			return err
		case infra.IsKind(err, infra.KindNotFound):
			return ErrBookingNotFound
		case infra.IsKind(err, infra.KindConflict):
			return ErrSlotConflict
		default:
			return errs.Mark(err, ErrInternal)
		}
	}
	return nil
}

func (uc *paymentCommandsImpl) enqueueOutcomeNotification(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, outcome PaymentOutcome) error {
	topic := "booking_confirmed"
	if outcome == PaymentOutcomeFailed {
		topic = "booking_payment_failed"
	}
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, payload, uc.clock.Now())
}
