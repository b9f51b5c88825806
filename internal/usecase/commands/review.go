package commands

import (
	"context"
	"errors"

	"rinto/internal/domain/booking"
	"rinto/internal/domain/review"
	"rinto/internal/infra"
	"rinto/internal/pkg/clock"
	"rinto/internal/pkg/errs"
	"rinto/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}

type ReviewCommands interface {
	// CreateReview accepts one review per completed booking, written by
	// its renter, and refreshes the listing's aggregate rating in the
	// same transaction.
	CreateReview(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (uuid.UUID, error)
}

type reviewCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewCommands(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewCommandsImpl{uow: uow, clock: clk}
}

func (uc *reviewCommandsImpl) CreateReview(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (uuid.UUID, error) {
	var id uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, req.BookingID)
		if err != nil {
			return err
		}
		if snap.RenterID != userID {
			return ErrNotAllowed
		}
		if snap.Status != booking.StatusCompleted.String() {
			return ErrReviewNotEligible
		}

		if _, err := tx.Reads().ReviewByBookingID(ctx, req.BookingID); err == nil {
			return ErrDuplicateReview
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return err
		}

		rating, err := review.NewRating(req.Rating)
		if err != nil {
			return errs.Mark(err, ErrInvalidReview)
		}
		entity, err := review.NewReview(snap.ID, snap.ListingID, userID, rating, req.Comment, uc.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrInvalidReview)
		}

		id, err = tx.Reviews().Create(ctx, tx.DB(), entity)
		if err != nil {
			return err
		}
		return tx.RatingStats().RecalcListingRatingStats(ctx, tx.DB(), snap.ListingID)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAllowed),
			errors.Is(err, ErrReviewNotEligible),
			errors.Is(err, ErrDuplicateReview),
			errors.Is(err, ErrInvalidReview):
			return uuid.Nil, err
		case infra.IsKind(err, infra.KindNotFound):
			return uuid.Nil, ErrBookingNotFound
		case infra.IsKind(err, infra.KindDuplicateKey):
			// Backstop for racing submissions; the unique index on
			// booking_id decides the winner.
			return uuid.Nil, ErrDuplicateReview
		default:
			return uuid.Nil, errs.Mark(err, ErrInternal)
		}
	}
	return id, nil
}
