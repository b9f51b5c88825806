package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"rinto/internal/domain/availability"
	"rinto/internal/domain/booking"
	"rinto/internal/infra"
	"rinto/internal/infra/db"
	"rinto/internal/pkg/clock"
	"rinto/internal/pkg/errs"
	"rinto/internal/usecase/queries"
	"rinto/internal/usecase/shared"

	"github.com/google/uuid"
)

type AdmitBookingRequest struct {
	ListingID uuid.UUID `json:"listing_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type AdmitBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	// AdmitBooking validates the requested interval against availability
	// and existing bookings and reserves it as a pending booking. The
	// overlap check and the insert are one atomic unit.
	AdmitBooking(ctx context.Context, req AdmitBookingRequest, renterID, idempotencyKey uuid.UUID) (*AdmitBookingResult, error)
	// CancelBooking cancels a pending booking on the renter's request.
	CancelBooking(ctx context.Context, bookingID, renterID uuid.UUID) error
	// CompleteElapsedBookings moves every confirmed booking whose end
	// time has passed to completed. Safe to invoke repeatedly and
	// concurrently.
	CompleteElapsedBookings(ctx context.Context, now time.Time) (int64, error)
}

type bookingCommandsImpl struct {
	uow             shared.UnitOfWork
	bookingQueries  queries.BookingQueries
	idempotencyRepo shared.IdempotencyRepository
	calc            booking.PriceCalculator
	policy          AvailabilityPolicy
	clock           clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	idempotencyRepo shared.IdempotencyRepository,
	calc booking.PriceCalculator,
	policy AvailabilityPolicy,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:             uow,
		bookingQueries:  bookingQueries,
		idempotencyRepo: idempotencyRepo,
		calc:            calc,
		policy:          policy,
		clock:           clk,
	}
}

func (uc *bookingCommandsImpl) AdmitBooking(
	ctx context.Context,
	req AdmitBookingRequest,
	renterID, idempotencyKey uuid.UUID,
) (*AdmitBookingResult, error) {
	// One admission timestamp for validation and pricing, so the clock
	// advancing mid-request cannot fail a period it already accepted.
	now := uc.clock.Now()

	period, err := booking.NewPeriod(req.StartTime, req.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInterval)
	}
	if err := period.ValidateNotPast(now); err != nil {
		return nil, errs.Mark(err, ErrPastStartTime)
	}

	replayed, err := uc.claimIdempotencyKey(ctx, req, renterID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &AdmitBookingResult{Booking: replayed, IsReplayed: true}, nil
	}

	view, err := uc.admitClaimed(ctx, req, renterID, idempotencyKey, period, now)
	if err != nil {
		// The claim is released on failure so the caller can retry the
		// same key after fixing the request or freeing the slot.
		uc.releaseClaim(ctx, idempotencyKey, renterID)
		return nil, err
	}
	return &AdmitBookingResult{Booking: view}, nil
}

func (uc *bookingCommandsImpl) admitClaimed(
	ctx context.Context,
	req AdmitBookingRequest,
	renterID, idempotencyKey uuid.UUID,
	period booking.Period,
	now time.Time,
) (*queries.BookingView, error) {
	listingSnap, err := uc.loadBookableListing(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	if err := uc.checkAvailability(ctx, req.ListingID, period); err != nil {
		return nil, err
	}

	entity, err := booking.NewBooking(
		listingSnap.ID, renterID, period,
		listingSnap.PricePerHourCents, uc.calc, now,
	)
	if err != nil {
		if errors.Is(err, booking.ErrPastStartTime) {
			return nil, errs.Mark(err, ErrPastStartTime)
		}
		return nil, errs.Mark(err, ErrInternal)
	}

	return uc.reserve(ctx, entity, renterID, idempotencyKey)
}

// claimIdempotencyKey returns a non-nil view when the key was already
// completed and the stored result should be replayed.
func (uc *bookingCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	req AdmitBookingRequest,
	renterID, idempotencyKey uuid.UUID,
) (*queries.BookingView, error) {
	requestHash := hashRequest(req)
	expiresAt := uc.clock.Now().Add(24 * time.Hour)

	var inserted bool
	err := uc.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var ierr error
		inserted, ierr = uc.idempotencyRepo.TryInsert(ctx, dbtx, idempotencyKey, renterID, "POST /bookings", requestHash, expiresAt)
		return ierr
	})
	if err != nil {
		return nil, errs.Mark(err, ErrInternal)
	}
	if inserted {
		return nil, nil
	}

	existing, err := uc.uow.CommandReads().IdempotencyByKey(ctx, idempotencyKey, renterID)
	if err != nil {
		return nil, errs.Mark(err, ErrInternal)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultBookingID == nil {
			return nil, errs.Mark(errs.New("completed idempotency record missing booking id"), ErrInternal)
		}
		return uc.bookingQueries.GetByIDSystem(ctx, *existing.ResultBookingID)
	case "processing":
		// A processing row past its expiry belongs to a request that
		// died without finishing. Reclaim it instead of blocking the
		// retry until the row ages out.
		if uc.clock.Now().After(existing.ExpiresAt) {
			return uc.reclaimExpiredKey(ctx, idempotencyKey, renterID, requestHash, expiresAt)
		}
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateRequest
		}
		return nil, ErrRequestInProgress
	default:
		return nil, errs.Mark(errs.New("unknown idempotency record status"), ErrInternal)
	}
}

func (uc *bookingCommandsImpl) reclaimExpiredKey(
	ctx context.Context,
	idempotencyKey, renterID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.BookingView, error) {
	var inserted bool
	err := uc.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		if derr := uc.idempotencyRepo.Delete(ctx, dbtx, idempotencyKey, renterID); derr != nil {
			return derr
		}
		var ierr error
		inserted, ierr = uc.idempotencyRepo.TryInsert(ctx, dbtx, idempotencyKey, renterID, "POST /bookings", requestHash, expiresAt)
		return ierr
	})
	if err != nil {
		return nil, errs.Mark(err, ErrInternal)
	}
	if !inserted {
		// A concurrent retry won the reclaim race.
		return nil, ErrRequestInProgress
	}
	return nil, nil
}

// releaseClaim drops a processing claim after a failed admission. Best
// effort; a leftover row is reclaimed once it expires.
func (uc *bookingCommandsImpl) releaseClaim(ctx context.Context, idempotencyKey, renterID uuid.UUID) {
	err := uc.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		return uc.idempotencyRepo.Delete(ctx, dbtx, idempotencyKey, renterID)
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to release idempotency claim",
			"key", idempotencyKey, "error", err)
	}
}

func (uc *bookingCommandsImpl) loadBookableListing(ctx context.Context, listingID uuid.UUID) (*shared.ListingSnapshot, error) {
	snap, err := uc.uow.CommandReads().ListingByID(ctx, listingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingUnavailable
		}
		return nil, errs.Mark(err, ErrInternal)
	}
	if !snap.IsActive {
		return nil, ErrListingUnavailable
	}
	return snap, nil
}

// checkAvailability requires every per-date segment of the period to be
// fully covered by the union of that date's available windows.
func (uc *bookingCommandsImpl) checkAvailability(ctx context.Context, listingID uuid.UUID, period booking.Period) error {
	segments := availability.SplitByDate(period.Start(), period.End(), uc.policy.Location)
	reads := uc.uow.CommandReads()

	for _, seg := range segments {
		declared, err := reads.WindowsForDate(ctx, listingID, seg.Date)
		if err != nil {
			return errs.Mark(err, ErrInternal)
		}
		open := uc.policy.Day.Resolve(declared)
		if !availability.Covers(seg, open) {
			return ErrOutsideAvailability
		}
	}
	return nil
}

// reserve runs the conflict check and the insert as one atomic unit. A
// racing insert that slips past the in-transaction check trips the
// bookings_no_overlap exclusion constraint and surfaces as a conflict.
func (uc *bookingCommandsImpl) reserve(
	ctx context.Context,
	entity *booking.Booking,
	renterID, idempotencyKey uuid.UUID,
) (*queries.BookingView, error) {
	var bookingID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		overlaps, err := tx.Reads().OverlappingBookings(ctx, entity.ListingID(), entity.Period(), uuid.Nil)
		if err != nil {
			return err
		}
		if len(overlaps) > 0 {
			return ErrSlotConflict
		}

		bookingID, err = tx.Bookings().Create(ctx, tx.DB(), entity)
		if err != nil {
			return err
		}

		if err := uc.enqueueBookingNotification(ctx, tx, "booking_created", bookingID); err != nil {
			return err
		}
		return tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, renterID, bookingID)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict):
			return nil, ErrSlotConflict
		case infra.IsKind(err, infra.KindConflict):
			return nil, ErrSlotConflict
		default:
			return nil, errs.Mark(err, ErrInternal)
		}
	}

	view, err := uc.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrInternal)
	}
	return view, nil
}

func (uc *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID, renterID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if snap.RenterID != renterID {
			return ErrNotAllowed
		}

		entity, err := reconstructFromSnapshot(snap)
		if err != nil {
			return err
		}
		if err := entity.Cancel(uc.clock.Now()); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		return tx.Bookings().UpdateState(ctx, tx.DB(), entity)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAllowed), errors.Is(err, ErrInvalidTransition):
			return err
		case infra.IsKind(err, infra.KindNotFound):
			return ErrBookingNotFound
		default:
			return errs.Mark(err, ErrInternal)
		}
	}
	return nil
}

func (uc *bookingCommandsImpl) CompleteElapsedBookings(ctx context.Context, now time.Time) (int64, error) {
	var moved int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		moved = 0
		snaps, err := tx.Reads().ElapsedConfirmedForUpdate(ctx, now)
		if err != nil {
			return err
		}
		for i := range snaps {
			entity, err := reconstructFromSnapshot(&snaps[i])
			if err != nil {
				return err
			}
			if err := entity.Complete(now); err != nil {
				return err
			}
			if err := tx.Bookings().UpdateState(ctx, tx.DB(), entity); err != nil {
				return err
			}
			moved++
		}
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, ErrInternal)
	}
	return moved, nil
}

func (uc *bookingCommandsImpl) enqueueBookingNotification(ctx context.Context, tx shared.Tx, topic string, bookingID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, payload, uc.clock.Now())
}

func reconstructFromSnapshot(snap *shared.BookingSnapshot) (*booking.Booking, error) {
	period, err := booking.NewPeriod(snap.StartTime, snap.EndTime)
	if err != nil {
		return nil, err
	}
	status, err := booking.ParseStatus(snap.Status)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		snap.ID, snap.ListingID, snap.RenterID,
		period, status, snap.PriceCents, snap.PaymentRef,
		snap.CreatedAt, snap.UpdatedAt,
	), nil
}

func hashRequest(req AdmitBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
