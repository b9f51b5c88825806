//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rinto/internal/domain/availability"
	"rinto/internal/domain/booking"
	"rinto/internal/infra/db"
	"rinto/internal/pkg/clock"
	"rinto/internal/usecase/commands"
	"rinto/internal/usecase/shared"
	"rinto/tests/common/builder"
	queriesmock "rinto/tests/mock/queries"
	sharedmock "rinto/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// steppingClock advances on every read, exposing code paths that read
// the clock more than once per request.
type steppingClock struct {
	t    time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

type bookingHarness struct {
	uow      *sharedmock.MockUnitOfWork
	reads    *sharedmock.MockCommandReads
	tx       *sharedmock.MockTx
	bookings *sharedmock.MockBookingRepository
	idem     *sharedmock.MockIdempotencyRepository
	notifs   *sharedmock.MockNotificationRepository
	queries  *queriesmock.MockBookingQueries
	uc       commands.BookingCommands
}

func newBookingHarness(t *testing.T, clk clock.Clock) *bookingHarness {
	ctrl := gomock.NewController(t)
	h := &bookingHarness{
		uow:      sharedmock.NewMockUnitOfWork(ctrl),
		reads:    sharedmock.NewMockCommandReads(ctrl),
		tx:       sharedmock.NewMockTx(ctrl),
		bookings: sharedmock.NewMockBookingRepository(ctrl),
		idem:     sharedmock.NewMockIdempotencyRepository(ctrl),
		notifs:   sharedmock.NewMockNotificationRepository(ctrl),
		queries:  queriesmock.NewMockBookingQueries(ctrl),
	}

	h.uow.EXPECT().CommandReads().Return(h.reads).AnyTimes()
	h.uow.EXPECT().WithDB(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, db.DBTX) error) error {
			return fn(ctx, nil)
		}).AnyTimes()
	h.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, h.tx)
		}).AnyTimes()

	h.tx.EXPECT().Reads().Return(h.reads).AnyTimes()
	h.tx.EXPECT().Bookings().Return(h.bookings).AnyTimes()
	h.tx.EXPECT().Idempotency().Return(h.idem).AnyTimes()
	h.tx.EXPECT().Notifications().Return(h.notifs).AnyTimes()
	h.tx.EXPECT().DB().Return(nil).AnyTimes()

	policy := commands.AvailabilityPolicy{
		Day:      availability.DayPolicy{OpenStartMin: 0, OpenEndMin: 1440},
		Location: time.UTC,
	}
	h.uc = commands.NewBookingCommands(
		h.uow, h.queries, h.idem,
		booking.NewHalfHourPriceCalculator(), policy, clk,
	)
	return h
}

func activeListingSnapshot(id uuid.UUID) *shared.ListingSnapshot {
	return &shared.ListingSnapshot{
		ID:                id,
		OwnerID:           uuid.New(),
		Title:             "Pelican 12ft kayak",
		PricePerHourCents: 2000,
		IsActive:          true,
	}
}

func confirmedSnapshot(start, end, at time.Time) shared.BookingSnapshot {
	ref := "pi_" + uuid.NewString()[:8]
	return shared.BookingSnapshot{
		ID:         uuid.New(),
		ListingID:  uuid.New(),
		RenterID:   uuid.New(),
		StartTime:  start,
		EndTime:    end,
		Status:     booking.StatusConfirmed.String(),
		PriceCents: 4000,
		PaymentRef: &ref,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

func TestAdmitBooking(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	renterID := uuid.New()
	key := uuid.New()

	t.Run("admits with a clock that advances between reads", func(t *testing.T) {
		// The start time is valid at the moment the request arrives but
		// would be in the past by any later clock read. The admission
		// must judge the whole request against one timestamp.
		clk := &steppingClock{t: base, step: time.Minute}
		h := newBookingHarness(t, clk)

		req := commands.AdmitBookingRequest{
			ListingID: uuid.New(),
			StartTime: base.Add(30 * time.Second),
			EndTime:   base.Add(2 * time.Hour),
		}
		bookingID := uuid.New()
		view := builder.NewBookingBuilder().WithRenterID(renterID).BuildView()

		h.idem.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, renterID, "POST /bookings", gomock.Any(), gomock.Any()).
			Return(true, nil)
		h.reads.EXPECT().ListingByID(ctx, req.ListingID).Return(activeListingSnapshot(req.ListingID), nil)
		h.reads.EXPECT().WindowsForDate(gomock.Any(), req.ListingID, gomock.Any()).Return(nil, nil).AnyTimes()
		h.reads.EXPECT().OverlappingBookings(gomock.Any(), req.ListingID, gomock.Any(), uuid.Nil).Return(nil, nil)
		h.bookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingID, nil)
		h.notifs.EXPECT().CreateJob(gomock.Any(), gomock.Any(), "email", "booking_created", gomock.Any(), gomock.Any()).Return(nil)
		h.idem.EXPECT().UpdateStatusCompleted(gomock.Any(), gomock.Any(), key, renterID, bookingID).Return(nil)
		h.queries.EXPECT().GetByIDSystem(gomock.Any(), bookingID).Return(view, nil)

		result, err := h.uc.AdmitBooking(ctx, req, renterID, key)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
	})

	t.Run("slot conflict releases the idempotency claim", func(t *testing.T) {
		h := newBookingHarness(t, clock.NewMockClock(base))

		req := commands.AdmitBookingRequest{
			ListingID: uuid.New(),
			StartTime: base.Add(24 * time.Hour),
			EndTime:   base.Add(26 * time.Hour),
		}
		blocker := confirmedSnapshot(req.StartTime, req.EndTime, base)

		h.idem.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, renterID, "POST /bookings", gomock.Any(), gomock.Any()).
			Return(true, nil)
		h.reads.EXPECT().ListingByID(ctx, req.ListingID).Return(activeListingSnapshot(req.ListingID), nil)
		h.reads.EXPECT().WindowsForDate(gomock.Any(), req.ListingID, gomock.Any()).Return(nil, nil).AnyTimes()
		h.reads.EXPECT().OverlappingBookings(gomock.Any(), req.ListingID, gomock.Any(), uuid.Nil).
			Return([]shared.BookingSnapshot{blocker}, nil)
		h.idem.EXPECT().Delete(gomock.Any(), gomock.Any(), key, renterID).Return(nil)

		_, err := h.uc.AdmitBooking(ctx, req, renterID, key)
		assert.ErrorIs(t, err, commands.ErrSlotConflict)
	})

	t.Run("unavailable listing releases the idempotency claim", func(t *testing.T) {
		h := newBookingHarness(t, clock.NewMockClock(base))

		req := commands.AdmitBookingRequest{
			ListingID: uuid.New(),
			StartTime: base.Add(24 * time.Hour),
			EndTime:   base.Add(26 * time.Hour),
		}
		inactive := activeListingSnapshot(req.ListingID)
		inactive.IsActive = false

		h.idem.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, renterID, "POST /bookings", gomock.Any(), gomock.Any()).
			Return(true, nil)
		h.reads.EXPECT().ListingByID(ctx, req.ListingID).Return(inactive, nil)
		h.idem.EXPECT().Delete(gomock.Any(), gomock.Any(), key, renterID).Return(nil)

		_, err := h.uc.AdmitBooking(ctx, req, renterID, key)
		assert.ErrorIs(t, err, commands.ErrListingUnavailable)
	})
}

func TestAdmitBookingIdempotencyClaims(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	renterID := uuid.New()
	key := uuid.New()

	req := commands.AdmitBookingRequest{
		ListingID: uuid.New(),
		StartTime: base.Add(24 * time.Hour),
		EndTime:   base.Add(26 * time.Hour),
	}

	t.Run("completed claim replays the stored booking", func(t *testing.T) {
		h := newBookingHarness(t, clock.NewMockClock(base))
		view := builder.NewBookingBuilder().WithRenterID(renterID).BuildView()

		h.idem.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, renterID, "POST /bookings", gomock.Any(), gomock.Any()).
			Return(false, nil)
		h.reads.EXPECT().IdempotencyByKey(ctx, key, renterID).Return(&shared.IdempotencyRecord{
			Key: key, UserID: renterID, Status: "completed",
			ResultBookingID: &view.ID, ExpiresAt: base.Add(24 * time.Hour),
		}, nil)
		h.queries.EXPECT().GetByIDSystem(ctx, view.ID).Return(view, nil)

		result, err := h.uc.AdmitBooking(ctx, req, renterID, key)
		require.NoError(t, err)
		assert.True(t, result.IsReplayed)
		assert.Equal(t, view.ID, result.Booking.ID)
	})

	t.Run("live claim with the same payload reports in progress", func(t *testing.T) {
		h := newBookingHarness(t, clock.NewMockClock(base))

		var claimedHash string
		h.idem.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, renterID, "POST /bookings", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, _, _ uuid.UUID, _, requestHash string, _ time.Time) (bool, error) {
				claimedHash = requestHash
				return false, nil
			})
		h.reads.EXPECT().IdempotencyByKey(ctx, key, renterID).
			DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*shared.IdempotencyRecord, error) {
				return &shared.IdempotencyRecord{
					Key: key, UserID: renterID, Status: "processing",
					RequestHash: claimedHash, ExpiresAt: base.Add(24 * time.Hour),
				}, nil
			})

		_, err := h.uc.AdmitBooking(ctx, req, renterID, key)
		assert.ErrorIs(t, err, commands.ErrRequestInProgress)
	})

	t.Run("live claim with a different payload is rejected", func(t *testing.T) {
		h := newBookingHarness(t, clock.NewMockClock(base))

		h.idem.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, renterID, "POST /bookings", gomock.Any(), gomock.Any()).
			Return(false, nil)
		h.reads.EXPECT().IdempotencyByKey(ctx, key, renterID).Return(&shared.IdempotencyRecord{
			Key: key, UserID: renterID, Status: "processing",
			RequestHash: "someone-elses-payload", ExpiresAt: base.Add(24 * time.Hour),
		}, nil)

		_, err := h.uc.AdmitBooking(ctx, req, renterID, key)
		assert.ErrorIs(t, err, commands.ErrDuplicateRequest)
	})

	t.Run("expired processing claim is reclaimed and admitted", func(t *testing.T) {
		h := newBookingHarness(t, clock.NewMockClock(base))
		bookingID := uuid.New()
		view := builder.NewBookingBuilder().WithRenterID(renterID).BuildView()

		h.idem.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, renterID, "POST /bookings", gomock.Any(), gomock.Any()).
			Return(false, nil)
		h.reads.EXPECT().IdempotencyByKey(ctx, key, renterID).Return(&shared.IdempotencyRecord{
			Key: key, UserID: renterID, Status: "processing",
			RequestHash: "stale", ExpiresAt: base.Add(-time.Minute),
		}, nil)
		h.idem.EXPECT().Delete(gomock.Any(), gomock.Any(), key, renterID).Return(nil)
		h.idem.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, renterID, "POST /bookings", gomock.Any(), gomock.Any()).
			Return(true, nil)

		h.reads.EXPECT().ListingByID(ctx, req.ListingID).Return(activeListingSnapshot(req.ListingID), nil)
		h.reads.EXPECT().WindowsForDate(gomock.Any(), req.ListingID, gomock.Any()).Return(nil, nil).AnyTimes()
		h.reads.EXPECT().OverlappingBookings(gomock.Any(), req.ListingID, gomock.Any(), uuid.Nil).Return(nil, nil)
		h.bookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingID, nil)
		h.notifs.EXPECT().CreateJob(gomock.Any(), gomock.Any(), "email", "booking_created", gomock.Any(), gomock.Any()).Return(nil)
		h.idem.EXPECT().UpdateStatusCompleted(gomock.Any(), gomock.Any(), key, renterID, bookingID).Return(nil)
		h.queries.EXPECT().GetByIDSystem(gomock.Any(), bookingID).Return(view, nil)

		result, err := h.uc.AdmitBooking(ctx, req, renterID, key)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
	})

	t.Run("expired claim lost to a concurrent retry reports in progress", func(t *testing.T) {
		h := newBookingHarness(t, clock.NewMockClock(base))

		h.idem.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, renterID, "POST /bookings", gomock.Any(), gomock.Any()).
			Return(false, nil)
		h.reads.EXPECT().IdempotencyByKey(ctx, key, renterID).Return(&shared.IdempotencyRecord{
			Key: key, UserID: renterID, Status: "processing",
			RequestHash: "stale", ExpiresAt: base.Add(-time.Minute),
		}, nil)
		h.idem.EXPECT().Delete(gomock.Any(), gomock.Any(), key, renterID).Return(nil)
		h.idem.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, renterID, "POST /bookings", gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := h.uc.AdmitBooking(ctx, req, renterID, key)
		assert.ErrorIs(t, err, commands.ErrRequestInProgress)
	})
}

func TestCompleteElapsedBookings(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("completes each locked elapsed booking through the state machine", func(t *testing.T) {
		h := newBookingHarness(t, clock.NewMockClock(now))

		snaps := []shared.BookingSnapshot{
			confirmedSnapshot(now.Add(-4*time.Hour), now.Add(-2*time.Hour), now.Add(-5*time.Hour)),
			confirmedSnapshot(now.Add(-3*time.Hour), now.Add(-time.Hour), now.Add(-5*time.Hour)),
		}
		h.reads.EXPECT().ElapsedConfirmedForUpdate(gomock.Any(), now).Return(snaps, nil)

		var completed []uuid.UUID
		h.bookings.EXPECT().UpdateState(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, b *booking.Booking) error {
				assert.Equal(t, booking.StatusCompleted, b.Status())
				assert.Equal(t, now, b.UpdatedAt())
				completed = append(completed, b.ID())
				return nil
			}).Times(2)

		moved, err := h.uc.CompleteElapsedBookings(ctx, now)
		require.NoError(t, err)
		assert.EqualValues(t, 2, moved)
		assert.ElementsMatch(t, []uuid.UUID{snaps[0].ID, snaps[1].ID}, completed)
	})

	t.Run("nothing elapsed moves nothing", func(t *testing.T) {
		h := newBookingHarness(t, clock.NewMockClock(now))
		h.reads.EXPECT().ElapsedConfirmedForUpdate(gomock.Any(), now).Return(nil, nil)

		moved, err := h.uc.CompleteElapsedBookings(ctx, now)
		require.NoError(t, err)
		assert.Zero(t, moved)
	})
}
