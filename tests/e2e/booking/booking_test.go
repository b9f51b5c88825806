//go:build e2e

package booking_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"rinto/internal/handler/dto/request"
	"rinto/internal/handler/dto/response"
	"rinto/tests/common/dbtest"
	"rinto/tests/common/httptest"
	"rinto/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL       = "/api/bookings"
	paymentOutcomeURL = "/api/payments/outcome"
	reviewsURL        = "/api/reviews"
	sweepURL          = "/internal/bookings/sweep"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// tomorrow at the given hour in UTC, safely inside the default open
// hours (08:00-18:00) so tests need no explicit availability windows
func tomorrowAt(hour, minute int) time.Time {
	day := time.Now().UTC().AddDate(0, 0, 1)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func (s *BookingSuite) postBooking(t *testing.T, token string, listingID uuid.UUID, start, end time.Time, idemKey string) *nethttptest.ResponseRecorder {
	t.Helper()
	reqBody := request.CreateBookingRequest{ListingID: listingID, StartTime: start, EndTime: end}
	return httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, token,
		map[string]string{"Idempotency-Key": idemKey})
}

func (s *BookingSuite) getBooking(t *testing.T, token string, id uuid.UUID) response.BookingResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+id.String(), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var booking response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &booking))
	return booking
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("success: admits a booking priced by the half hour", func() {
		t := s.T()

		ownerID := uuid.New()
		renterID := uuid.New()
		listingID := dbtest.CreateTestListing(t, s.DB, ownerID, "Harbor Skiff", 2000)
		token := e2e.MintToken(t, s.Config, renterID)

		w := s.postBooking(t, token, listingID, tomorrowAt(10, 0), tomorrowAt(11, 30), uuid.NewString())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var booking response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &booking))

		expected := &response.BookingResponse{
			ListingID: listingID,
			RenterID:  renterID,
			StartTime: tomorrowAt(10, 0),
			EndTime:   tomorrowAt(11, 30),
			Status:    "pending",
			// 90 minutes at 2000/h rounds to 3 half hours
			PriceCents: 3000,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "ID", "PaymentRef", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &booking, opts...); diff != "" {
			t.Errorf("booking response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("success: replaying the same idempotency key returns the original booking", func() {
		t := s.T()

		ownerID := uuid.New()
		renterID := uuid.New()
		listingID := dbtest.CreateTestListing(t, s.DB, ownerID, "Harbor Skiff", 2000)
		token := e2e.MintToken(t, s.Config, renterID)
		idemKey := uuid.NewString()

		w1 := s.postBooking(t, token, listingID, tomorrowAt(10, 0), tomorrowAt(11, 0), idemKey)
		require.Equal(t, http.StatusCreated, w1.Code, w1.Body.String())
		var first response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w1.Body, &first))

		w2 := s.postBooking(t, token, listingID, tomorrowAt(10, 0), tomorrowAt(11, 0), idemKey)
		require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())
		var replay response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w2.Body, &replay))

		require.Equal(t, first.ID, replay.ID)

		// The replay did not create a second row
		listW := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, token)
		require.Equal(t, http.StatusOK, listW.Code)
		var mine []response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, listW.Body, &mine))
		require.Len(t, mine, 1)
	})

	s.Run("error: reusing a key with a different payload is rejected", func() {
		t := s.T()

		ownerID := uuid.New()
		renterID := uuid.New()
		listingID := dbtest.CreateTestListing(t, s.DB, ownerID, "Harbor Skiff", 2000)
		token := e2e.MintToken(t, s.Config, renterID)
		idemKey := uuid.NewString()

		w1 := s.postBooking(t, token, listingID, tomorrowAt(10, 0), tomorrowAt(11, 0), idemKey)
		require.Equal(t, http.StatusCreated, w1.Code, w1.Body.String())

		w2 := s.postBooking(t, token, listingID, tomorrowAt(13, 0), tomorrowAt(14, 0), idemKey)
		httptest.AssertErrorResponse(t, w2, http.StatusConflict, "Idempotency key reused")
	})

	s.Run("error: overlapping slot on the same listing conflicts", func() {
		t := s.T()

		ownerID := uuid.New()
		listingID := dbtest.CreateTestListing(t, s.DB, ownerID, "Harbor Skiff", 2000)
		firstToken := e2e.MintToken(t, s.Config, uuid.New())
		secondToken := e2e.MintToken(t, s.Config, uuid.New())

		w1 := s.postBooking(t, firstToken, listingID, tomorrowAt(10, 0), tomorrowAt(12, 0), uuid.NewString())
		require.Equal(t, http.StatusCreated, w1.Code, w1.Body.String())

		w2 := s.postBooking(t, secondToken, listingID, tomorrowAt(11, 0), tomorrowAt(13, 0), uuid.NewString())
		httptest.AssertErrorResponse(t, w2, http.StatusConflict, "Slot conflict")

		// Back-to-back bookings do not overlap
		w3 := s.postBooking(t, secondToken, listingID, tomorrowAt(12, 0), tomorrowAt(13, 0), uuid.NewString())
		require.Equal(t, http.StatusCreated, w3.Code, w3.Body.String())
	})

	s.Run("success: parallel admissions for one slot admit exactly one", func() {
		t := s.T()

		listingID := dbtest.CreateTestListing(t, s.DB, uuid.New(), "Harbor Skiff", 2000)

		const racers = 6
		tokens := make([]string, racers)
		for i := range tokens {
			tokens[i] = e2e.MintToken(t, s.Config, uuid.New())
		}

		codes := make(chan int, racers)
		var wg sync.WaitGroup
		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func(token string) {
				defer wg.Done()
				w := s.postBooking(t, token, listingID, tomorrowAt(10, 0), tomorrowAt(12, 0), uuid.NewString())
				codes <- w.Code
			}(tokens[i])
		}
		wg.Wait()
		close(codes)

		var created, conflicted int
		for code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			default:
				t.Errorf("unexpected status %d", code)
			}
		}
		require.Equal(t, 1, created)
		require.Equal(t, racers-1, conflicted)
	})

	s.Run("success: a key from a failed admission can be retried", func() {
		t := s.T()

		listingID := dbtest.CreateTestListing(t, s.DB, uuid.New(), "Harbor Skiff", 2000)
		blockerToken := e2e.MintToken(t, s.Config, uuid.New())
		retryToken := e2e.MintToken(t, s.Config, uuid.New())
		idemKey := uuid.NewString()

		bw := s.postBooking(t, blockerToken, listingID, tomorrowAt(10, 0), tomorrowAt(12, 0), uuid.NewString())
		require.Equal(t, http.StatusCreated, bw.Code, bw.Body.String())
		var blocker response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, bw.Body, &blocker))

		w1 := s.postBooking(t, retryToken, listingID, tomorrowAt(10, 0), tomorrowAt(12, 0), idemKey)
		httptest.AssertErrorResponse(t, w1, http.StatusConflict, "Slot conflict")

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+blocker.ID.String()+"/cancel", nil, blockerToken)
		require.Equal(t, http.StatusNoContent, cw.Code, cw.Body.String())

		// The failed attempt must not pin its idempotency key
		w2 := s.postBooking(t, retryToken, listingID, tomorrowAt(10, 0), tomorrowAt(12, 0), idemKey)
		require.Equal(t, http.StatusCreated, w2.Code, w2.Body.String())
	})

	s.Run("error: a day with only blocked windows rejects every request", func() {
		t := s.T()

		ownerID := uuid.New()
		renterID := uuid.New()
		listingID := dbtest.CreateTestListing(t, s.DB, ownerID, "Harbor Skiff", 2000)
		dbtest.CreateTestWindow(t, s.DB, listingID, tomorrowAt(0, 0), 0, 1440, false)
		token := e2e.MintToken(t, s.Config, renterID)

		w := s.postBooking(t, token, listingID, tomorrowAt(10, 0), tomorrowAt(11, 0), uuid.NewString())
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Outside availability")
	})

	s.Run("error: deactivated listing is not bookable", func() {
		t := s.T()

		ownerID := uuid.New()
		listingID := dbtest.CreateTestListing(t, s.DB, ownerID, "Harbor Skiff", 2000)
		ownerToken := e2e.MintToken(t, s.Config, ownerID)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/listings/"+listingID.String(), nil, ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		renterToken := e2e.MintToken(t, s.Config, uuid.New())
		bw := s.postBooking(t, renterToken, listingID, tomorrowAt(10, 0), tomorrowAt(11, 0), uuid.NewString())
		httptest.AssertErrorResponse(t, bw, http.StatusNotFound, "Listing unavailable")
	})
}

// ================================================================================
// TestBookingLifecycle
// ================================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("success: payment success confirms the booking", func() {
		t := s.T()

		listingID := dbtest.CreateTestListing(t, s.DB, uuid.New(), "Harbor Skiff", 2000)
		renterID := uuid.New()
		token := e2e.MintToken(t, s.Config, renterID)

		w := s.postBooking(t, token, listingID, tomorrowAt(10, 0), tomorrowAt(11, 0), uuid.NewString())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var booking response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &booking))

		outcome := request.PaymentOutcomeRequest{BookingID: booking.ID, Outcome: "succeeded", PaymentRef: "pi_e2e_1"}
		ow := httptest.PerformRequest(t, s.Router, http.MethodPost, paymentOutcomeURL, outcome, "")
		require.Equal(t, http.StatusNoContent, ow.Code, ow.Body.String())

		confirmed := s.getBooking(t, token, booking.ID)
		require.Equal(t, "confirmed", confirmed.Status)
		require.NotNil(t, confirmed.PaymentRef)
		require.Equal(t, "pi_e2e_1", *confirmed.PaymentRef)
	})

	s.Run("success: payment failure cancels the booking and frees the slot", func() {
		t := s.T()

		listingID := dbtest.CreateTestListing(t, s.DB, uuid.New(), "Harbor Skiff", 2000)
		token := e2e.MintToken(t, s.Config, uuid.New())

		w := s.postBooking(t, token, listingID, tomorrowAt(10, 0), tomorrowAt(11, 0), uuid.NewString())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var booking response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &booking))

		outcome := request.PaymentOutcomeRequest{BookingID: booking.ID, Outcome: "failed", PaymentRef: "pi_e2e_2"}
		ow := httptest.PerformRequest(t, s.Router, http.MethodPost, paymentOutcomeURL, outcome, "")
		require.Equal(t, http.StatusNoContent, ow.Code, ow.Body.String())

		cancelled := s.getBooking(t, token, booking.ID)
		require.Equal(t, "cancelled", cancelled.Status)

		// The cancelled booking no longer blocks the slot
		otherToken := e2e.MintToken(t, s.Config, uuid.New())
		rw := s.postBooking(t, otherToken, listingID, tomorrowAt(10, 0), tomorrowAt(11, 0), uuid.NewString())
		require.Equal(t, http.StatusCreated, rw.Code, rw.Body.String())
	})

	s.Run("success: renter cancels a pending booking", func() {
		t := s.T()

		listingID := dbtest.CreateTestListing(t, s.DB, uuid.New(), "Harbor Skiff", 2000)
		token := e2e.MintToken(t, s.Config, uuid.New())

		w := s.postBooking(t, token, listingID, tomorrowAt(10, 0), tomorrowAt(11, 0), uuid.NewString())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var booking response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &booking))

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+booking.ID.String()+"/cancel", nil, token)
		require.Equal(t, http.StatusNoContent, cw.Code, cw.Body.String())

		cancelled := s.getBooking(t, token, booking.ID)
		require.Equal(t, "cancelled", cancelled.Status)
	})

	s.Run("error: a confirmed booking cannot be cancelled", func() {
		t := s.T()

		listingID := dbtest.CreateTestListing(t, s.DB, uuid.New(), "Harbor Skiff", 2000)
		renterID := uuid.New()
		token := e2e.MintToken(t, s.Config, renterID)

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, listingID, renterID,
			now.Add(2*time.Hour), now.Add(3*time.Hour), "confirmed", 2000)

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+bookingID.String()+"/cancel", nil, token)
		httptest.AssertErrorResponse(t, cw, http.StatusConflict, "Cannot cancel")
	})

	s.Run("success: sweep moves elapsed confirmed bookings to completed", func() {
		t := s.T()

		listingID := dbtest.CreateTestListing(t, s.DB, uuid.New(), "Harbor Skiff", 2000)
		renterID := uuid.New()
		token := e2e.MintToken(t, s.Config, renterID)

		now := time.Now().UTC()
		elapsedID := dbtest.CreateTestBooking(t, s.DB, listingID, renterID,
			now.Add(-3*time.Hour), now.Add(-2*time.Hour), "confirmed", 2000)
		futureID := dbtest.CreateTestBooking(t, s.DB, listingID, renterID,
			now.Add(2*time.Hour), now.Add(3*time.Hour), "confirmed", 2000)

		sw := httptest.PerformRequest(t, s.Router, http.MethodPost, sweepURL, nil, "")
		require.Equal(t, http.StatusOK, sw.Code, sw.Body.String())
		var sweep response.SweepResponse
		require.NoError(t, httptest.DecodeResponseBody(t, sw.Body, &sweep))
		require.Equal(t, int64(1), sweep.Completed)

		require.Equal(t, "completed", s.getBooking(t, token, elapsedID).Status)
		require.Equal(t, "confirmed", s.getBooking(t, token, futureID).Status)

		// A second sweep finds nothing left to move
		sw2 := httptest.PerformRequest(t, s.Router, http.MethodPost, sweepURL, nil, "")
		require.Equal(t, http.StatusOK, sw2.Code, sw2.Body.String())
		var again response.SweepResponse
		require.NoError(t, httptest.DecodeResponseBody(t, sw2.Body, &again))
		require.Zero(t, again.Completed)

		require.Equal(t, "completed", s.getBooking(t, token, elapsedID).Status)
		require.Equal(t, "confirmed", s.getBooking(t, token, futureID).Status)
	})
}

// ================================================================================
// TestReviewFlow
// ================================================================================

func (s *BookingSuite) TestReviewFlow() {
	s.Run("success: completed booking can be reviewed and updates the listing rating", func() {
		t := s.T()

		listingID := dbtest.CreateTestListing(t, s.DB, uuid.New(), "Harbor Skiff", 2000)
		renterID := uuid.New()
		token := e2e.MintToken(t, s.Config, renterID)

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, listingID, renterID,
			now.Add(-3*time.Hour), now.Add(-2*time.Hour), "completed", 2000)

		reviewReq := request.CreateReviewRequest{BookingID: bookingID, Rating: 5, Comment: "Smooth ride"}
		rw := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, reviewReq, token)
		require.Equal(t, http.StatusCreated, rw.Code, rw.Body.String())

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/listings/"+listingID.String(), nil, "")
		require.Equal(t, http.StatusOK, lw.Code)
		var listing response.ListingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &listing))
		require.NotNil(t, listing.Rating)
		require.InDelta(t, 5.0, *listing.Rating, 0.001)
		require.Equal(t, int32(1), listing.ReviewCount)

		// Second review on the same booking is rejected
		rw2 := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, reviewReq, token)
		httptest.AssertErrorResponse(t, rw2, http.StatusConflict, "Review already exists")
	})

	s.Run("error: a booking that has not completed is not reviewable", func() {
		t := s.T()

		listingID := dbtest.CreateTestListing(t, s.DB, uuid.New(), "Harbor Skiff", 2000)
		renterID := uuid.New()
		token := e2e.MintToken(t, s.Config, renterID)

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, listingID, renterID,
			now.Add(2*time.Hour), now.Add(3*time.Hour), "confirmed", 2000)

		reviewReq := request.CreateReviewRequest{BookingID: bookingID, Rating: 4, Comment: ""}
		rw := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, reviewReq, token)
		httptest.AssertErrorResponse(t, rw, http.StatusUnprocessableEntity, "Booking not completed")
	})
}
