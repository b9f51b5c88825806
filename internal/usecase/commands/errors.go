package commands

import (
	"rinto/internal/pkg/errs"
)

// Failure kinds surfaced by the booking core. Each maps 1:1 to a
// machine-readable API error code; the handler layer owns the HTTP
// translation.
var (
	ErrInvalidInterval     = errs.New("invalid booking interval")
	ErrPastStartTime       = errs.New("booking start time is in the past")
	ErrListingUnavailable  = errs.New("listing is inactive or missing")
	ErrOutsideAvailability = errs.New("requested interval is outside available windows")
	ErrSlotConflict        = errs.New("requested interval conflicts with an existing booking")
	ErrInvalidTransition   = errs.New("booking status transition not allowed")

	ErrBookingNotFound = errs.New("booking not found")
	ErrListingNotFound = errs.New("listing not found")
	ErrNotAllowed      = errs.New("caller is not allowed to act on this resource")

	ErrReviewNotEligible = errs.New("booking is not eligible for review")
	ErrDuplicateReview   = errs.New("review already exists for this booking")
	ErrInvalidReview     = errs.New("invalid review attributes")

	ErrInvalidListing = errs.New("invalid listing attributes")
	ErrInvalidWindow  = errs.New("invalid availability window")

	ErrDuplicateRequest  = errs.New("idempotency key reused with different parameters")
	ErrRequestInProgress = errs.New("request with this idempotency key is in progress")

	ErrPaymentGatewayFailed = errs.New("payment gateway call failed")
	ErrInternal             = errs.New("internal error")
)
