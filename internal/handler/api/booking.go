package api

import (
	"errors"
	"net/http"

	reqdto "rinto/internal/handler/dto/request"
	resdto "rinto/internal/handler/dto/response"
	"rinto/internal/handler/httperr"
	"rinto/internal/handler/middleware"
	"rinto/internal/usecase/commands"
	"rinto/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Request a booking for a listing time slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency-Key header required", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.bookingCommands.AdmitBooking(c.Request.Context(), req.ToCommand(), userID, idempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidInterval):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking interval", nil)
		case errors.Is(err, commands.ErrPastStartTime):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Start time is in the past", nil)
		case errors.Is(err, commands.ErrListingUnavailable):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Listing unavailable", nil)
		case errors.Is(err, commands.ErrOutsideAvailability):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Outside availability", nil)
		case errors.Is(err, commands.ErrSlotConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Slot conflict", nil)
		case errors.Is(err, commands.ErrDuplicateRequest):
			httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency key reused", nil)
		case errors.Is(err, commands.ErrRequestInProgress):
			httperr.AbortWithError(c, http.StatusConflict, err, "Request in progress", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromBookingView(result.Booking))
}

// @Summary Get booking
// @Description Get booking by ID. Visible to the renter and the listing owner.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errors.Is(err, queries.ErrViewNotAllowed):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List my bookings
// @Description List bookings made by the authenticated user
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	views, err := h.bookingQueries.ListByRenter(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Cancel booking
// @Description Cancel a pending booking. Only the renter may cancel.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	if err := h.bookingCommands.CancelBooking(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errors.Is(err, commands.ErrNotAllowed):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		case errors.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Cannot cancel", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
