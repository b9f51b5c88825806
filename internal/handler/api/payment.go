package api

import (
	"errors"
	"net/http"

	reqdto "rinto/internal/handler/dto/request"
	resdto "rinto/internal/handler/dto/response"
	"rinto/internal/handler/httperr"
	"rinto/internal/handler/middleware"
	"rinto/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{paymentCommands: paymentCommands}
}

// @Summary Create payment intent
// @Description Open a payment with the provider for a pending booking
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 201 {object} resdto.PaymentIntentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings/{id}/payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	intent, err := h.paymentCommands.CreatePaymentIntent(c.Request.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errors.Is(err, commands.ErrNotAllowed):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		case errors.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Not awaiting payment", nil)
		case errors.Is(err, commands.ErrPaymentGatewayFailed):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment provider unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPaymentIntent(intent))
}

// @Summary Report payment outcome
// @Description Callback from the payment provider with the final verdict
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentOutcomeRequest true "Payment outcome"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/outcome [post]
func (h *PaymentHandler) ReportPaymentOutcome(c *gin.Context) {
	var req reqdto.PaymentOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	outcome := commands.PaymentOutcome(req.Outcome)
	if err := h.paymentCommands.HandlePaymentOutcome(c.Request.Context(), req.BookingID, outcome, req.PaymentRef); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errors.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Already settled", nil)
		case errors.Is(err, commands.ErrSlotConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Slot conflict", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
