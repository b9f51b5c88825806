package api

import (
	"net/http"

	resdto "rinto/internal/handler/dto/response"
	"rinto/internal/handler/httperr"
	"rinto/internal/pkg/clock"
	"rinto/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// InternalHandler serves operator endpoints. They are mounted outside
// the public /api group and expected to be reachable only from inside
// the deployment.
type InternalHandler struct {
	bookingCommands commands.BookingCommands
	clock           clock.Clock
}

func NewInternalHandler(bookingCommands commands.BookingCommands, clk clock.Clock) *InternalHandler {
	return &InternalHandler{bookingCommands: bookingCommands, clock: clk}
}

// @Summary Sweep elapsed bookings
// @Description Move confirmed bookings whose end time has passed to completed
// @Tags internal
// @Produce json
// @Success 200 {object} resdto.SweepResponse
// @Router /internal/bookings/sweep [post]
func (h *InternalHandler) SweepElapsedBookings(c *gin.Context) {
	moved, err := h.bookingCommands.CompleteElapsedBookings(c.Request.Context(), h.clock.Now())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.SweepResponse{Completed: moved})
}
