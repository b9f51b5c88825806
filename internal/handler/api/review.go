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
)

type ReviewHandler struct {
	reviewCommands commands.ReviewCommands
}

func NewReviewHandler(reviewCommands commands.ReviewCommands) *ReviewHandler {
	return &ReviewHandler{reviewCommands: reviewCommands}
}

// @Summary Create review
// @Description Leave a review on a completed booking. One review per booking.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReviewRequest true "Review attributes"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.reviewCommands.CreateReview(c.Request.Context(), userID, req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errors.Is(err, commands.ErrNotAllowed):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		case errors.Is(err, commands.ErrReviewNotEligible):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Booking not completed", nil)
		case errors.Is(err, commands.ErrDuplicateReview):
			httperr.AbortWithError(c, http.StatusConflict, err, "Review already exists", nil)
		case errors.Is(err, commands.ErrInvalidReview):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid review", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}
