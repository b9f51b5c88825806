package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "rinto/internal/handler/dto/request"
	resdto "rinto/internal/handler/dto/response"
	"rinto/internal/handler/httperr"
	"rinto/internal/handler/middleware"
	"rinto/internal/usecase/commands"
	"rinto/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListingHandler struct {
	listingCommands commands.ListingCommands
	listingQueries  queries.ListingQueries
	bookingQueries  queries.BookingQueries
	reviewQueries   queries.ReviewQueries
}

func NewListingHandler(
	listingCommands commands.ListingCommands,
	listingQueries queries.ListingQueries,
	bookingQueries queries.BookingQueries,
	reviewQueries queries.ReviewQueries,
) *ListingHandler {
	return &ListingHandler{
		listingCommands: listingCommands,
		listingQueries:  listingQueries,
		bookingQueries:  bookingQueries,
		reviewQueries:   reviewQueries,
	}
}

// @Summary Create listing
// @Description Publish a new watercraft listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateListingRequest true "Listing attributes"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.listingCommands.CreateListing(c.Request.Context(), userID, req.ToCommand())
	if err != nil {
		if errors.Is(err, commands.ErrInvalidListing) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Get listing
// @Description Get a listing with its aggregate rating
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.listingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrListingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

// @Summary List active listings
// @Description Browse active listings, newest first
// @Tags listings
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} resdto.ListingResponse
// @Router /listings [get]
func (h *ListingHandler) ListListings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	views, err := h.listingQueries.ListActive(c.Request.Context(), limit, offset)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingViews(views))
}

// @Summary List my listings
// @Description List listings owned by the authenticated user
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ListingResponse
// @Failure 401 {object} map[string]string
// @Router /listings/mine [get]
func (h *ListingHandler) ListMyListings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	views, err := h.listingQueries.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingViews(views))
}

// @Summary Update listing
// @Description Update a listing's details. Owner only.
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.UpdateListingRequest true "Listing attributes"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [put]
func (h *ListingHandler) UpdateListing(c *gin.Context) {
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

	var req reqdto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err := h.listingCommands.UpdateListing(c.Request.Context(), id, userID, req.ToCommand()); err != nil {
		h.writeListingCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Deactivate listing
// @Description Take a listing off the marketplace. Owner only.
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [delete]
func (h *ListingHandler) DeactivateListing(c *gin.Context) {
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

	if err := h.listingCommands.DeactivateListing(c.Request.Context(), id, userID); err != nil {
		h.writeListingCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Add availability window
// @Description Declare an availability window on a date. Owner only.
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.AddWindowRequest true "Window attributes"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id}/availability [post]
func (h *ListingHandler) AddAvailabilityWindow(c *gin.Context) {
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

	var req reqdto.AddWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	windowID, err := h.listingCommands.AddAvailabilityWindow(c.Request.Context(), id, userID, req.ToCommand())
	if err != nil {
		h.writeListingCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: windowID})
}

// @Summary Get availability windows
// @Description List the declared availability windows for a date
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.AvailabilityWindowResponse
// @Failure 400 {object} map[string]string
// @Router /listings/{id}/availability [get]
func (h *ListingHandler) GetAvailabilityWindows(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	views, err := h.listingQueries.WindowsForDate(c.Request.Context(), id, date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromWindowViews(views))
}

// @Summary List listing bookings
// @Description List the bookings on a listing. Owner only.
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /listings/{id}/bookings [get]
func (h *ListingHandler) ListListingBookings(c *gin.Context) {
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

	views, err := h.bookingQueries.ListByListing(c.Request.Context(), userID, id)
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

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary List listing reviews
// @Description List the reviews left on a listing
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {array} resdto.ReviewResponse
// @Failure 400 {object} map[string]string
// @Router /listings/{id}/reviews [get]
func (h *ListingHandler) ListListingReviews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	views, err := h.reviewQueries.ListByListing(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReviewViews(views))
}

func (h *ListingHandler) writeListingCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrListingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, commands.ErrNotAllowed):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
	case errors.Is(err, commands.ErrInvalidListing):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing", nil)
	case errors.Is(err, commands.ErrInvalidWindow):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid window", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
