package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rinto/internal/handler/api"
	"rinto/internal/handler/middleware"
	"rinto/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	bookingHandler *api.BookingHandler,
	listingHandler *api.ListingHandler,
	reviewHandler *api.ReviewHandler,
	paymentHandler *api.PaymentHandler,
	internalHandler *api.InternalHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, listingHandler, reviewHandler, paymentHandler, internalHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	listingHandler *api.ListingHandler,
	reviewHandler *api.ReviewHandler,
	paymentHandler *api.PaymentHandler,
	internalHandler *api.InternalHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	engine.POST("/internal/bookings/sweep", internalHandler.SweepElapsedBookings)

	apiGroup := engine.Group("/api")
	{
		listings := apiGroup.Group("/listings")
		{
			addRoutes(listings, []route{
				{Method: http.MethodGet, Path: "", Handler: listingHandler.ListListings},
				{Method: http.MethodGet, Path: "/:id", Handler: listingHandler.GetListing},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: listingHandler.GetAvailabilityWindows},
				{Method: http.MethodGet, Path: "/:id/reviews", Handler: listingHandler.ListListingReviews},
			})

			ownerRequired := listings.Group("")
			ownerRequired.Use(authMiddleware.RequireAuth())
			addRoutes(ownerRequired, []route{
				{Method: http.MethodPost, Path: "", Handler: listingHandler.CreateListing},
				{Method: http.MethodGet, Path: "/mine", Handler: listingHandler.ListMyListings},
				{Method: http.MethodPut, Path: "/:id", Handler: listingHandler.UpdateListing},
				{Method: http.MethodDelete, Path: "/:id", Handler: listingHandler.DeactivateListing},
				{Method: http.MethodPost, Path: "/:id/availability", Handler: listingHandler.AddAvailabilityWindow},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: listingHandler.ListListingBookings},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListMyBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/payment-intent", Handler: paymentHandler.CreatePaymentIntent},
			})
		}

		reviews := apiGroup.Group("/reviews")
		reviews.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reviews, []route{
				{Method: http.MethodPost, Path: "", Handler: reviewHandler.CreateReview},
			})
		}

		// Provider callback authenticates with a signature, not a user token.
		apiGroup.POST("/payments/outcome", paymentHandler.ReportPaymentOutcome)
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
