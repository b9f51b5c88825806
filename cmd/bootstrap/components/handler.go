package components

import (
	"rinto/internal/handler"
	"rinto/internal/handler/api"
	"rinto/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewListingHandler,
		api.NewReviewHandler,
		api.NewPaymentHandler,
		api.NewInternalHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
