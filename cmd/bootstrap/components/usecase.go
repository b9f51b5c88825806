package components

import (
	"time"

	"rinto/internal/domain/availability"
	"rinto/internal/domain/booking"
	"rinto/internal/infra/payment"
	"rinto/internal/pkg/clock"
	"rinto/internal/pkg/config"
	"rinto/internal/usecase/commands"
	"rinto/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewHalfHourPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	NewAvailabilityPolicy,
	fx.Annotate(
		NewPaymentGateway,
		fx.As(new(commands.PaymentGateway)),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewListingQueries,
		queries.NewReviewQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewPaymentCommands,
		commands.NewListingCommands,
		commands.NewReviewCommands,
	),
)

func NewAvailabilityPolicy(cfg config.Config) (commands.AvailabilityPolicy, error) {
	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		return commands.AvailabilityPolicy{}, err
	}
	return commands.AvailabilityPolicy{
		Day: availability.DayPolicy{
			OpenStartMin:     cfg.Booking.DefaultOpenStartMin,
			OpenEndMin:       cfg.Booking.DefaultOpenEndMin,
			EmptyMeansClosed: cfg.Booking.EmptyMeansClosed,
		},
		Location: loc,
	}, nil
}

func NewPaymentGateway(cfg config.Config) *payment.HTTPGateway {
	return payment.NewHTTPGateway(cfg.Payment)
}
