package components

import (
	"rinto/internal/infra/db"
	"rinto/internal/infra/readstore"
	"rinto/internal/infra/repository"
	"rinto/internal/infra/uow"
	"rinto/internal/usecase/queries"
	"rinto/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewListingReadStore,
			fx.As(new(queries.ListingReadStore)),
		),
		fx.Annotate(
			readstore.NewReviewReadStore,
			fx.As(new(queries.ReviewReadStore)),
		),
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(shared.IdempotencyRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
