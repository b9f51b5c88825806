package readstore

import (
	"errors"

	"rinto/internal/infra"

	"github.com/jackc/pgx/v5"
)

func wrapPgErr(msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return infra.NewRepoErr(infra.KindNotFound, msg, err)
	}
	return infra.NewRepoErr(infra.KindDBFailure, msg, err)
}
