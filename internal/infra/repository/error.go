package repository

import (
	"errors"

	"rinto/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	pgForeignKeyViolated = "23503"
	pgExclusionViolation = "23P01"
)

var errNoRowsAffected = errors.New("no rows affected")

// wrapPgErr classifies pgx errors into repository error kinds. Exclusion
// constraint trips are reported as conflicts since the only exclusion
// constraint in the schema guards booking overlap.
func wrapPgErr(msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return infra.NewRepoErr(infra.KindNotFound, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return infra.NewRepoErr(infra.KindDuplicateKey, msg, err)
		case pgForeignKeyViolated:
			return infra.NewRepoErr(infra.KindForeignKeyViolated, msg, err)
		case pgExclusionViolation:
			return infra.NewRepoErr(infra.KindConflict, msg, err)
		}
	}
	return infra.NewRepoErr(infra.KindDBFailure, msg, err)
}
