package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/copier-service-api/internal/domain"
)

// Querier operaciones comunes a *pgxpool.Pool y pgx.Tx; los repositorios aceptan cualquiera.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// wrapErr registra el fallo y lo envuelve como *domain.RepositoryError ("<op>: <mensaje>").
// Las violaciones de unicidad además coinciden con domain.ErrDuplicate.
func wrapErr(op string, err error) error {
	if isUniqueViolation(err) {
		err = fmt.Errorf("%w: %w", domain.ErrDuplicate, err)
	}
	log.Error().Err(err).Str("op", op).Msg("repository operation failed")
	return &domain.RepositoryError{Op: op, Err: err}
}

// notFoundRow fila ausente en una escritura dirigida por ID.
func notFoundRow(op, id string) error {
	return wrapErr(op, fmt.Errorf("record %s not found", id))
}

// isNoRows informa si err es la ausencia de filas de pgx.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
