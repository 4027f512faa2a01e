package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/stock-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// repoErr envuelve el error del driver en domain.RepositoryError.
func repoErr(op string, err error) error {
	if isUniqueViolation(err) {
		return &domain.RepositoryError{Op: op, Err: domain.ErrDuplicate}
	}
	return &domain.RepositoryError{Op: op, Err: err}
}
