package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/proman-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: el registro está referenciado (o referencia uno inexistente).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// dbError envuelve un fallo del driver como domain.ErrDatabase. Las violaciones de
// unicidad y de clave foránea se reportan como domain.ErrConflict.
func dbError(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s: registro duplicado", domain.ErrConflict, op)
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s: el registro está en uso", domain.ErrConflict, op)
	}
	return domain.DatabaseError("postgres: "+op, err)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

// where acumula condiciones AND con placeholders numerados.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
