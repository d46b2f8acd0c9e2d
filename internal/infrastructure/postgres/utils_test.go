package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/proman-api/internal/domain"
)

func TestWhere(t *testing.T) {
	w := &where{}
	assert.Empty(t, w.String())

	w.add("user_id = ?", "u-1")
	w.add("date >= ?", "2025-01-01")
	assert.Equal(t, " WHERE user_id = $1 AND date >= $2", w.String())
	assert.Equal(t, []any{"u-1", "2025-01-01"}, w.args)
}

func TestDBError(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	fk := &pgconn.PgError{Code: "23503"}
	other := errors.New("conexión rechazada")

	assert.ErrorIs(t, dbError("insertar", unique), domain.ErrConflict)
	assert.ErrorIs(t, dbError("eliminar", fk), domain.ErrConflict)

	err := dbError("listar", other)
	assert.ErrorIs(t, err, domain.ErrDatabase)
	assert.ErrorIs(t, err, other, "se conserva la causa")
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", *nullIfEmpty("x"))
	assert.Equal(t, "", derefStr(nil))
}
