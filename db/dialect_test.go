package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestDialect_Rebind(t *testing.T) {
	query := `SELECT id FROM tasks WHERE id = ? AND todo_list_id IN (SELECT id FROM todo_lists WHERE user_id = ?)`

	assert.Equal(t, query, DialectSQLite.rebind(query))
	assert.Equal(t,
		`SELECT id FROM tasks WHERE id = $1 AND todo_list_id IN (SELECT id FROM todo_lists WHERE user_id = $2)`,
		DialectPostgres.rebind(query))
}

func TestIsUniqueViolation(t *testing.T) {
	sqliteUnique := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
	sqliteFK := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}

	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", sqliteUnique)))
	assert.False(t, isUniqueViolation(sqliteFK))
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("database is locked")))
}
