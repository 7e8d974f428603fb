package dbutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFinalizePostgresRebindsAndSwapsLimit(t *testing.T) {
	query, args := Finalize(DriverPostgres, "SELECT v FROM t WHERE k = ? LIMIT ?,?", []interface{}{"key", 10, 5})
	require.Equal(t, "SELECT v FROM t WHERE k = $1 LIMIT $2 OFFSET $3", query)
	require.Equal(t, []interface{}{"key", 5, 10}, args)
}

func TestFinalizeSQLiteKeepsQuestionMarks(t *testing.T) {
	query, args := Finalize(DriverSQLite, "DELETE FROM t WHERE k = ?", []interface{}{"key"})
	require.Equal(t, "DELETE FROM t WHERE k = ?", query)
	require.Equal(t, []interface{}{"key"}, args)
}

func TestIsFullIgnoresOtherErrors(t *testing.T) {
	require.False(t, IsFull(nil))
	require.False(t, IsFull(errString("boom")))
}

type errString string

func (e errString) Error() string { return string(e) }
