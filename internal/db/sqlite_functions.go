package db

import (
	"database/sql/driver"
	"strings"
	"sync"

	gosqlite "github.com/glebarez/go-sqlite"
)

var (
	sqliteFunctionsOnce sync.Once
	sqliteFunctionsErr  error
)

// registerSQLiteFunctions swaps SQLite's ASCII-only lower() for a Unicode
// aware one on every connection opened afterwards, so LOWER(col) folds case
// the same way strings.ToLower does for the search term.
func registerSQLiteFunctions() error {
	sqliteFunctionsOnce.Do(func() {
		sqliteFunctionsErr = gosqlite.RegisterDeterministicScalarFunction("lower", 1, sqliteUnicodeLower)
	})
	return sqliteFunctionsErr
}

func sqliteUnicodeLower(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch value := args[0].(type) {
	case string:
		return strings.ToLower(value), nil
	case []byte:
		return strings.ToLower(string(value)), nil
	default:
		return value, nil
	}
}
