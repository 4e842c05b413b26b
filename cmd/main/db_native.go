//go:build !cgo_sqlite

package main

import (
	"database/sql"

	// Pure-Go SQLite driver, the default so the server cross-compiles
	// without a C toolchain.
	_ "modernc.org/sqlite"
)

// initDB opens the corpus database with the pure-Go driver.
func initDB(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite", dataSource)
}
