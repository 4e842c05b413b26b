//go:build cgo_sqlite

package main

import (
	"database/sql"

	// Cgo SQLite driver, selected with -tags cgo_sqlite when native
	// performance matters more than easy cross-compilation.
	_ "github.com/mattn/go-sqlite3"
)

// initDB opens the corpus database with the cgo driver.
func initDB(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite3", dataSource)
}
