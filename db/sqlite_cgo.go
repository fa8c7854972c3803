//go:build cgo

package db

import (
	"database/sql"

	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
)

func sqliteMigrationDriver(conn *sql.DB) (database.Driver, error) {
	return sqlite3.WithInstance(conn, &sqlite3.Config{})
}
