//go:build !cgo

package db

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4/database"
)

func sqliteMigrationDriver(*sql.DB) (database.Driver, error) {
	return nil, errors.New("sqlite3 support requires a cgo build")
}
