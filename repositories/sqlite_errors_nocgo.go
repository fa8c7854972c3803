//go:build !cgo

package repositories

func sqliteUniqueViolation(error) bool { return false }

func sqliteForeignKeyViolation(error) bool { return false }
