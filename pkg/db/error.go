package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Substrings identifying a primary-key or unique violation per backend. The
// drivers return plain errors, so message sniffing is the only portable
// check; numeric codes cover drivers that omit the prose.
var duplicateKeyMarkers = []string{
	// PostgreSQL, error code 23505
	"duplicate key value violates unique constraint",
	"SQLSTATE 23505",
	// MySQL, error code 1062
	"Error 1062",
	"Duplicate entry",
	// SQLite, result codes 1555 (pk) and 2067 (unique)
	"UNIQUE constraint failed",
	"constraint failed (1555)",
	"constraint failed (2067)",
}

// IsDuplicateKeyErr reports whether err is a primary-key or unique-constraint
// violation on any of the supported backends.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()
	for _, marker := range duplicateKeyMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
