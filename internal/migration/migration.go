package migration

import (
	"fmt"

	"github.com/serendigo/pos/internal/toolkit"
	"gorm.io/gorm"
)

// Run creates missing tables and indexes at startup so the service is usable
// out of the box against a fresh database. It never drops or rewrites
// existing columns; structural repair of legacy databases is posctl doctor's
// job.
func Run(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("migration database handle is required")
	}
	if err := toolkit.EnsureSchema(conn); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
