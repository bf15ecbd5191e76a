package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// CreateWithDetails inserts the trade header and all details in one
	// transaction. The generated trade id is written back to trade.ID and
	// attached to every detail. Returns ErrDetailConflict wrapped around the
	// driver error on a (TRD_ID, DTL_NO) uniqueness violation.
	CreateWithDetails(ctx context.Context, db *gorm.DB, trade *Trade, details []TradeDetail) error
}
