package repository

import (
	"context"
	"fmt"

	"github.com/serendigo/pos/internal/trade/domain"
	"github.com/serendigo/pos/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// CreateWithDetails commits the header and details as one transaction so a
// trade is never partially visible. Line numbers come in already assigned;
// the storage-level unique constraint on (TRD_ID, DTL_NO) is the final
// arbiter, and a violation rolls back the whole trade.
func (r *repo) CreateWithDetails(ctx context.Context, conn *gorm.DB, trade *domain.Trade, details []domain.TradeDetail) error {
	return conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Details").Create(trade).Error; err != nil {
			return fmt.Errorf("insert trade header: %w", err)
		}

		if len(details) == 0 {
			return nil
		}
		for i := range details {
			details[i].TradeID = trade.ID
		}
		if err := tx.Create(&details).Error; err != nil {
			if db.IsDuplicateKeyErr(err) {
				return fmt.Errorf("%w: %v", domain.ErrDetailConflict, err)
			}
			return fmt.Errorf("insert trade details: %w", err)
		}
		return nil
	})
}
