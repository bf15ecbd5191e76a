package toolkit

import (
	"context"
	"fmt"

	tradedomain "github.com/serendigo/pos/internal/trade/domain"
	"gorm.io/gorm"
)

// PeekTradeIDs lists every trade id on the handle, a quick sanity check after
// a copy run.
func PeekTradeIDs(ctx context.Context, conn *gorm.DB) ([]int64, error) {
	var ids []int64
	err := conn.WithContext(ctx).
		Model(&tradedomain.Trade{}).
		Order("TRD_ID asc").
		Pluck("TRD_ID", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("fetch trade ids: %w", err)
	}
	return ids, nil
}
