package toolkit

import (
	catalogdomain "github.com/serendigo/pos/internal/catalog/domain"
	tradedomain "github.com/serendigo/pos/internal/trade/domain"
	"gorm.io/gorm"
)

// Models lists every entity the toolkit operates on, in foreign-key dependency
// order: products before trades before trade details.
func Models() []interface{} {
	return []interface{}{
		&catalogdomain.Product{},
		&tradedomain.Trade{},
		&tradedomain.TradeDetail{},
	}
}

// EnsureSchema idempotently creates missing tables and indexes on the handle.
func EnsureSchema(conn *gorm.DB) error {
	return conn.AutoMigrate(Models()...)
}

// UniqueDetailIndex is the composite uniqueness constraint guarding per-trade
// line numbering.
const UniqueDetailIndex = "uq_trade_detail_per_trade"
