package domain

import "time"

// Trade is one completed purchase transaction. Column names follow the legacy
// schema so the reconciliation toolkit can address live databases directly.
type Trade struct {
	ID          int64     `json:"id" gorm:"column:TRD_ID;primaryKey;autoIncrement"`
	Datetime    time.Time `json:"datetime" gorm:"column:DATETIME"`
	CashierCode *string   `json:"cashier_code" gorm:"column:EMP_CD;type:varchar(32)"`
	StoreCode   *string   `json:"store_code" gorm:"column:STORE_CD;type:varchar(32)"`
	POSNo       *string   `json:"pos_no" gorm:"column:POS_NO;type:varchar(32)"`
	Subtotal    int64     `json:"subtotal" gorm:"column:TTL_AMT_EX_TAX;not null;default:0"`
	Total       int64     `json:"total" gorm:"column:TOTAL_AMT;not null;default:0"`

	Details []TradeDetail `json:"details,omitempty" gorm:"foreignKey:TradeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Trade) TableName() string { return "trades" }

// TradeDetail is one product line within a trade. LineNo is 1-based and unique
// within its trade; it is nullable only because legacy imports produced rows
// without one, which the gap-repair tooling fixes. Product fields are
// snapshotted at time of sale so history survives catalog edits.
type TradeDetail struct {
	ID        int64   `json:"dtlId" gorm:"column:DTL_ID;primaryKey;autoIncrement"`
	TradeID   int64   `json:"tradeId" gorm:"column:TRD_ID;not null;uniqueIndex:uq_trade_detail_per_trade,priority:1"`
	LineNo    *int64  `json:"lineNo" gorm:"column:DTL_NO;uniqueIndex:uq_trade_detail_per_trade,priority:2"`
	ProductID *int64  `json:"prdId" gorm:"column:PRD_ID"`
	Code      string  `json:"code" gorm:"column:PRD_CODE;type:varchar(64);not null"`
	Name      string  `json:"name" gorm:"column:PRD_NAME;type:varchar(255);not null"`
	Price     int64   `json:"price" gorm:"column:PRD_PRICE;not null"`
	TaxCode   *string `json:"taxCode" gorm:"column:TAX_CD;type:varchar(8)"`
	Quantity  int64   `json:"quantity" gorm:"column:QTY;not null;default:1"`
}

func (TradeDetail) TableName() string { return "trade_details" }

// TaxCodeStandard is the only tax category currently issued. The column is
// inert metadata: the applied rate never varies by it.
const TaxCodeStandard = "10"
