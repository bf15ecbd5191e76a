package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Purchase turns a submitted cart into a durably recorded trade.
	Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResponse, error)
}

// PurchaseItem is one cart line. UnitPrice overrides the catalog price when
// present; it must be non-negative.
type PurchaseItem struct {
	ProductCode string `json:"product_code"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   *int64 `json:"unit_price,omitempty"`
}

type PurchaseRequest struct {
	CashierCode string         `json:"cashier_code,omitempty"`
	StoreCode   string         `json:"store_code,omitempty"`
	POSID       string         `json:"pos_id,omitempty"`
	Items       []PurchaseItem `json:"items"`
}

type PurchaseResponse struct {
	ID       int64  `json:"id"`
	Status   string `json:"status"`
	Success  bool   `json:"success"`
	Subtotal int64  `json:"subtotal"`
	Total    int64  `json:"total"`
}

const (
	StatusAccepted = "accepted"
	StatusEmpty    = "empty"
)

var (
	ErrInvalidProductCode = errors.New("invalid_product_code")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidUnitPrice   = errors.New("invalid_unit_price")

	// ErrDetailConflict reports a (TRD_ID, DTL_NO) uniqueness violation on
	// commit. The whole trade is rolled back.
	ErrDetailConflict = errors.New("trade_detail_conflict")
)
