package domain

import (
	"context"
	"errors"
)

// Lookup is the read-only view consumed by the trade builder. A miss is not
// an error: the product pointer is nil.
type Lookup interface {
	FindByCode(ctx context.Context, code string) (*Product, error)
}

type Service interface {
	Lookup
	BulkUpsert(ctx context.Context, req BulkUpsertRequest) (*BulkUpsertResult, error)
	Seed(ctx context.Context) (int64, error)
}

type BulkUpsertItem struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type BulkUpsertRequest struct {
	Items []BulkUpsertItem `json:"items"`
}

type BulkUpsertResult struct {
	Inserted int64 `json:"inserted"`
	Updated  int64 `json:"updated"`
	Count    int64 `json:"count"`
}

var ErrInvalidCode = errors.New("invalid_code")
