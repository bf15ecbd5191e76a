package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/serendigo/pos/internal/catalog/domain"
	"github.com/serendigo/pos/internal/trade/domain"
)

type lookupStub struct {
	products map[string]*catalogdomain.Product
	err      error
}

func (l *lookupStub) FindByCode(ctx context.Context, code string) (*catalogdomain.Product, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.products[code], nil
}

func int64p(v int64) *int64 { return &v }

func TestBuildComputesTotalsAndLineNumbers(t *testing.T) {
	lookup := &lookupStub{products: map[string]*catalogdomain.Product{
		"A": {ID: 1, Code: "A", Name: "Item A", Price: 100},
		"B": {ID: 2, Code: "B", Name: "Item B", Price: 300},
	}}

	draft, err := New(lookup).Build(context.Background(), []domain.PurchaseItem{
		{ProductCode: "A", Quantity: 2},
		{ProductCode: "B", Quantity: 1},
	})
	require.NoError(t, err)
	require.False(t, draft.Empty)

	assert.Equal(t, int64(500), draft.Subtotal)
	assert.Equal(t, int64(50), draft.Tax)
	assert.Equal(t, int64(550), draft.Total)

	require.Len(t, draft.Details, 2)
	for i, d := range draft.Details {
		require.NotNil(t, d.LineNo)
		assert.Equal(t, int64(i+1), *d.LineNo)
	}
	assert.Equal(t, "Item A", draft.Details[0].Name)
	assert.Equal(t, int64(100), draft.Details[0].Price)
	assert.Equal(t, int64(2), draft.Details[0].Quantity)
	require.NotNil(t, draft.Details[0].ProductID)
	assert.Equal(t, int64(1), *draft.Details[0].ProductID)
}

func TestBuildEmptyCart(t *testing.T) {
	draft, err := New(&lookupStub{}).Build(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, draft.Empty)
	assert.Zero(t, draft.Subtotal)
	assert.Zero(t, draft.Total)
	assert.Empty(t, draft.Details)
}

func TestBuildUnknownCodeKeepsLine(t *testing.T) {
	draft, err := New(&lookupStub{}).Build(context.Background(), []domain.PurchaseItem{
		{ProductCode: "no-such-code", Quantity: 3},
	})
	require.NoError(t, err)

	require.Len(t, draft.Details, 1)
	d := draft.Details[0]
	assert.Equal(t, "no-such-code", d.Code)
	assert.Equal(t, "no-such-code", d.Name)
	assert.Equal(t, int64(0), d.Price)
	assert.Nil(t, d.ProductID)
	assert.Zero(t, draft.Subtotal)
	assert.Zero(t, draft.Total)
}

func TestBuildUnitPriceOverride(t *testing.T) {
	lookup := &lookupStub{products: map[string]*catalogdomain.Product{
		"A": {ID: 1, Code: "A", Name: "Item A", Price: 100},
	}}

	draft, err := New(lookup).Build(context.Background(), []domain.PurchaseItem{
		{ProductCode: "A", Quantity: 2, UnitPrice: int64p(80)},
		{ProductCode: "unlisted", Quantity: 1, UnitPrice: int64p(40)},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(80), draft.Details[0].Price)
	assert.Equal(t, "Item A", draft.Details[0].Name)
	assert.Equal(t, int64(40), draft.Details[1].Price)
	assert.Equal(t, int64(200), draft.Subtotal)
	assert.Equal(t, int64(20), draft.Tax)
	assert.Equal(t, int64(220), draft.Total)
}

func TestBuildTaxFlooring(t *testing.T) {
	draft, err := New(&lookupStub{}).Build(context.Background(), []domain.PurchaseItem{
		{ProductCode: "X", Quantity: 1, UnitPrice: int64p(99)},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(99), draft.Subtotal)
	assert.Equal(t, int64(9), draft.Tax)
	assert.Equal(t, int64(108), draft.Total)
}
