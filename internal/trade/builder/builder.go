package builder

import (
	"context"

	catalogdomain "github.com/serendigo/pos/internal/catalog/domain"
	"github.com/serendigo/pos/internal/trade/domain"
)

// Draft is a fully computed trade awaiting persistence. Line numbers are
// assigned 1..N in cart order before any write happens.
type Draft struct {
	Empty    bool
	Subtotal int64
	Tax      int64
	Total    int64
	Details  []domain.TradeDetail
}

// Builder computes totals and line drafts for a cart. It performs one catalog
// lookup per item and has no other side effects.
type Builder struct {
	lookup catalogdomain.Lookup
}

func New(lookup catalogdomain.Lookup) *Builder {
	return &Builder{lookup: lookup}
}

// Build resolves each cart item against the catalog and computes per-line and
// aggregate amounts. Items must already be validated (non-empty code, positive
// quantity, non-negative override). An unknown code is not an error: the line
// is priced at 0 (or the override) and keeps the code as its name.
//
// Tax is a fixed flat 10%, floored via integer division.
func (b *Builder) Build(ctx context.Context, items []domain.PurchaseItem) (*Draft, error) {
	if len(items) == 0 {
		return &Draft{Empty: true}, nil
	}

	draft := &Draft{
		Details: make([]domain.TradeDetail, 0, len(items)),
	}

	for idx, item := range items {
		product, err := b.lookup.FindByCode(ctx, item.ProductCode)
		if err != nil {
			return nil, err
		}

		price := int64(0)
		name := item.ProductCode
		var productID *int64
		if product != nil {
			price = product.Price
			name = product.Name
			id := product.ID
			productID = &id
		}
		if item.UnitPrice != nil {
			price = *item.UnitPrice
		}

		lineNo := int64(idx + 1)
		taxCode := domain.TaxCodeStandard
		draft.Subtotal += price * item.Quantity
		draft.Details = append(draft.Details, domain.TradeDetail{
			LineNo:    &lineNo,
			ProductID: productID,
			Code:      item.ProductCode,
			Name:      name,
			Price:     price,
			TaxCode:   &taxCode,
			Quantity:  item.Quantity,
		})
	}

	draft.Tax = draft.Subtotal / 10
	draft.Total = draft.Subtotal + draft.Tax
	return draft, nil
}
