package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	catalogdomain "github.com/serendigo/pos/internal/catalog/domain"
	"github.com/serendigo/pos/internal/trade/builder"
	"github.com/serendigo/pos/internal/trade/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Defaults applied when the caller leaves header fields blank.
const (
	DefaultCashierCode = "9999999999"
	DefaultStoreCode   = "30"
	DefaultPOSNo       = "90"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Lookup catalogdomain.Lookup
	Repo   domain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	builder *builder.Builder
	repo    domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("trade.service"),
		builder: builder.New(p.Lookup),
		repo:    p.Repo,
	}
}

// Purchase validates the cart, computes totals and line drafts via the
// builder, then persists everything in one transaction. An empty cart yields
// the distinguished empty response without touching storage.
func (s *Service) Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResponse, error) {
	normalized, err := normalize(req)
	if err != nil {
		return nil, err
	}

	draft, err := s.builder.Build(ctx, normalized.Items)
	if err != nil {
		return nil, err
	}
	if draft.Empty {
		return &domain.PurchaseResponse{Status: domain.StatusEmpty}, nil
	}

	trade := &domain.Trade{
		Datetime:    time.Now().UTC(),
		CashierCode: &normalized.CashierCode,
		StoreCode:   &normalized.StoreCode,
		POSNo:       &normalized.POSID,
		Subtotal:    draft.Subtotal,
		Total:       draft.Total,
	}

	if err := s.repo.CreateWithDetails(ctx, s.db, trade, draft.Details); err != nil {
		s.log.Error("trade write failed",
			zap.Int64("trade_id", trade.ID),
			zap.Int64s("line_numbers", lineNumbers(draft.Details)),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Info("trade accepted",
		zap.Int64("trade_id", trade.ID),
		zap.Int("lines", len(draft.Details)),
		zap.Int64("subtotal", draft.Subtotal),
		zap.Int64("total", draft.Total),
	)

	return &domain.PurchaseResponse{
		ID:       trade.ID,
		Status:   domain.StatusAccepted,
		Success:  true,
		Subtotal: draft.Subtotal,
		Total:    draft.Total,
	}, nil
}

// normalize is the single validation and defaulting pass over the raw request.
func normalize(req domain.PurchaseRequest) (domain.PurchaseRequest, error) {
	out := domain.PurchaseRequest{
		CashierCode: orDefault(req.CashierCode, DefaultCashierCode),
		StoreCode:   orDefault(req.StoreCode, DefaultStoreCode),
		POSID:       orDefault(req.POSID, DefaultPOSNo),
		Items:       make([]domain.PurchaseItem, 0, len(req.Items)),
	}

	for i, item := range req.Items {
		code := strings.TrimSpace(item.ProductCode)
		if code == "" {
			return out, fmt.Errorf("%w: item %d", domain.ErrInvalidProductCode, i+1)
		}
		if item.Quantity <= 0 {
			return out, fmt.Errorf("%w: item %d", domain.ErrInvalidQuantity, i+1)
		}
		if item.UnitPrice != nil && *item.UnitPrice < 0 {
			return out, fmt.Errorf("%w: item %d", domain.ErrInvalidUnitPrice, i+1)
		}
		out.Items = append(out.Items, domain.PurchaseItem{
			ProductCode: code,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return out, nil
}

func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}

func lineNumbers(details []domain.TradeDetail) []int64 {
	nums := make([]int64, 0, len(details))
	for _, d := range details {
		if d.LineNo != nil {
			nums = append(nums, *d.LineNo)
		}
	}
	return nums
}
