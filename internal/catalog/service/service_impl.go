package service

import (
	"context"
	"strings"

	"github.com/serendigo/pos/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

// FindByCode resolves a scan code to a product, tolerating equivalent UPC-A /
// EAN-13 digit encodings. Candidates are tried in order; the first hit wins.
// A miss returns (nil, nil).
func (s *Service) FindByCode(ctx context.Context, code string) (*domain.Product, error) {
	for _, candidate := range codeCandidates(code) {
		p, err := s.repo.FindByCode(ctx, s.db, candidate)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	return nil, nil
}

// codeCandidates lists the scan codes equivalent to the input: the exact code,
// a 12-digit UPC-A promoted to its EAN-13 form, and a zero-prefixed EAN-13
// demoted to UPC-A.
func codeCandidates(code string) []string {
	exact := strings.TrimSpace(code)
	if exact == "" {
		return nil
	}
	candidates := []string{exact}

	digits := strings.ReplaceAll(exact, " ", "")
	if !isDigits(digits) {
		return candidates
	}
	switch {
	case len(digits) == 12:
		candidates = append(candidates, "0"+digits)
	case len(digits) == 13 && strings.HasPrefix(digits, "0"):
		candidates = append(candidates, digits[1:])
	}
	return candidates
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *Service) BulkUpsert(ctx context.Context, req domain.BulkUpsertRequest) (*domain.BulkUpsertResult, error) {
	result := &domain.BulkUpsertResult{}
	for _, item := range req.Items {
		code := strings.TrimSpace(item.Code)
		if code == "" {
			continue
		}
		name := strings.TrimSpace(item.Name)
		price := item.Price
		if price < 0 {
			price = 0
		}

		existing, err := s.repo.FindByCode(ctx, s.db, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if name != "" {
				existing.Name = name
			}
			existing.Price = price
			if err := s.repo.Update(ctx, s.db, existing); err != nil {
				return nil, err
			}
			result.Updated++
			continue
		}

		if name == "" {
			name = code
		}
		if err := s.repo.Create(ctx, s.db, &domain.Product{Code: code, Name: name, Price: price}); err != nil {
			return nil, err
		}
		result.Inserted++
	}

	count, err := s.repo.Count(ctx, s.db)
	if err != nil {
		return nil, err
	}
	result.Count = count

	s.log.Info("bulk upsert finished",
		zap.Int64("inserted", result.Inserted),
		zap.Int64("updated", result.Updated),
		zap.Int64("count", result.Count),
	)
	return result, nil
}

// Seed inserts sample products when the catalog is empty. Dev only.
func (s *Service) Seed(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx, s.db)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		samples := []domain.Product{
			{Code: "4901234567894", Name: "Sample A", Price: 150},
			{Code: "4900000000001", Name: "Sample B", Price: 300},
		}
		if err := s.repo.CreateAll(ctx, s.db, samples); err != nil {
			return 0, err
		}
	}
	return s.repo.Count(ctx, s.db)
}
