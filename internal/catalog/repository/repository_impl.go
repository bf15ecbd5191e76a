package repository

import (
	"context"
	"errors"

	"github.com/serendigo/pos/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Where("CODE = ?", code).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) CreateAll(ctx context.Context, db *gorm.DB, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&products).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products SET NAME = ?, PRICE = ? WHERE PRD_ID = ?`,
		product.Name,
		product.Price,
		product.ID,
	).Error
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error
	return count, err
}
