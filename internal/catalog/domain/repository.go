package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Product, error)
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	CreateAll(ctx context.Context, db *gorm.DB, products []Product) error
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
