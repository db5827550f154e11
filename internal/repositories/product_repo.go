package repositories

import (
	"context"

	"staffsync/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByCategory(ctx context.Context, category string) ([]models.Product, error)
	SearchByName(ctx context.Context, keyword string) ([]models.Product, error)
	GetLowStock(ctx context.Context) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	// UpdateWithLock loads the product under a row lock, applies fn and saves the result
	// in the same transaction. Nothing is written when fn returns an error.
	UpdateWithLock(ctx context.Context, id string, fn func(*models.Product) error) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}
