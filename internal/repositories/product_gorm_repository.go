package repositories

import (
	"context"
	"errors"
	"fmt"

	"staffsync/internal/apperror"
	"staffsync/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, productNotFound(id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByCategory retrieves the products of one category.
func (r *GORMProductRepository) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("category = ?", category).Order("created_at, id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products in category %s: %w", category, err)
	}
	return products, nil
}

// SearchByName matches keyword anywhere in the product name, ignoring case.
func (r *GORMProductRepository) SearchByName(ctx context.Context, keyword string) ([]models.Product, error) {
	var products []models.Product
	query := nameContains(r.db.WithContext(ctx), keyword).Order("created_at, id")
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products by %q: %w", keyword, err)
	}
	return filterByName(products, keyword, func(p models.Product) string { return p.Name }), nil
}

// GetLowStock returns products at or below their minimum stock level, out of stock included.
func (r *GORMProductRepository) GetLowStock(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("quantity <= min_stock_level").Order("quantity, id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get low stock products: %w", err)
	}
	return products, nil
}

// Count returns the number of stored products.
func (r *GORMProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Exists reports whether a product with the given ID is stored.
func (r *GORMProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product %s: %w", id, err)
	}
	return count > 0, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateWithLock runs fn against the locked row and persists the result.
func (r *GORMProductRepository) UpdateWithLock(ctx context.Context, id string, fn func(*models.Product) error) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return productNotFound(id)
			}
			return fmt.Errorf("failed to lock product %s: %w", id, err)
		}
		if err := fn(&product); err != nil {
			return err
		}
		if err := tx.Save(&product).Error; err != nil {
			return fmt.Errorf("failed to update product %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return productNotFound(id)
	}
	return nil
}

func productNotFound(id string) error {
	return apperror.NotFound("product with ID %s not found", id)
}
