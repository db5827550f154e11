package services

import (
	"context"
	"io"

	"staffsync/internal/apperror"
	"staffsync/internal/models"
	"staffsync/internal/reports"
	"staffsync/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductInput is the data needed to create a product.
type CreateProductInput struct {
	Name          string  `json:"name" validate:"required"`
	Category      string  `json:"category" validate:"required"`
	Quantity      int     `json:"quantity"`
	MinStockLevel int     `json:"minStockLevel"`
	Price         float64 `json:"price"`
}

// UpdateProductInput is a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	Price         *float64 `json:"price"`
	MinStockLevel *int     `json:"minStockLevel"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	logger *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// GetDashboard aggregates every product. An empty inventory yields zero values.
func (s *ProductService) GetDashboard(ctx context.Context) (*models.Dashboard, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildDashboard(products), nil
}

func buildDashboard(products []models.Product) *models.Dashboard {
	d := &models.Dashboard{
		TotalProducts:   int64(len(products)),
		StockByCategory: make(map[string]int64),
	}

	total := decimal.Zero
	for i := range products {
		p := &products[i]
		switch p.Status {
		case models.StatusInStock:
			d.InStockCount++
		case models.StatusLowStock:
			d.LowStockCount++
		case models.StatusOutOfStock:
			d.OutOfStockCount++
		}
		total = total.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Quantity))))
		d.StockByCategory[p.Category] += int64(p.Quantity)
	}
	d.TotalInventoryValue = total.InexactFloat64()
	return d
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProductsByCategory returns the products of one category.
func (s *ProductService) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.repo.GetByCategory(ctx, category)
}

// SearchProducts matches keyword case-insensitively anywhere in the name.
func (s *ProductService) SearchProducts(ctx context.Context, keyword string) ([]models.Product, error) {
	return s.repo.SearchByName(ctx, keyword)
}

// GetLowStockProducts returns products at or below their minimum level, out of stock included.
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetLowStock(ctx)
}

// CreateProduct validates the input and persists a new product.
func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	product, err := models.NewProduct(in.Name, in.Category, in.Quantity, in.MinStockLevel, in.Price)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.String("id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// UpdateProduct applies a partial update to an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error) {
	return s.repo.UpdateWithLock(ctx, id, func(p *models.Product) error {
		return p.UpdateDetails(in.Name, in.Category, in.Price, in.MinStockLevel)
	})
}

// UpdateStock adds a positive amount or removes a negative one. Zero changes nothing and
// returns the product as stored.
func (s *ProductService) UpdateStock(ctx context.Context, id string, amount int) (*models.Product, error) {
	if amount == 0 {
		return s.repo.GetByID(ctx, id)
	}

	product, err := s.repo.UpdateWithLock(ctx, id, func(p *models.Product) error {
		if amount > 0 {
			return p.AddStock(amount)
		}
		return p.ReduceStock(-amount)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("stock adjusted",
		zap.String("id", id),
		zap.Int("amount", amount),
		zap.Int("quantity", product.Quantity),
		zap.String("status", string(product.Status)),
	)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return productNotFound(id)
	}
	return s.repo.Delete(ctx, id)
}

// ExportInventory writes every product and the dashboard summary as an xlsx workbook.
func (s *ProductService) ExportInventory(ctx context.Context, w io.Writer) error {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	return reports.WriteInventoryWorkbook(w, products, buildDashboard(products))
}

func productNotFound(id string) error {
	return apperror.NotFound("product with ID %s not found", id)
}
