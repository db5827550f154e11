package models

import (
	"math"
	"strings"
	"time"

	"staffsync/internal/apperror"
)

// StockStatus classifies how well stocked a product is.
type StockStatus string

const (
	StatusInStock    StockStatus = "IN_STOCK"
	StatusLowStock   StockStatus = "LOW_STOCK"
	StatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

// Severity orders statuses from healthy (0) to worst (2).
func (s StockStatus) Severity() int {
	switch s {
	case StatusOutOfStock:
		return 2
	case StatusLowStock:
		return 1
	default:
		return 0
	}
}

// ComputeStatus derives the stock status from a quantity and its minimum stock level.
func ComputeStatus(quantity, minStockLevel int) StockStatus {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity <= minStockLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// MaxQuantity is the largest stock quantity a product can hold. It stays within a 32-bit
// integer column on every supported database.
const MaxQuantity = math.MaxInt32

// timeNow is swapped in tests.
var timeNow = time.Now

// Product is an inventory item. Status is derived from Quantity and MinStockLevel and is
// only ever written by the entity itself; mutate through AddStock, ReduceStock and
// UpdateDetails.
type Product struct {
	ID            string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string      `json:"name" gorm:"type:varchar(100);not null"`
	Category      string      `json:"category" gorm:"type:varchar(50);not null;index"`
	Quantity      int         `json:"quantity" gorm:"not null"`
	MinStockLevel int         `json:"minStockLevel" gorm:"not null"`
	Price         float64     `json:"price" gorm:"not null"`
	Status        StockStatus `json:"status" gorm:"type:varchar(20);index"`
	CreatedAt     time.Time   `json:"createdAt" gorm:"autoCreateTime:false;<-:create"`
	UpdatedAt     time.Time   `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

// NewProduct validates its input and returns a product with its status computed.
func NewProduct(name, category string, quantity, minStockLevel int, price float64) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperror.Validation("name", "name must not be blank")
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := validateMinStockLevel(minStockLevel); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	now := timeNow()
	p := &Product{
		Name:          name,
		Category:      category,
		Quantity:      quantity,
		MinStockLevel: minStockLevel,
		Price:         price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	p.Status = ComputeStatus(p.Quantity, p.MinStockLevel)
	return p, nil
}

// AddStock increases the quantity by amount. It fails without changing the product when
// the result would exceed MaxQuantity.
func (p *Product) AddStock(amount int) error {
	if amount <= 0 {
		return apperror.Validation("amount", "stock increase amount must be greater than zero")
	}
	if amount > MaxQuantity-p.Quantity {
		return apperror.Validation("amount", "stock increase of %d exceeds the maximum quantity %d (current %d)", amount, MaxQuantity, p.Quantity)
	}
	p.Quantity += amount
	p.touch()
	return nil
}

// ReduceStock decreases the quantity by amount. It fails without changing the product
// when amount exceeds the current quantity.
func (p *Product) ReduceStock(amount int) error {
	if amount <= 0 {
		return apperror.Validation("amount", "stock decrease amount must be greater than zero")
	}
	if amount > p.Quantity {
		return apperror.Validation("amount", "insufficient stock: requested %d, available %d", amount, p.Quantity)
	}
	p.Quantity -= amount
	p.touch()
	return nil
}

// UpdateDetails applies a partial update. Nil fields are left alone and blank strings
// are ignored. Price and minStockLevel are validated before anything is changed.
func (p *Product) UpdateDetails(name, category *string, price *float64, minStockLevel *int) error {
	if price != nil {
		if err := validatePrice(*price); err != nil {
			return err
		}
	}
	if minStockLevel != nil {
		if err := validateMinStockLevel(*minStockLevel); err != nil {
			return err
		}
	}

	if name != nil && strings.TrimSpace(*name) != "" {
		p.Name = *name
	}
	if category != nil && strings.TrimSpace(*category) != "" {
		p.Category = *category
	}
	if price != nil {
		p.Price = *price
	}
	if minStockLevel != nil {
		p.MinStockLevel = *minStockLevel
	}
	// a new minimum can flip the status even though quantity is unchanged
	p.touch()
	return nil
}

// InventoryValue is price times quantity.
func (p *Product) InventoryValue() float64 {
	return p.Price * float64(p.Quantity)
}

// IsLowStock reports whether the quantity is at or below the minimum, out of stock included.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStockLevel
}

func (p *Product) touch() {
	p.Status = ComputeStatus(p.Quantity, p.MinStockLevel)
	p.UpdatedAt = timeNow()
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return apperror.Validation("quantity", "quantity must be zero or greater")
	}
	if quantity > MaxQuantity {
		return apperror.Validation("quantity", "quantity must not exceed %d", MaxQuantity)
	}
	return nil
}

func validateMinStockLevel(minStockLevel int) error {
	if minStockLevel < 0 {
		return apperror.Validation("minStockLevel", "minStockLevel must be zero or greater")
	}
	return nil
}

func validatePrice(price float64) error {
	if price <= 0 {
		return apperror.Validation("price", "price must be greater than zero")
	}
	return nil
}
