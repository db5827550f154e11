package handlers

import (
	"bytes"
	"fmt"
	"time"

	"staffsync/internal/reports"
	"staffsync/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       newValidator(),
		logger:         logger,
	}
}

// RegisterRoutes registers the product routes. Fixed paths come before /:id.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.GetAllProducts)
	productRoutes.Get("/dashboard", h.GetDashboard)
	productRoutes.Get("/low-stock", h.GetLowStockProducts)
	productRoutes.Get("/export", h.ExportInventory)
	productRoutes.Get("/search", h.SearchProducts)
	productRoutes.Get("/category/:category", h.GetProductsByCategory)
	productRoutes.Get("/:id", h.GetProductByID)
	productRoutes.Post("/", h.CreateProduct)
	productRoutes.Put("/:id", h.UpdateProduct)
	productRoutes.Patch("/:id/stock", h.UpdateStock)
	productRoutes.Patch("/:id/stock/increase", h.IncreaseStock)
	productRoutes.Patch("/:id/stock/decrease", h.DecreaseStock)
	productRoutes.Delete("/:id", h.DeleteProduct)
}

// GetAllProducts lists every product.
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(products)
}

// GetDashboard returns the inventory summary.
func (h *ProductHandler) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := h.productService.GetDashboard(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dashboard)
}

// GetLowStockProducts lists products at or below their minimum stock level.
func (h *ProductHandler) GetLowStockProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetLowStockProducts(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(products)
}

// ExportInventory streams the inventory as an xlsx attachment.
func (h *ProductHandler) ExportInventory(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.productService.ExportInventory(c.UserContext(), &buf); err != nil {
		return writeError(c, h.logger, err)
	}
	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, reports.ContentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// SearchProducts handles GET /products/search?keyword=.
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	products, err := h.productService.SearchProducts(c.UserContext(), c.Query("keyword"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(products)
}

// GetProductsByCategory lists the products of one category.
func (h *ProductHandler) GetProductsByCategory(c *fiber.Ctx) error {
	products, err := h.productService.GetProductsByCategory(c.UserContext(), c.Params("category"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(products)
}

// GetProductByID returns one product.
func (h *ProductHandler) GetProductByID(c *fiber.Ctx) error {
	product, err := h.productService.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(product)
}

// CreateProduct adds a product and answers 201.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req services.CreateProductInput
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	product, err := h.productService.CreateProduct(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct applies a partial update to a product.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req services.UpdateProductInput
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	product, err := h.productService.UpdateProduct(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(product)
}

// StockRequest carries a signed stock adjustment.
type StockRequest struct {
	Amount *int `json:"amount" validate:"required"`
}

// UpdateStock adds a positive amount or removes a negative one.
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	var req StockRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	return h.adjustStock(c, *req.Amount)
}

// IncreaseStock handles PATCH /products/:id/stock/increase?amount=.
func (h *ProductHandler) IncreaseStock(c *fiber.Ctx) error {
	amount, ok := positiveAmount(c)
	if !ok {
		return amountRequired(c)
	}
	return h.adjustStock(c, amount)
}

// DecreaseStock handles PATCH /products/:id/stock/decrease?amount=.
func (h *ProductHandler) DecreaseStock(c *fiber.Ctx) error {
	amount, ok := positiveAmount(c)
	if !ok {
		return amountRequired(c)
	}
	return h.adjustStock(c, -amount)
}

func (h *ProductHandler) adjustStock(c *fiber.Ctx, amount int) error {
	product, err := h.productService.UpdateStock(c.UserContext(), c.Params("id"), amount)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(product)
}

func positiveAmount(c *fiber.Ctx) (int, bool) {
	amount := c.QueryInt("amount", 0)
	return amount, amount > 0
}

func amountRequired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "amount must be a whole number greater than zero",
		"field":   "amount",
	})
}

// DeleteProduct removes a product and answers 204.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.productService.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
