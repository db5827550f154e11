package models

// Dashboard is a read-only summary over every product in the inventory.
type Dashboard struct {
	TotalProducts       int64            `json:"totalProducts"`
	InStockCount        int64            `json:"inStockCount"`
	LowStockCount       int64            `json:"lowStockCount"`
	OutOfStockCount     int64            `json:"outOfStockCount"`
	TotalInventoryValue float64          `json:"totalInventoryValue"`
	StockByCategory     map[string]int64 `json:"stockByCategory"`
}
