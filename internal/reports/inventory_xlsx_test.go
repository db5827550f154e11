package reports_test

import (
	"bytes"
	"testing"
	"time"

	"staffsync/internal/models"
	"staffsync/internal/reports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteInventoryWorkbook(t *testing.T) {
	updated := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	products := []models.Product{
		{ID: "p-1", Name: "노트북", Category: "전자제품", Quantity: 50, MinStockLevel: 10, Price: 1000000, Status: models.StatusInStock, UpdatedAt: updated},
		{ID: "p-2", Name: "마우스", Category: "전자제품", Quantity: 5, MinStockLevel: 10, Price: 20000, Status: models.StatusLowStock, UpdatedAt: updated},
	}
	dashboard := &models.Dashboard{
		TotalProducts:       2,
		InStockCount:        1,
		LowStockCount:       1,
		TotalInventoryValue: 50100000,
		StockByCategory:     map[string]int64{"전자제품": 55, "가구": 0},
	}

	var buf bytes.Buffer
	require.NoError(t, reports.WriteInventoryWorkbook(&buf, products, dashboard))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{reports.InventorySheet, reports.SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(reports.InventorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "노트북", rows[1][1])
	assert.Equal(t, "50", rows[1][3])
	assert.Equal(t, "LOW_STOCK", rows[2][6])
	assert.Equal(t, "2024-03-01 09:30:00", rows[2][8])

	value, err := f.GetCellValue(reports.SummarySheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "50100000", value)

	// categories are sorted
	first, err := f.GetCellValue(reports.SummarySheet, "A8")
	require.NoError(t, err)
	assert.Equal(t, "가구", first)
	second, err := f.GetCellValue(reports.SummarySheet, "B9")
	require.NoError(t, err)
	assert.Equal(t, "55", second)
}

func TestWriteInventoryWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, reports.WriteInventoryWorkbook(&buf, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reports.InventorySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
