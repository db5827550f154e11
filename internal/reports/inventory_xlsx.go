// Package reports renders inventory data into downloadable documents.
package reports

import (
	"fmt"
	"io"
	"sort"

	"staffsync/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	InventorySheet = "Inventory"
	SummarySheet   = "Summary"

	// ContentTypeXLSX is the media type of the workbook written by WriteInventoryWorkbook.
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var inventoryHeader = []interface{}{
	"ID", "Name", "Category", "Quantity", "Min Stock Level", "Price", "Status", "Inventory Value", "Updated At",
}

// WriteInventoryWorkbook writes an xlsx workbook with one row per product on the
// Inventory sheet and the dashboard figures on the Summary sheet.
func WriteInventoryWorkbook(w io.Writer, products []models.Product, dashboard *models.Dashboard) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", InventorySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeInventorySheet(f, products); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, dashboard); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeInventorySheet(f *excelize.File, products []models.Product) error {
	if err := f.SetSheetRow(InventorySheet, "A1", &inventoryHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(InventorySheet, "A1", "I1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			p.ID,
			p.Name,
			p.Category,
			p.Quantity,
			p.MinStockLevel,
			p.Price,
			string(p.Status),
			p.InventoryValue(),
			p.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(InventorySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write product %s: %w", p.ID, err)
		}
	}

	if err := f.SetColWidth(InventorySheet, "A", "A", 38); err != nil {
		return err
	}
	return f.SetColWidth(InventorySheet, "B", "I", 16)
}

func writeSummarySheet(f *excelize.File, d *models.Dashboard) error {
	if d == nil {
		d = &models.Dashboard{StockByCategory: map[string]int64{}}
	}
	rows := [][]interface{}{
		{"Total Products", d.TotalProducts},
		{"In Stock", d.InStockCount},
		{"Low Stock", d.LowStockCount},
		{"Out Of Stock", d.OutOfStockCount},
		{"Total Inventory Value", d.TotalInventoryValue},
		{},
		{"Category", "Quantity"},
	}

	categories := make([]string, 0, len(d.StockByCategory))
	for category := range d.StockByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		rows = append(rows, []interface{}{category, d.StockByCategory[category]})
	}

	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return f.SetColWidth(SummarySheet, "A", "A", 24)
}
