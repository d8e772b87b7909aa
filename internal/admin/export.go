package admin

import (
	"fmt"

	"github.com/tealeg/xlsx"

	"github.com/spaethfarms/storefront/internal/catalog"
)

// BuildProductsWorkbook renders the catalog as an Excel workbook with one
// "Products" sheet: a header row and one row per product. Prices are
// exported in dollars.
func BuildProductsWorkbook(products []catalog.ProductDto) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, fmt.Errorf("failed to create products sheet: %w", err)
	}

	headers := []string{
		"ID", "Slug", "Name", "Description", "Price", "Weight",
		"Category", "Image", "InStock", "Featured",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(float64(p.PriceCents) / 100)
		row.AddCell().SetValue(p.Weight)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(p.Image)
		row.AddCell().SetValue(p.InStock)
		row.AddCell().SetValue(p.Featured)
	}

	return file, nil
}
