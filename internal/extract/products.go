package extract

import (
	"strings"

	"github.com/shipdocs/invoicegen/internal/domain"
	"github.com/shipdocs/invoicegen/pkg/sheetio"
)

// products.go - Standalone product list extraction

const (
	productListStartRow = 3
	productListMaxRows  = 5 // fixed window, rows 3 to 7
)

// Product list columns: EAN, description, quantity.
var productListColumns = []int{1, 2, 3}

// ProductList extracts line items from the fixed row window of an
// uploaded product list workbook. Prices stay absent until the merge
// step joins them in from the PI price index.
func ProductList(data []byte) ([]domain.LineItem, []string, error) {
	doc, err := sheetio.Open(data)
	if err != nil {
		return nil, nil, &domain.DocumentReadError{Doc: "product list", Err: err}
	}
	defer doc.Close()

	sheet, err := doc.ActiveSheet()
	if err != nil {
		return nil, nil, &domain.DocumentReadError{Doc: "product list", Err: err}
	}

	// Non-nil even when empty: an uploaded list with zero rows is a
	// warning downstream, not a missing artifact.
	items := []domain.LineItem{}
	for _, row := range sheet.ScanSection(productListStartRow, productListMaxRows, productListColumns) {
		items = append(items, domain.LineItem{
			EAN:         sheetio.NormalizeKey(row[0]),
			Description: strings.TrimSpace(row[1]),
			Quantity:    strings.TrimSpace(row[2]),
		})
	}

	var warnings []string
	if len(items) == 0 {
		warnings = append(warnings, "no product rows found in rows 3 to 7")
	}

	return items, warnings, nil
}
