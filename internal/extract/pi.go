package extract

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shipdocs/invoicegen/internal/domain"
	"github.com/shipdocs/invoicegen/pkg/sheetio"
)

// pi.go - Proforma Invoice extraction

// Fixed coordinates of the PI document. These are a contract with the
// supplier's PI layout.
const (
	piBillingColumn   = 4 // column D
	piBillingStartRow = 10
	piBillingEndRow   = 13

	piNumberRow    = 6
	piNumberColumn = 11 // cell K6

	piItemsStartRow = 14
	piItemsMaxRows  = 20

	piPriceStartRow   = 12
	piPriceEndRow     = 100
	piPriceKeyColumn  = 2  // column B
	piUnitPriceColumn = 10 // column J
	piTotalPriceCol   = 12 // column L
)

// PI item columns: EAN, description, quantity, unit price, line total.
var piItemColumns = []int{3, 6, 9, 10, 13}

// PI extracts billing lines, the PI number, line items and the price
// index from an uploaded Proforma Invoice workbook.
func PI(data []byte) (*domain.PIDocument, []string, error) {
	doc, err := sheetio.Open(data)
	if err != nil {
		return nil, nil, &domain.DocumentReadError{Doc: "PI", Err: err}
	}
	defer doc.Close()

	sheet, err := doc.ActiveSheet()
	if err != nil {
		return nil, nil, &domain.DocumentReadError{Doc: "PI", Err: err}
	}

	var warnings []string

	billing := sheet.ColumnRange(piBillingColumn, piBillingStartRow, piBillingEndRow)
	if len(billing) == 0 {
		warnings = append(warnings, "no billing lines found in cells D10 to D13")
	}

	piNumber := strings.TrimSpace(sheet.CellValue(piNumberRow, piNumberColumn))

	// Non-nil even when empty: these become the session's working
	// product list, and an empty upload must not read as no upload.
	items := []domain.LineItem{}
	for _, row := range sheet.ScanSection(piItemsStartRow, piItemsMaxRows, piItemColumns) {
		items = append(items, domain.LineItem{
			EAN:         sheetio.NormalizeKey(row[0]),
			Description: strings.TrimSpace(row[1]),
			Quantity:    strings.TrimSpace(row[2]),
			UnitPrice:   strings.TrimSpace(row[3]),
			TotalPrice:  strings.TrimSpace(row[4]),
		})
	}
	if len(items) == 0 {
		warnings = append(warnings, "no product rows found from row 14 onward")
	}

	prices, priceWarnings := buildPriceIndex(sheet)
	warnings = append(warnings, priceWarnings...)

	return &domain.PIDocument{
		BillingLines: billing,
		PINumber:     piNumber,
		Items:        items,
		PriceIndex:   prices,
	}, warnings, nil
}

// buildPriceIndex scans the bounded row window of the PI sheet and maps
// each normalized EAN to its unit and total price. A row contributes
// only when the key and both price cells are present. A present price
// that does not parse as a decimal skips the row with a warning so the
// operator knows the match was lost. Duplicate keys overwrite: last
// occurrence wins.
func buildPriceIndex(sheet *sheetio.Sheet) (domain.PriceIndex, []string) {
	index := make(domain.PriceIndex)
	var warnings []string

	for row := piPriceStartRow; row <= piPriceEndRow; row++ {
		key := sheetio.NormalizeKey(sheet.RawValue(row, piPriceKeyColumn))
		if key == "" {
			continue
		}

		unitRaw := strings.TrimSpace(sheet.RawValue(row, piUnitPriceColumn))
		totalRaw := strings.TrimSpace(sheet.RawValue(row, piTotalPriceCol))
		if unitRaw == "" || totalRaw == "" {
			continue
		}

		unit, err := decimal.NewFromString(unitRaw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("price row %d: unit price %q for %s is not numeric; row skipped", row, unitRaw, key))
			continue
		}
		total, err := decimal.NewFromString(totalRaw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("price row %d: total price %q for %s is not numeric; row skipped", row, totalRaw, key))
			continue
		}

		index[key] = domain.PriceEntry{UnitPrice: unit, TotalPrice: total}
	}

	return index, warnings
}
