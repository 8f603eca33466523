package templatefill

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// writer.go - Fills the invoice template with extracted header fields
// and merged product records, then serializes the result.

// ProductRow is one enriched line item ready for injection.
type ProductRow struct {
	EAN         string
	HSCode      string
	PINumber    string
	Description string
	Origin      string
	Quantity    string
	UnitPrice   decimal.NullDecimal
	TotalPrice  decimal.NullDecimal
}

// Summary holds the aggregates written into the Total sentinel row.
type Summary struct {
	Quantity int
	Value    decimal.Decimal
}

// HeaderFields are the shipping/header values written into fixed cells.
type HeaderFields struct {
	City              string
	Phone             string
	Address           string
	AWBNumber         string
	Country           string
	Code              string
	PackageDescriptor string
	// Date defaults to the current day when zero.
	Date time.Time
}

// Apply writes billing lines, header fields and product rows into the
// template workbook and returns the serialized result. Returned
// warnings are non-fatal conditions such as a missing Total row; the
// output is still complete and internally consistent. Either a full
// buffer is returned or none.
func Apply(template []byte, layout *Layout, header HeaderFields, billingLines []string, rows []ProductRow, summary Summary) ([]byte, []string, error) {
	if layout == nil {
		layout = DefaultLayout()
	}

	f, err := excelize.OpenReader(bytes.NewReader(template))
	if err != nil {
		return nil, nil, fmt.Errorf("opening template: %w", err)
	}
	defer f.Close()

	sheet, err := targetSheet(f, layout.SheetName)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string

	if err := writeBillingBlock(f, sheet, layout, billingLines); err != nil {
		return nil, nil, err
	}
	if err := writeHeaderFields(f, sheet, layout, header); err != nil {
		return nil, nil, err
	}
	if err := writeProductBlock(f, sheet, layout, rows); err != nil {
		return nil, nil, err
	}

	totalWarnings, err := writeTotalRow(f, sheet, layout, len(rows), summary)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, totalWarnings...)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("serializing output workbook: %w", err)
	}
	return buf.Bytes(), warnings, nil
}

// targetSheet picks the sheet literally named for invoices when the
// workbook has one, otherwise the active sheet.
func targetSheet(f *excelize.File, preferred string) (string, error) {
	if preferred != "" {
		if idx, err := f.GetSheetIndex(preferred); err == nil && idx >= 0 {
			return preferred, nil
		}
	}
	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		return "", fmt.Errorf("template has no usable sheet")
	}
	return name, nil
}

// writeBillingBlock writes the bill-to lines verbatim into consecutive
// rows starting at the billing anchor.
func writeBillingBlock(f *excelize.File, sheet string, layout *Layout, lines []string) error {
	for i, line := range lines {
		cell := layout.BillingColumn + strconv.Itoa(layout.BillingAnchorRow+i)
		if err := f.SetCellValue(sheet, cell, line); err != nil {
			return fmt.Errorf("writing billing line %d: %w", i+1, err)
		}
	}
	return nil
}

func writeHeaderFields(f *excelize.File, sheet string, layout *Layout, h HeaderFields) error {
	countryAndCode := fmt.Sprintf("%s, %s", h.Country, h.Code)
	values := map[string]interface{}{
		layout.Shipping.CityCell:        h.City,
		layout.Shipping.PhoneCell:       h.Phone,
		layout.Shipping.AddressCell:     fmt.Sprintf("%s %s", h.Address, h.AWBNumber),
		layout.Shipping.CountryCell:     countryAndCode,
		layout.Shipping.CountryCopyCell: countryAndCode,
		layout.PackageCell:              FormatPackageDescriptor(h.PackageDescriptor),
		layout.OriginCell:               layout.OriginText,
	}

	date := h.Date
	if date.IsZero() {
		date = time.Now()
	}
	values[layout.DateCell] = date.Format("02/01/2006")

	for cell, value := range values {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("writing header cell %s: %w", cell, err)
		}
	}
	return nil
}

// FormatPackageDescriptor parses a "<count> <anything>" descriptor. A
// leading non-negative integer yields "<count> Pallet(s)"; anything
// else passes through unchanged.
func FormatPackageDescriptor(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) > 0 {
		if count, err := strconv.Atoi(fields[0]); err == nil && count >= 0 {
			return fmt.Sprintf("%d Pallet(s)", count)
		}
	}
	return raw
}

// writeProductBlock inserts one fresh row per record at the product
// anchor, shifting everything below, then populates and styles the new
// rows. The EAN and HS code cells are forced to text so the codes are
// never reinterpreted as numbers.
func writeProductBlock(f *excelize.File, sheet string, layout *Layout, rows []ProductRow) error {
	if len(rows) == 0 {
		return nil
	}

	anchor := layout.Products.AnchorRow
	if err := f.InsertRows(sheet, anchor, len(rows)); err != nil {
		return fmt.Errorf("inserting %d product rows at row %d: %w", len(rows), anchor, err)
	}

	textStyle, err := productCellStyle(f, true)
	if err != nil {
		return fmt.Errorf("building text cell style: %w", err)
	}
	cellStyle, err := productCellStyle(f, false)
	if err != nil {
		return fmt.Errorf("building product cell style: %w", err)
	}

	cols := layout.Products
	for i, row := range rows {
		rowNum := anchor + i
		cells := []struct {
			col    string
			value  interface{}
			forced bool // text number format
		}{
			{cols.HSColumn, row.HSCode, true},
			{cols.EANColumn, row.EAN, true},
			{cols.PIColumn, row.PINumber, false},
			{cols.DescColumn, row.Description, false},
			{cols.OriginColumn, row.Origin, false},
			{cols.QuantityColumn, quantityValue(row.Quantity), false},
			{cols.UnitPriceColumn, priceValue(row.UnitPrice), false},
			{cols.TotalPriceColumn, priceValue(row.TotalPrice), false},
		}

		for _, c := range cells {
			cell := c.col + strconv.Itoa(rowNum)
			if err := f.SetCellValue(sheet, cell, c.value); err != nil {
				return fmt.Errorf("writing product cell %s: %w", cell, err)
			}
			style := cellStyle
			if c.forced {
				style = textStyle
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return fmt.Errorf("styling product cell %s: %w", cell, err)
			}
		}

		// The template may carry collapsed outline groups; product rows
		// must stay visible.
		if err := f.SetRowVisible(sheet, rowNum, true); err != nil {
			return fmt.Errorf("unhiding product row %d: %w", rowNum, err)
		}
	}

	return nil
}

// writeTotalRow locates the Total sentinel below the inserted block and
// writes the aggregates into it. Not finding the sentinel is a warning,
// not an error.
func writeTotalRow(f *excelize.File, sheet string, layout *Layout, inserted int, summary Summary) ([]string, error) {
	start := layout.Products.AnchorRow + inserted
	spec := layout.TotalRow

	totalRow := 0
	for row := start; row < start+spec.SearchWindow; row++ {
		label, err := f.GetCellValue(sheet, spec.LabelColumn+strconv.Itoa(row))
		if err != nil {
			return nil, fmt.Errorf("scanning for Total row: %w", err)
		}
		if strings.EqualFold(strings.TrimSpace(label), "total") {
			totalRow = row
			break
		}
	}

	if totalRow == 0 {
		warning := fmt.Sprintf("no %q label found in column %s within %d rows below the product block; totals not written",
			"Total", spec.LabelColumn, spec.SearchWindow)
		return []string{warning}, nil
	}

	qtyCell := spec.QuantityColumn + strconv.Itoa(totalRow)
	valueCell := spec.ValueColumn + strconv.Itoa(totalRow)

	if err := f.SetCellValue(sheet, qtyCell, summary.Quantity); err != nil {
		return nil, fmt.Errorf("writing total quantity: %w", err)
	}
	if err := f.SetCellValue(sheet, valueCell, summary.Value.InexactFloat64()); err != nil {
		return nil, fmt.Errorf("writing total value: %w", err)
	}

	// Only re-center the aggregate cells; the sentinel row keeps its
	// template borders.
	if err := centerCell(f, sheet, qtyCell); err != nil {
		return nil, fmt.Errorf("centering total quantity: %w", err)
	}
	if err := centerCell(f, sheet, valueCell); err != nil {
		return nil, fmt.Errorf("centering total value: %w", err)
	}

	if err := f.SetRowVisible(sheet, totalRow, true); err != nil {
		return nil, fmt.Errorf("unhiding total row: %w", err)
	}

	return nil, nil
}

func quantityValue(raw string) interface{} {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return n
	}
	return raw
}

func priceValue(p decimal.NullDecimal) interface{} {
	if !p.Valid {
		return ""
	}
	return p.Decimal.InexactFloat64()
}
