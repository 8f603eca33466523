package extract

import (
	"strings"

	"github.com/shipdocs/invoicegen/internal/domain"
	"github.com/shipdocs/invoicegen/pkg/sheetio"
)

// packing.go - Packing sheet extraction (header, packed items, package
// info and the Sheet2 shipping record)

const (
	packedItemsStartRow = 7
	// The packed-item block has no declared length; this bounds a
	// runaway scan over a corrupt sheet.
	packedItemsMaxRows = 1000

	packageInfoRow = 12

	shippingSheetName = "Sheet2"
	shippingRow       = 5
)

// Packed item columns: serial, item code, description, quantity,
// package, weight, dimension. Only the first four decide the end of the
// block; package sheets often carry weight or note cells below it.
var packedItemColumns = []int{1, 2, 3, 4, 5, 6, 7}

const packedItemSentinelCols = 4

// PackingSheet extracts the packing document: fixed header cells,
// packed items from row 7 down to the first empty row, package info
// and the shipping record from Sheet2. A missing Sheet2 is reported as
// a warning; the rest of the document remains usable.
func PackingSheet(data []byte) (*domain.PackingDocument, []string, error) {
	doc, err := sheetio.Open(data)
	if err != nil {
		return nil, nil, &domain.DocumentReadError{Doc: "packing sheet", Err: err}
	}
	defer doc.Close()

	sheet, err := doc.ActiveSheet()
	if err != nil {
		return nil, nil, &domain.DocumentReadError{Doc: "packing sheet", Err: err}
	}

	packing := &domain.PackingDocument{
		Header: domain.PackingHeader{
			InvoiceNumber: strings.TrimSpace(sheet.CellValue(2, 2)), // B2
			BillingParty:  strings.TrimSpace(sheet.CellValue(3, 5)), // E3
			Consignee:     strings.TrimSpace(sheet.CellValue(4, 2)), // B4
			Date:          strings.TrimSpace(sheet.CellValue(2, 8)), // H2
		},
		Package: domain.PackageInfo{
			Descriptor: strings.TrimSpace(sheet.CellValue(packageInfoRow, 5)), // E12
			Weight:     strings.TrimSpace(sheet.CellValue(packageInfoRow, 6)), // F12
			Dimension:  strings.TrimSpace(sheet.CellValue(packageInfoRow, 7)), // G12
		},
	}

	for _, row := range sheet.ScanSectionSentinel(packedItemsStartRow, packedItemsMaxRows, packedItemColumns, packedItemSentinelCols) {
		packing.Items = append(packing.Items, domain.PackedItem{
			Serial:      row[0],
			ItemCode:    row[1],
			Description: row[2],
			Quantity:    row[3],
			Package:     row[4],
			Weight:      row[5],
			Dimension:   row[6],
		})
	}

	var warnings []string
	if len(packing.Items) == 0 {
		warnings = append(warnings, "no packed items found from row 7 onward")
	}

	if !doc.HasSheet(shippingSheetName) {
		warnings = append(warnings, "Sheet2 not found; shipping info left empty")
		return packing, warnings, nil
	}

	shippingSheet, err := doc.Sheet(shippingSheetName)
	if err != nil {
		return nil, nil, &domain.DocumentReadError{Doc: "packing sheet", Err: err}
	}

	packing.Shipping = domain.ShippingInfo{
		Reference:     strings.TrimSpace(shippingSheet.CellValue(shippingRow, 1)),
		RecipientName: strings.TrimSpace(shippingSheet.CellValue(shippingRow, 2)),
		Company:       strings.TrimSpace(shippingSheet.CellValue(shippingRow, 3)),
		Address:       strings.TrimSpace(shippingSheet.CellValue(shippingRow, 4)),
		City:          strings.TrimSpace(shippingSheet.CellValue(shippingRow, 5)),
		Phone:         strings.TrimSpace(shippingSheet.CellValue(shippingRow, 6)),
		Country:       strings.TrimSpace(shippingSheet.CellValue(shippingRow, 7)),
		AWBNumber:     strings.TrimSpace(shippingSheet.CellValue(shippingRow, 8)),
		Code:          strings.TrimSpace(shippingSheet.CellValue(shippingRow, 9)),
	}

	return packing, warnings, nil
}
