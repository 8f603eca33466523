package service

import (
	"github.com/shopspring/decimal"

	"github.com/shipdocs/invoicegen/internal/domain"
	"github.com/shipdocs/invoicegen/pkg/sheetio"
)

// merger.go - Joins line items with the PI price index and the HS code
// map by EAN

// originText is the fixed origin written into every merged row.
const originText = "China"

// MergeRows enriches each line item with PI pricing and its HS code,
// joined on the normalized EAN. Items whose EAN is absent from the
// price index keep blank prices (never zero); an absent HS code becomes
// an empty string. Input order is preserved. Pure function, no I/O.
func MergeRows(items []domain.LineItem, prices domain.PriceIndex, hsCodes domain.HSCodeMap, piNumber string) []domain.MergedInvoiceRow {
	rows := make([]domain.MergedInvoiceRow, 0, len(items))

	for _, item := range items {
		ean := sheetio.NormalizeKey(item.EAN)

		row := domain.MergedInvoiceRow{
			EAN:         ean,
			HSCode:      hsCodes[ean],
			PINumber:    piNumber,
			Description: item.Description,
			Origin:      originText,
			Quantity:    item.Quantity,
		}

		if entry, ok := prices[ean]; ok && ean != "" {
			row.UnitPrice = decimal.NullDecimal{Decimal: entry.UnitPrice, Valid: true}
			row.TotalPrice = decimal.NullDecimal{Decimal: entry.TotalPrice, Valid: true}
		}

		rows = append(rows, row)
	}

	return rows
}
