package service

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shipdocs/invoicegen/internal/domain"
)

// aggregates.go - Totals over merged invoice rows

// Totals sums quantity and value across the merged rows. A quantity
// that does not coerce to an integer is a hard error; a blank total
// price counts as zero for the sum only, the displayed cell stays
// blank.
func Totals(rows []domain.MergedInvoiceRow) (domain.Totals, error) {
	totals := domain.Totals{Value: decimal.Zero}

	for i, row := range rows {
		qty, err := strconv.Atoi(strings.TrimSpace(row.Quantity))
		if err != nil {
			return domain.Totals{}, &domain.MalformedValueError{
				Field: "quantity",
				Value: row.Quantity,
				Row:   i + 1,
			}
		}
		totals.Quantity += qty

		if row.TotalPrice.Valid {
			totals.Value = totals.Value.Add(row.TotalPrice.Decimal)
		}
	}

	return totals, nil
}
