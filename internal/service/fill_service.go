package service

import (
	"context"
	"time"

	"github.com/shipdocs/invoicegen/internal/domain"
	"github.com/shipdocs/invoicegen/internal/logger"
	"github.com/shipdocs/invoicegen/internal/session"
	"github.com/shipdocs/invoicegen/pkg/templatefill"
)

// fill_service.go - Orchestrates one fill run: merge, aggregate, write

// FillService runs the merge-and-write pipeline over one session's
// uploaded artifacts.
type FillService struct {
	layout *templatefill.Layout
}

// NewFillService creates a fill service writing against the given
// template layout. A nil layout means the default production layout.
func NewFillService(layout *templatefill.Layout) *FillService {
	if layout == nil {
		layout = templatefill.DefaultLayout()
	}
	return &FillService{layout: layout}
}

// FillResult is a complete output artifact plus any non-fatal
// conditions encountered while producing it.
type FillResult struct {
	Output   []byte
	Rows     []domain.MergedInvoiceRow
	Totals   domain.Totals
	Warnings []string
}

// Fill validates that the required artifacts are present, joins the
// product list with the PI price index and HS codes, computes totals
// and writes everything into the template. It either returns a complete
// output buffer or an error; there is no partial artifact.
func (s *FillService) Fill(ctx context.Context, sess *session.Session) (*FillResult, error) {
	if len(sess.TemplateBytes) == 0 {
		return nil, &domain.MissingInputError{Artifact: "invoice template"}
	}
	// Nil means never uploaded. The extractors return non-nil slices,
	// so an uploaded-but-empty list proceeds with a warning instead.
	if sess.Products == nil {
		return nil, &domain.MissingInputError{Artifact: "product list"}
	}

	var (
		piNumber string
		prices   domain.PriceIndex
		billing  []string
		warnings []string
	)
	if sess.PI != nil {
		piNumber = sess.PI.PINumber
		prices = sess.PI.PriceIndex
		billing = sess.PI.BillingLines
	} else {
		warnings = append(warnings, "no PI document uploaded; prices and billing lines left empty")
	}
	if sess.HSCodes == nil {
		warnings = append(warnings, "no HS code document uploaded; HS codes left empty")
	}

	merged := MergeRows(sess.Products, prices, sess.HSCodes, piNumber)
	if len(merged) == 0 {
		warnings = append(warnings, "product list is empty; no rows injected")
	}

	totals, err := Totals(merged)
	if err != nil {
		return nil, err
	}

	header := headerFields(sess.Packing)
	output, writeWarnings, err := templatefill.Apply(
		sess.TemplateBytes, s.layout, header, billing, productRows(merged), templatefill.Summary{
			Quantity: totals.Quantity,
			Value:    totals.Value,
		})
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, writeWarnings...)

	logger.InfoLog(ctx, "Filled invoice template: %d rows, total quantity %d, %d warning(s)",
		len(merged), totals.Quantity, len(warnings))

	return &FillResult{
		Output:   output,
		Rows:     merged,
		Totals:   totals,
		Warnings: warnings,
	}, nil
}

func headerFields(packing *domain.PackingDocument) templatefill.HeaderFields {
	header := templatefill.HeaderFields{Date: time.Now()}
	if packing == nil {
		return header
	}

	header.City = packing.Shipping.City
	header.Phone = packing.Shipping.Phone
	header.Address = packing.Shipping.Address
	header.AWBNumber = packing.Shipping.AWBNumber
	header.Country = packing.Shipping.Country
	header.Code = packing.Shipping.Code
	header.PackageDescriptor = packing.Package.Descriptor
	return header
}

func productRows(merged []domain.MergedInvoiceRow) []templatefill.ProductRow {
	rows := make([]templatefill.ProductRow, 0, len(merged))
	for _, m := range merged {
		rows = append(rows, templatefill.ProductRow{
			EAN:         m.EAN,
			HSCode:      m.HSCode,
			PINumber:    m.PINumber,
			Description: m.Description,
			Origin:      m.Origin,
			Quantity:    m.Quantity,
			UnitPrice:   m.UnitPrice,
			TotalPrice:  m.TotalPrice,
		})
	}
	return rows
}
