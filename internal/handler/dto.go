package handler

import "github.com/shipdocs/invoicegen/internal/domain"

// TemplatePreview echoes what was understood from an uploaded template.
type TemplatePreview struct {
	SheetNames []string `json:"sheet_names"`
	SizeBytes  int      `json:"size_bytes"`
}

// PIPreview is the upload response for a Proforma Invoice.
type PIPreview struct {
	BillingLines []string          `json:"billing_lines"`
	PINumber     string            `json:"pi_number"`
	Items        []domain.LineItem `json:"items"`
	PriceCount   int               `json:"price_count"`
}

// ProductListPreview is the upload response for a product list.
type ProductListPreview struct {
	Items []domain.LineItem `json:"items"`
}

// HSCodePreview is the upload response for an HS code document.
type HSCodePreview struct {
	Count   int              `json:"count"`
	Mapping domain.HSCodeMap `json:"mapping"`
}

// FillSummary is the fill response body.
type FillSummary struct {
	RowCount      int    `json:"row_count"`
	TotalQuantity int    `json:"total_quantity"`
	TotalValue    string `json:"total_value"`
}
