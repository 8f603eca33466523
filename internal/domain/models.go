package domain

import (
	"github.com/shopspring/decimal"
)

// LineItem is one product row taken either from the PI document or from
// the standalone product list. Quantity is kept as the raw cell text;
// it is only coerced to an integer when totals are computed.
type LineItem struct {
	EAN         string `json:"ean"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	// Raw price cells from the PI document, absent (empty) for items
	// taken from the standalone product list. Authoritative pricing
	// comes from the PriceIndex at merge time.
	UnitPrice  string `json:"unit_price,omitempty"`
	TotalPrice string `json:"total_price,omitempty"`
}

// PackedItem is one row of the packing sheet (rows 7 and below). It is
// previewed to the operator but not injected into the output template.
type PackedItem struct {
	Serial      string `json:"serial"`
	ItemCode    string `json:"item_code"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Package     string `json:"package"`
	Weight      string `json:"weight"`
	Dimension   string `json:"dimension"`
}

// ShippingInfo is the fixed-shape record read from row 5 of the packing
// sheet's "Sheet2". All fields are optional.
type ShippingInfo struct {
	Reference     string `json:"reference"`
	RecipientName string `json:"recipient_name"`
	Company       string `json:"company"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	Country       string `json:"country"`
	AWBNumber     string `json:"awb_number"`
	Code          string `json:"code"`
}

// PackingHeader holds the fixed header cells of the packing sheet.
type PackingHeader struct {
	InvoiceNumber string `json:"invoice_number"`
	BillingParty  string `json:"billing_party"`
	Consignee     string `json:"consignee"`
	Date          string `json:"date"`
}

// PackageInfo holds the package descriptor cells of the packing sheet.
type PackageInfo struct {
	Descriptor string `json:"descriptor"`
	Weight     string `json:"weight"`
	Dimension  string `json:"dimension"`
}

// PriceEntry is the pair of prices indexed by EAN from the PI document.
type PriceEntry struct {
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// PriceIndex maps a normalized EAN to its PI pricing. Duplicate keys
// overwrite: last occurrence wins.
type PriceIndex map[string]PriceEntry

// HSCodeMap maps a normalized EAN to its customs HS code. Last
// occurrence wins on duplicates.
type HSCodeMap map[string]string

// PIDocument is everything extracted from one uploaded PI file.
type PIDocument struct {
	BillingLines []string   `json:"billing_lines"`
	PINumber     string     `json:"pi_number"`
	Items        []LineItem `json:"items"`
	PriceIndex   PriceIndex `json:"-"`
}

// PackingDocument is everything extracted from one uploaded packing sheet.
type PackingDocument struct {
	Header   PackingHeader `json:"header"`
	Items    []PackedItem  `json:"items"`
	Package  PackageInfo   `json:"package"`
	Shipping ShippingInfo  `json:"shipping"`
}

// MergedInvoiceRow is a line item joined with PI pricing and HS code by
// EAN, ready for template injection. Prices stay invalid (blank) when
// the EAN is absent from the price index; a blank is written to the
// sheet as an empty cell, never as zero.
type MergedInvoiceRow struct {
	EAN         string              `json:"ean"`
	HSCode      string              `json:"hs_code"`
	PINumber    string              `json:"pi_number"`
	Description string              `json:"description"`
	Origin      string              `json:"origin"`
	Quantity    string              `json:"quantity"`
	UnitPrice   decimal.NullDecimal `json:"unit_price"`
	TotalPrice  decimal.NullDecimal `json:"total_price"`
}

// Totals is the aggregate over merged rows written into the Total
// sentinel row.
type Totals struct {
	Quantity int             `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}
