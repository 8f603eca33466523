package templatefill

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// layout.go - Fixed cell coordinates of the invoice template, loadable
// from a YAML override file. The coordinates are a contract with the
// template document, not user-defined layout.

// Layout holds every fixed coordinate the writer touches.
type Layout struct {
	// SheetName is preferred when present; otherwise the active sheet
	// is used.
	SheetName string `yaml:"sheet_name"`

	DateCell    string `yaml:"date_cell"`
	OriginCell  string `yaml:"origin_cell"`
	OriginText  string `yaml:"origin_text"`
	PackageCell string `yaml:"package_cell"`

	BillingColumn    string `yaml:"billing_column"`
	BillingAnchorRow int    `yaml:"billing_anchor_row"`

	Shipping ShippingCells `yaml:"shipping"`
	Products ProductBlock  `yaml:"products"`
	TotalRow TotalRowSpec  `yaml:"total_row"`
}

// ShippingCells are the fixed shipping/header target cells.
type ShippingCells struct {
	CityCell    string `yaml:"city_cell"`
	PhoneCell   string `yaml:"phone_cell"`
	AddressCell string `yaml:"address_cell"`
	// Country+code goes to two distinct cells.
	CountryCell     string `yaml:"country_cell"`
	CountryCopyCell string `yaml:"country_copy_cell"`
}

// ProductBlock describes the row-insertion anchor and the per-record
// target columns of the product block.
type ProductBlock struct {
	AnchorRow        int    `yaml:"anchor_row"`
	HSColumn         string `yaml:"hs_column"`
	EANColumn        string `yaml:"ean_column"`
	PIColumn         string `yaml:"pi_column"`
	DescColumn       string `yaml:"desc_column"`
	OriginColumn     string `yaml:"origin_column"`
	QuantityColumn   string `yaml:"quantity_column"`
	UnitPriceColumn  string `yaml:"unit_price_column"`
	TotalPriceColumn string `yaml:"total_price_column"`
}

// TotalRowSpec describes how the Total sentinel row is located and
// which cells receive the aggregates.
type TotalRowSpec struct {
	LabelColumn    string `yaml:"label_column"`
	QuantityColumn string `yaml:"quantity_column"`
	ValueColumn    string `yaml:"value_column"`
	SearchWindow   int    `yaml:"search_window"`
}

// DefaultLayout returns the layout matching the production template.
func DefaultLayout() *Layout {
	return &Layout{
		SheetName:        "Invoice",
		DateCell:         "F10",
		OriginCell:       "G24",
		OriginText:       "Made in China",
		PackageCell:      "A24",
		BillingColumn:    "A",
		BillingAnchorRow: 14,
		Shipping: ShippingCells{
			CityCell:        "A19",
			PhoneCell:       "A20",
			AddressCell:     "A21",
			CountryCell:     "A22",
			CountryCopyCell: "F16",
		},
		Products: ProductBlock{
			AnchorRow:        26,
			HSColumn:         "A",
			EANColumn:        "B",
			PIColumn:         "C",
			DescColumn:       "D",
			OriginColumn:     "E",
			QuantityColumn:   "F",
			UnitPriceColumn:  "G",
			TotalPriceColumn: "H",
		},
		TotalRow: TotalRowSpec{
			LabelColumn:    "D",
			QuantityColumn: "F",
			ValueColumn:    "H",
			SearchWindow:   10,
		},
	}
}

// LoadLayout loads a layout override from a YAML file. Fields left
// empty in the file keep their default values.
func LoadLayout(path string) (*Layout, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening layout file: %w", err)
	}
	defer file.Close()

	return LoadLayoutFromReader(file)
}

// LoadLayoutFromReader loads a layout from an io.Reader.
func LoadLayoutFromReader(r io.Reader) (*Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}

	layout := DefaultLayout()
	if err := yaml.Unmarshal(data, layout); err != nil {
		return nil, fmt.Errorf("parsing YAML layout: %w", err)
	}

	if err := ValidateLayout(layout); err != nil {
		return nil, fmt.Errorf("validating layout: %w", err)
	}

	return layout, nil
}

// LoadLayoutFromString loads a layout override from a YAML string.
func LoadLayoutFromString(yamlContent string) (*Layout, error) {
	return LoadLayoutFromReader(strings.NewReader(yamlContent))
}

var (
	cellPattern   = regexp.MustCompile(`^[A-Z]+[1-9]\d*$`)
	columnPattern = regexp.MustCompile(`^[A-Z]+$`)
)

// ValidateLayout checks that every coordinate in the layout is well
// formed and every anchor is positive.
func ValidateLayout(l *Layout) error {
	if l == nil {
		return fmt.Errorf("layout is nil")
	}

	cells := map[string]string{
		"date_cell":                  l.DateCell,
		"origin_cell":                l.OriginCell,
		"package_cell":               l.PackageCell,
		"shipping.city_cell":         l.Shipping.CityCell,
		"shipping.phone_cell":        l.Shipping.PhoneCell,
		"shipping.address_cell":      l.Shipping.AddressCell,
		"shipping.country_cell":      l.Shipping.CountryCell,
		"shipping.country_copy_cell": l.Shipping.CountryCopyCell,
	}
	for name, cell := range cells {
		if !isValidCell(cell) {
			return fmt.Errorf("%s: invalid cell reference %q", name, cell)
		}
	}

	columns := map[string]string{
		"billing_column":              l.BillingColumn,
		"products.hs_column":          l.Products.HSColumn,
		"products.ean_column":         l.Products.EANColumn,
		"products.pi_column":          l.Products.PIColumn,
		"products.desc_column":        l.Products.DescColumn,
		"products.origin_column":      l.Products.OriginColumn,
		"products.quantity_column":    l.Products.QuantityColumn,
		"products.unit_price_column":  l.Products.UnitPriceColumn,
		"products.total_price_column": l.Products.TotalPriceColumn,
		"total_row.label_column":      l.TotalRow.LabelColumn,
		"total_row.quantity_column":   l.TotalRow.QuantityColumn,
		"total_row.value_column":      l.TotalRow.ValueColumn,
	}
	for name, col := range columns {
		if !isValidColumn(col) {
			return fmt.Errorf("%s: invalid column %q", name, col)
		}
	}

	if l.BillingAnchorRow < 1 {
		return fmt.Errorf("billing_anchor_row must be positive, got %d", l.BillingAnchorRow)
	}
	if l.Products.AnchorRow < 1 {
		return fmt.Errorf("products.anchor_row must be positive, got %d", l.Products.AnchorRow)
	}
	if l.TotalRow.SearchWindow < 1 {
		return fmt.Errorf("total_row.search_window must be positive, got %d", l.TotalRow.SearchWindow)
	}
	if l.OriginText == "" {
		return fmt.Errorf("origin_text is required")
	}

	return nil
}

func isValidCell(s string) bool {
	return cellPattern.MatchString(strings.ToUpper(s))
}

func isValidColumn(s string) bool {
	return columnPattern.MatchString(strings.ToUpper(s))
}
