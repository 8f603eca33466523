package templatefill

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func price(s string) decimal.NullDecimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func blankPrice() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

// invoiceTemplate builds a minimal template with the product anchor at
// row 26 and the Total sentinel at row 30.
func invoiceTemplate(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Invoice"))
	require.NoError(t, f.SetCellValue("Invoice", "D30", "Total"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func sampleRows() []ProductRow {
	return []ProductRow{
		{EAN: "4006381333931", HSCode: "85444290", PINumber: "PI-2024-001", Description: "USB Cable", Origin: "China", Quantity: "1", UnitPrice: price("10.00"), TotalPrice: price("10.00")},
		{EAN: "4006381333948", HSCode: "85183000", PINumber: "PI-2024-001", Description: "Headset", Origin: "China", Quantity: "2", UnitPrice: price("10.00"), TotalPrice: price("20.00")},
		{EAN: "4006381333955", HSCode: "", PINumber: "PI-2024-001", Description: "Charger", Origin: "China", Quantity: "3", UnitPrice: blankPrice(), TotalPrice: blankPrice()},
	}
}

func TestApply_EndToEnd(t *testing.T) {
	header := HeaderFields{
		City:              "Hamburg",
		Phone:             "+49 40 123456",
		Address:           "Speicherstadt 4",
		AWBNumber:         "176-22334455",
		Country:           "Germany",
		Code:              "DE",
		PackageDescriptor: "2 PLT",
		Date:              time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	billing := []string{"ACME GmbH", "Speicherstadt 4", "Hamburg", "Germany"}
	summary := Summary{Quantity: 6, Value: decimal.RequireFromString("30.00")}

	out, warnings, err := Apply(invoiceTemplate(t), DefaultLayout(), header, billing, sampleRows(), summary)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Invoice", cell)
		require.NoError(t, err)
		return v
	}

	// Billing block at the fixed anchor.
	assert.Equal(t, "ACME GmbH", get("A14"))
	assert.Equal(t, "Germany", get("A17"))

	// Composite shipping cells.
	assert.Equal(t, "Hamburg", get("A19"))
	assert.Equal(t, "+49 40 123456", get("A20"))
	assert.Equal(t, "Speicherstadt 4 176-22334455", get("A21"))
	assert.Equal(t, "Germany, DE", get("A22"))
	assert.Equal(t, "Germany, DE", get("F16"))

	// Package descriptor, date and origin.
	assert.Equal(t, "2 Pallet(s)", get("A24"))
	assert.Equal(t, "05/01/2026", get("F10"))
	assert.Equal(t, "Made in China", get("G24"))

	// Product block injected at the anchor.
	assert.Equal(t, "85444290", get("A26"))
	assert.Equal(t, "4006381333931", get("B26"))
	assert.Equal(t, "PI-2024-001", get("C26"))
	assert.Equal(t, "USB Cable", get("D26"))
	assert.Equal(t, "China", get("E26"))
	assert.Equal(t, "1", get("F26"))
	assert.Equal(t, "10", get("G26"))

	// Blank price stays blank, never zero.
	assert.Equal(t, "", get("G28"))
	assert.Equal(t, "", get("H28"))

	// Total sentinel shifted down by the three inserted rows.
	assert.Equal(t, "Total", get("D33"))
	assert.Equal(t, "6", get("F33"))
	assert.Equal(t, "30", get("H33"))
}

func TestApply_ForcesTextFormatOnCodeColumns(t *testing.T) {
	out, _, err := Apply(invoiceTemplate(t), DefaultLayout(), HeaderFields{}, nil, sampleRows(), Summary{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	for _, cell := range []string{"A26", "B26", "A28", "B28"} {
		styleID, err := f.GetCellStyle("Invoice", cell)
		require.NoError(t, err)
		style, err := f.GetStyle(styleID)
		require.NoError(t, err)

		assert.Equal(t, 49, style.NumFmt, "cell %s should carry the text number format", cell)
		require.NotNil(t, style.Alignment, "cell %s should be aligned", cell)
		assert.Equal(t, "center", style.Alignment.Horizontal)
	}
}

func TestApply_ProductCellsCenteredAndBordered(t *testing.T) {
	out, _, err := Apply(invoiceTemplate(t), DefaultLayout(), HeaderFields{}, nil, sampleRows(), Summary{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	styleID, err := f.GetCellStyle("Invoice", "D27")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)

	require.NotNil(t, style.Alignment)
	assert.Equal(t, "center", style.Alignment.Horizontal)
	assert.Equal(t, "center", style.Alignment.Vertical)
	assert.Len(t, style.Border, 4)
}

func TestApply_MissingTotalRowWarns(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	// No "Total" label anywhere.
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	out, warnings, err := Apply(buf.Bytes(), DefaultLayout(), HeaderFields{}, nil, sampleRows(), Summary{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Total")
}

func TestApply_FallsBackToActiveSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "D30", "total"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows := sampleRows()
	summary := Summary{Quantity: 6, Value: decimal.RequireFromString("30.00")}
	out, warnings, err := Apply(buf.Bytes(), DefaultLayout(), HeaderFields{}, nil, rows, summary)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	result, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer result.Close()

	// Case-insensitive sentinel match on the active sheet.
	v, err := result.GetCellValue("Sheet1", "F33")
	require.NoError(t, err)
	assert.Equal(t, "6", v)
}

func TestFormatPackageDescriptor(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"leading count", "2 PLT", "2 Pallet(s)"},
		{"no leading count", "PLT", "PLT"},
		{"zero count", "0 PLT", "0 Pallet(s)"},
		{"negative count passes through", "-1 PLT", "-1 PLT"},
		{"empty descriptor", "", ""},
		{"count with extra tokens", "01 # PLT", "1 Pallet(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPackageDescriptor(tt.raw))
		})
	}
}

func TestApply_NoRowsLeavesAnchorUntouched(t *testing.T) {
	out, warnings, err := Apply(invoiceTemplate(t), DefaultLayout(), HeaderFields{}, nil, nil, Summary{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	// Nothing inserted, so the sentinel is still at its template row.
	v, err := f.GetCellValue("Invoice", "D30")
	require.NoError(t, err)
	assert.Equal(t, "Total", v)
}
