package sheetio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	build(f)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestOpen_InvalidBytes(t *testing.T) {
	_, err := Open([]byte("not a workbook"))
	assert.Error(t, err)
}

func TestSheet_CellValue_MergedRange(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "C14", "4006381333931"))
		require.NoError(t, f.MergeCell("Sheet1", "C14", "E15"))
		require.NoError(t, f.SetCellValue("Sheet1", "F14", "USB Cable"))
	})

	doc, err := Open(data)
	require.NoError(t, err)
	defer doc.Close()

	sheet, err := doc.Sheet("Sheet1")
	require.NoError(t, err)

	// Every address inside the merged block resolves to the anchor value.
	for row := 14; row <= 15; row++ {
		for col := 3; col <= 5; col++ {
			assert.Equal(t, "4006381333931", sheet.CellValue(row, col),
				"row %d col %d should resolve to the merge anchor", row, col)
		}
	}

	// Addresses outside any merge range read directly.
	assert.Equal(t, "USB Cable", sheet.CellValue(14, 6))
	assert.Equal(t, "", sheet.CellValue(20, 3))
}

func TestSheet_RawValue_IgnoresMerges(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "anchor"))
		require.NoError(t, f.MergeCell("Sheet1", "A1", "B2"))
	})

	doc, err := Open(data)
	require.NoError(t, err)
	defer doc.Close()

	sheet, err := doc.Sheet("Sheet1")
	require.NoError(t, err)

	assert.Equal(t, "anchor", sheet.RawValue(1, 1))
	assert.Equal(t, "", sheet.RawValue(2, 2))
}

func TestDocument_Sheet_Missing(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {})

	doc, err := Open(data)
	require.NoError(t, err)
	defer doc.Close()

	_, err = doc.Sheet("Sheet2")
	assert.Error(t, err)
	assert.False(t, doc.HasSheet("Sheet2"))
	assert.True(t, doc.HasSheet("Sheet1"))
}

func TestScanSection_StopsAtEmptyRow(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A3", "111"))
		require.NoError(t, f.SetCellValue("Sheet1", "B3", "Item 1"))
		require.NoError(t, f.SetCellValue("Sheet1", "A4", "222"))
		require.NoError(t, f.SetCellValue("Sheet1", "B4", "Item 2"))
		// row 5 left empty, row 6 populated but must not be reached
		require.NoError(t, f.SetCellValue("Sheet1", "A6", "333"))
	})

	doc, err := Open(data)
	require.NoError(t, err)
	defer doc.Close()

	sheet, err := doc.Sheet("Sheet1")
	require.NoError(t, err)

	rows := sheet.ScanSection(3, 10, []int{1, 2})
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"111", "Item 1"}, rows[0])
	assert.Equal(t, []string{"222", "Item 2"}, rows[1])
}

func TestScanSection_CappedByMaxRows(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		for row := 1; row <= 30; row++ {
			cell, err := excelize.CoordinatesToCellName(1, row)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, row))
		}
	})

	doc, err := Open(data)
	require.NoError(t, err)
	defer doc.Close()

	sheet, err := doc.Sheet("Sheet1")
	require.NoError(t, err)

	rows := sheet.ScanSection(1, 5, []int{1})
	assert.Len(t, rows, 5)
}

func TestScanSection_ResolvesMergedColumns(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "C14", "444"))
		require.NoError(t, f.MergeCell("Sheet1", "C14", "D14"))
		require.NoError(t, f.SetCellValue("Sheet1", "F14", "Widget"))
	})

	doc, err := Open(data)
	require.NoError(t, err)
	defer doc.Close()

	sheet, err := doc.Sheet("Sheet1")
	require.NoError(t, err)

	rows := sheet.ScanSection(14, 20, []int{4, 6})
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"444", "Widget"}, rows[0])
}

func TestScanSectionSentinel_TrailingColumnsDoNotExtendBlock(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A3", "111"))
		require.NoError(t, f.SetCellValue("Sheet1", "B3", "Item 1"))
		require.NoError(t, f.SetCellValue("Sheet1", "C3", "2.5kg"))
		// Row 4 has only the trailing column filled; with a sentinel
		// over the first two columns the block ends at row 3.
		require.NoError(t, f.SetCellValue("Sheet1", "C4", "totals below"))
	})

	doc, err := Open(data)
	require.NoError(t, err)
	defer doc.Close()

	sheet, err := doc.Sheet("Sheet1")
	require.NoError(t, err)

	rows := sheet.ScanSectionSentinel(3, 10, []int{1, 2, 3}, 2)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"111", "Item 1", "2.5kg"}, rows[0])

	// With every column as sentinel the note row keeps the scan alive.
	rows = sheet.ScanSectionSentinel(3, 10, []int{1, 2, 3}, 3)
	assert.Len(t, rows, 2)
}

func TestColumnRange_SkipsEmptyCells(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "D10", "ACME GmbH"))
		// D11 empty
		require.NoError(t, f.SetCellValue("Sheet1", "D12", "Berlin"))
		require.NoError(t, f.SetCellValue("Sheet1", "D13", "  Germany  "))
	})

	doc, err := Open(data)
	require.NoError(t, err)
	defer doc.Close()

	sheet, err := doc.Sheet("Sheet1")
	require.NoError(t, err)

	lines := sheet.ColumnRange(4, 10, 13)
	assert.Equal(t, []string{"ACME GmbH", "Berlin", "Germany"}, lines)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "4006381333931", NormalizeKey(" 4006381333931 "))
	assert.Equal(t, "", NormalizeKey("   "))
}
