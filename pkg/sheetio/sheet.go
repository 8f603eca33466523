package sheetio

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheet.go - Workbook loading and merged-cell aware cell access

// Document wraps an open workbook loaded from uploaded bytes.
type Document struct {
	f *excelize.File
}

// Open loads a workbook from an in-memory byte slice.
func Open(data []byte) (*Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	return &Document{f: f}, nil
}

// Close releases the underlying workbook.
func (d *Document) Close() error {
	return d.f.Close()
}

// SheetNames returns the sheet names in workbook order.
func (d *Document) SheetNames() []string {
	return d.f.GetSheetList()
}

// HasSheet reports whether the workbook contains a sheet with the name.
func (d *Document) HasSheet(name string) bool {
	idx, err := d.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// ActiveSheet returns the workbook's active (first visible) sheet.
func (d *Document) ActiveSheet() (*Sheet, error) {
	name := d.f.GetSheetName(d.f.GetActiveSheetIndex())
	if name == "" {
		return nil, fmt.Errorf("workbook has no active sheet")
	}
	return d.Sheet(name)
}

// Sheet returns a named sheet with its merge ranges precomputed.
func (d *Document) Sheet(name string) (*Sheet, error) {
	idx, err := d.f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", name)
	}

	merges, err := d.f.GetMergeCells(name)
	if err != nil {
		return nil, fmt.Errorf("reading merge ranges of %q: %w", name, err)
	}

	ranges := make([]mergeRange, 0, len(merges))
	for _, m := range merges {
		startCol, startRow, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			continue
		}
		ranges = append(ranges, mergeRange{
			minCol: startCol, minRow: startRow,
			maxCol: endCol, maxRow: endRow,
		})
	}

	return &Sheet{f: d.f, name: name, merges: ranges}, nil
}

// mergeRange is one rectangular merged block, 1-based inclusive bounds.
// The logical value lives at the top-left anchor cell.
type mergeRange struct {
	minCol, minRow, maxCol, maxRow int
}

func (r mergeRange) contains(row, col int) bool {
	return r.minRow <= row && row <= r.maxRow && r.minCol <= col && col <= r.maxCol
}

// Sheet provides merged-cell aware reads over a single worksheet.
type Sheet struct {
	f      *excelize.File
	name   string
	merges []mergeRange
}

// Name returns the worksheet name.
func (s *Sheet) Name() string { return s.name }

// CellValue resolves (row, col) against the sheet's merge ranges. A
// coordinate inside a merged block yields the block's anchor value,
// anything else the direct cell value. Coordinates are 1-based.
func (s *Sheet) CellValue(row, col int) string {
	for _, m := range s.merges {
		if m.contains(row, col) {
			return s.rawValue(m.minRow, m.minCol)
		}
	}
	return s.rawValue(row, col)
}

// RawValue reads the cell directly, without merge resolution.
func (s *Sheet) RawValue(row, col int) string {
	return s.rawValue(row, col)
}

func (s *Sheet) rawValue(row, col int) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	v, err := s.f.GetCellValue(s.name, cell)
	if err != nil {
		return ""
	}
	return v
}

// Rows returns every populated row of the sheet in document order.
// Values are raw reads: cells of a merged block other than its anchor
// come back empty.
func (s *Sheet) Rows() ([][]string, error) {
	return s.f.GetRows(s.name)
}

// NormalizeKey applies the one key-normalization rule used by every
// keyed lookup: trim surrounding whitespace. An empty result is never a
// valid key.
func NormalizeKey(v string) string {
	return strings.TrimSpace(v)
}
