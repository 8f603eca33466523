package sheetio

import "strings"

// scan.go - Variable-length section scanning

// ScanSection reads consecutive rows starting at startRow, resolving
// each of the mapped columns through the merge-aware cell reader. The
// scan stops, excluding the current row, at the first row where every
// mapped column is empty, and stops unconditionally after maxRows rows
// to bound pathological inputs. Row order is document order.
func (s *Sheet) ScanSection(startRow, maxRows int, cols []int) [][]string {
	return s.ScanSectionSentinel(startRow, maxRows, cols, len(cols))
}

// ScanSectionSentinel behaves like ScanSection but only the first
// sentinelCols mapped columns decide the end of the block. Trailing
// columns are still read for rows within the block; a row where only
// trailing columns carry values (stray notes below the block) ends the
// scan.
func (s *Sheet) ScanSectionSentinel(startRow, maxRows int, cols []int, sentinelCols int) [][]string {
	if sentinelCols <= 0 || sentinelCols > len(cols) {
		sentinelCols = len(cols)
	}

	var out [][]string
	for i := 0; i < maxRows; i++ {
		row := startRow + i
		values := make([]string, len(cols))
		empty := true
		for j, col := range cols {
			v := s.CellValue(row, col)
			values[j] = v
			if j < sentinelCols && strings.TrimSpace(v) != "" {
				empty = false
			}
		}
		if empty {
			break
		}
		out = append(out, values)
	}

	return out
}

// ColumnRange reads a single column over a fixed row window, returning
// the non-empty values in row order. Unlike ScanSection it skips empty
// cells within the window rather than stopping at them.
func (s *Sheet) ColumnRange(col, startRow, endRow int) []string {
	var out []string
	for row := startRow; row <= endRow; row++ {
		if v := strings.TrimSpace(s.CellValue(row, col)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
