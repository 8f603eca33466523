package extract

import (
	"github.com/shipdocs/invoicegen/internal/domain"
	"github.com/shipdocs/invoicegen/pkg/sheetio"
)

// hscode.go - HS code mapping extraction

const hsMapStartRow = 2

// HSCodes builds the EAN to HS code mapping from a two-column workbook,
// scanning from row 2 to the end of the sheet. Rows with an empty key
// or value are ignored; duplicate keys overwrite, last one wins.
func HSCodes(data []byte) (domain.HSCodeMap, []string, error) {
	doc, err := sheetio.Open(data)
	if err != nil {
		return nil, nil, &domain.DocumentReadError{Doc: "HS code", Err: err}
	}
	defer doc.Close()

	sheet, err := doc.ActiveSheet()
	if err != nil {
		return nil, nil, &domain.DocumentReadError{Doc: "HS code", Err: err}
	}

	rows, err := sheet.Rows()
	if err != nil {
		return nil, nil, &domain.DocumentReadError{Doc: "HS code", Err: err}
	}

	mapping := make(domain.HSCodeMap)
	for i, row := range rows {
		if i < hsMapStartRow-1 || len(row) < 2 {
			continue
		}
		ean := sheetio.NormalizeKey(row[0])
		code := sheetio.NormalizeKey(row[1])
		if ean == "" || code == "" {
			continue
		}
		mapping[ean] = code
	}

	var warnings []string
	if len(mapping) == 0 {
		warnings = append(warnings, "no valid HS code mappings found")
	}

	return mapping, warnings, nil
}
