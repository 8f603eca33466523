package extract

import (
	"github.com/shipdocs/invoicegen/internal/domain"
	"github.com/shipdocs/invoicegen/pkg/sheetio"
)

// Template validates uploaded template bytes and returns the workbook's
// sheet names for the upload preview. The bytes themselves are kept in
// the session untouched until the fill step.
func Template(data []byte) ([]string, error) {
	doc, err := sheetio.Open(data)
	if err != nil {
		return nil, &domain.DocumentReadError{Doc: "template", Err: err}
	}
	defer doc.Close()

	return doc.SheetNames(), nil
}
