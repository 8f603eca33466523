package templatefill

import "github.com/xuri/excelize/v2"

// styles.go - Cell styles for the injected product block

// Built-in number format 49 is "@", which forces text representation.
// EAN and HS code columns need it so that long digit strings keep their
// leading zeros and never flip to scientific notation.
const textNumFmt = 49

func centerAlignment() *excelize.Alignment {
	return &excelize.Alignment{
		Horizontal: "center",
		Vertical:   "center",
	}
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		borders = append(borders, excelize.Border{
			Type:  side,
			Style: 1,
			Color: "000000",
		})
	}
	return borders
}

// productCellStyle builds the centered, thin-bordered style used on
// every populated product cell. asText additionally forces the text
// number format.
func productCellStyle(f *excelize.File, asText bool) (int, error) {
	style := &excelize.Style{
		Alignment: centerAlignment(),
		Border:    thinBorder(),
	}
	if asText {
		style.NumFmt = textNumFmt
	}
	return f.NewStyle(style)
}

// centerCell re-centers a single cell while keeping whatever style the
// template already carries there (borders, fonts, fills).
func centerCell(f *excelize.File, sheet, cell string) error {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return err
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return err
	}
	style.Alignment = centerAlignment()
	newID, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, newID)
}
