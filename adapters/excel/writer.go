package excel

import (
	"emvenn/domain/agreement"
	"emvenn/domain/run"
	"emvenn/internal/errors"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX exports a run's 64 subset tallies and probabilities to an Excel
// workbook, one row per subset bitmask.
func WriteXLSX(path string, result *run.Result) error {
	f := excelize.NewFile()

	// Ensure Sheet1 exists and is active.
	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return errors.Wrap(err, "failed to create sheet")
		}
		f.SetActiveSheet(idx)
	}

	headers := []string{"Mask", "Code", "Agreements", "Probability"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return errors.Wrap(err, "failed to write header")
		}
	}

	probs := result.Probabilities()
	for mask := 0; mask < agreement.SubsetCount; mask++ {
		rowIdx := mask + 2
		values := []interface{}{mask, agreement.MaskCode(mask), result.Tallies[mask], probs[mask]}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return errors.Wrapf(err, "failed to write row for mask %d", mask)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save workbook %s", path)
	}
	return nil
}
