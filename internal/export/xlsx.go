package export

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"registrar/internal/domain"
)

// SheetName is the worksheet that holds exported records.
const SheetName = "Students"

// WriteXLSX writes the header and one row per record to a single-sheet
// workbook. Ages are stored as numbers.
func WriteXLSX(w io.Writer, records []domain.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return errors.Wrap(err, "could not name sheet")
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "could not write xlsx header")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "could not create header style")
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return errors.Wrap(err, "could not style header")
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "could not address row")
		}
		cols := Row(r)
		row := []any{cols[0], cols[1], r.Age, cols[3], cols[4], cols[5]}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return errors.Wrapf(err, "could not write xlsx row for %s", r.ID)
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "could not write xlsx")
	}
	return nil
}
