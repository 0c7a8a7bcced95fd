package export

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"registrar/internal/domain"
)

// WriteCSV writes the header and one row per record. Lines end in CRLF, as
// in files produced by earlier versions of the tool.
func WriteCSV(w io.Writer, records []domain.Record) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(Header); err != nil {
		return errors.Wrap(err, "could not write csv header")
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return errors.Wrapf(err, "could not write csv row for %s", r.ID)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "could not flush csv")
}
