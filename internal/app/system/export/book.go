// internal/app/system/export/book.go
package export

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Book is one workbook under construction. Call Close when done.
type Book struct {
	f      *excelize.File
	taken  map[string]bool
	sheets int
}

// NewBook starts an empty workbook.
func NewBook() *Book {
	return &Book{f: excelize.NewFile(), taken: make(map[string]bool)}
}

// Sheets returns the number of sheets added so far.
func (b *Book) Sheets() int { return b.sheets }

// AddSheet writes rows to a new sheet and returns the name it was given
// after sanitising and de-duplicating. The header is the key order of the
// first row; later rows are laid out by that header, so a key the first
// row lacks is not exported and a missing key leaves an empty cell.
func (b *Book) AddSheet(name string, rows []Row) (string, error) {
	name = uniqueName(SheetName(name), b.taken)

	if b.sheets == 0 {
		// excelize.NewFile ships with "Sheet1"; reuse it as the first sheet.
		if name != defaultSheet {
			if err := b.f.SetSheetName(defaultSheet, name); err != nil {
				return "", errors.Wrapf(err, "rename sheet %q", name)
			}
		}
	} else {
		if _, err := b.f.NewSheet(name); err != nil {
			return "", errors.Wrapf(err, "add sheet %q", name)
		}
	}
	b.taken[strings.ToLower(name)] = true
	b.sheets++

	if len(rows) == 0 {
		return name, nil
	}

	header := rows[0].Keys()
	cells := make([]any, len(header))
	for i, k := range header {
		cells[i] = k
	}
	if err := b.writeRow(name, 1, cells); err != nil {
		return "", err
	}

	for i, row := range rows {
		vals := make([]any, len(header))
		for j, k := range header {
			if v, ok := row.Get(k); ok {
				vals[j] = v
			}
		}
		if err := b.writeRow(name, i+2, vals); err != nil {
			return "", err
		}
	}
	return name, nil
}

func (b *Book) writeRow(sheet string, n int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return errors.Wrap(err, "cell name")
	}
	if err := b.f.SetSheetRow(sheet, cell, &vals); err != nil {
		return errors.Wrapf(err, "write row %d of %q", n, sheet)
	}
	return nil
}

// Bytes serialises the workbook as xlsx.
func (b *Book) Bytes() ([]byte, error) {
	b.f.SetActiveSheet(0)
	buf, err := b.f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}

// Close releases the workbook's temporary resources.
func (b *Book) Close() error { return b.f.Close() }
