// internal/app/system/export/export.go
package export

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// MsgNoData is what the user is told when there is nothing to export.
const MsgNoData = "No data to export"

// ContentType is the xlsx MIME type.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet pairs a sheet name with its rows.
type Sheet struct {
	Name string
	Rows []Row
}

// Download is a finished workbook ready to send.
type Download struct {
	Filename string
	Data     []byte
}

// Result is the outcome of an export action. Exactly one of Download or a
// no-data Message applies; on success Message confirms the download.
type Result struct {
	Download *Download
	Message  string
}

// Empty reports whether the export produced no file.
func (r Result) Empty() bool { return r.Download == nil }

// ExportRows writes rows to a single-sheet workbook. Empty input is not an
// error: the Result carries MsgNoData and no file.
func ExportRows(rows []Row, filename, sheetName string) (Result, error) {
	return ExportSheets(filename, Sheet{Name: sheetName, Rows: rows})
}

// ExportSheets writes a multi-sheet workbook. It produces no file only when
// every sheet is empty; otherwise empty sheets are kept (with no header) so
// the workbook layout is stable.
func ExportSheets(filename string, sheets ...Sheet) (Result, error) {
	total := 0
	for _, s := range sheets {
		total += len(s.Rows)
	}
	if total == 0 {
		return Result{Message: MsgNoData}, nil
	}

	b := NewBook()
	defer b.Close()
	for _, s := range sheets {
		if _, err := b.AddSheet(s.Name, s.Rows); err != nil {
			return Result{}, err
		}
	}
	data, err := b.Bytes()
	if err != nil {
		return Result{}, err
	}
	return Result{
		Download: &Download{Filename: filename, Data: data},
		Message:  fmt.Sprintf("%s downloaded successfully", filename),
	}, nil
}

var nonName = regexp.MustCompile(`[^\p{L}\p{N}_.-]+`)

// Filename builds "{context}_{YYYY-MM-DD}.xlsx". Runs of whitespace and
// other unsafe characters in context become a single underscore.
func Filename(context string, now time.Time) string {
	slug := nonName.ReplaceAllString(context, "_")
	if slug == "" || slug == "_" {
		slug = "export"
	}
	return slug + "_" + now.Format("2006-01-02") + ".xlsx"
}

// Serve writes d as an attachment.
func Serve(w http.ResponseWriter, d *Download) error {
	if d == nil {
		return errors.New("nothing to serve")
	}
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(d.Filename)))
	w.Header().Set("Content-Length", strconv.Itoa(len(d.Data)))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(d.Data)
	return err
}
