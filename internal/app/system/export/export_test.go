package export

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func readBook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestExportRows_Empty(t *testing.T) {
	res, err := ExportRows(nil, "x.xlsx", "Reports")
	if err != nil {
		t.Fatalf("ExportRows: %v", err)
	}
	if !res.Empty() {
		t.Fatal("expected no file for empty input")
	}
	if res.Message != MsgNoData {
		t.Errorf("Message = %q, want %q", res.Message, MsgNoData)
	}
}

func TestExportRows_SingleRow(t *testing.T) {
	res, err := ExportRows([]Row{NewRow("a", 1, "b", 2)}, "t.xlsx", "Data")
	if err != nil {
		t.Fatalf("ExportRows: %v", err)
	}
	if res.Empty() {
		t.Fatal("expected a file")
	}
	if res.Message != "t.xlsx downloaded successfully" {
		t.Errorf("Message = %q", res.Message)
	}

	f := readBook(t, res.Download.Data)
	if got := f.GetSheetList(); len(got) != 1 || got[0] != "Data" {
		t.Fatalf("sheets = %v, want [Data]", got)
	}
	rows, err := f.GetRows("Data")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := [][]string{{"a", "b"}, {"1", "2"}}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	for i := range want {
		if strings.Join(rows[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestAddSheet_HeaderFromFirstRowOnly(t *testing.T) {
	b := NewBook()
	defer b.Close()
	rows := []Row{
		NewRow("a", "x", "b", "y"),
		NewRow("b", "only-b", "c", "dropped"),
	}
	if _, err := b.AddSheet("S", rows); err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	got, err := readBook(t, data).GetRows("S")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if strings.Join(got[0], ",") != "a,b" {
		t.Errorf("header = %v, want [a b]", got[0])
	}
	// missing "a" is an empty cell; "c" is not in the header
	if len(got[2]) != 2 || got[2][0] != "" || got[2][1] != "only-b" {
		t.Errorf("row 2 = %q, want [\"\" \"only-b\"]", got[2])
	}
}

func TestExportSheets_KeepsEmptySheets(t *testing.T) {
	res, err := ExportSheets("d.xlsx",
		Sheet{Name: "Reports"},
		Sheet{Name: "Ratings", Rows: []Row{NewRow("Rating", 5)}},
	)
	if err != nil {
		t.Fatalf("ExportSheets: %v", err)
	}
	f := readBook(t, res.Download.Data)
	if got := f.GetSheetList(); strings.Join(got, ",") != "Reports,Ratings" {
		t.Errorf("sheets = %v", got)
	}
}

func TestExportSheets_AllEmpty(t *testing.T) {
	res, err := ExportSheets("d.xlsx", Sheet{Name: "A"}, Sheet{Name: "B"})
	if err != nil {
		t.Fatalf("ExportSheets: %v", err)
	}
	if !res.Empty() || res.Message != MsgNoData {
		t.Errorf("got %+v, want no-data result", res)
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Reports", "Reports"},
		{"", "Sheet1"},
		{"   ", "Sheet1"},
		{"a/b:c", "a_b_c"},
		{"[x]*?\\", "_x____"},
		{"'quoted'", "quoted"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
		{strings.Repeat("é", 35), strings.Repeat("é", 31)},
	}
	for _, tt := range tests {
		if got := SheetName(tt.in); got != tt.want {
			t.Errorf("SheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAddSheet_DeduplicatesNames(t *testing.T) {
	b := NewBook()
	defer b.Close()
	first, err := b.AddSheet("Data", nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.AddSheet("data", nil)
	if err != nil {
		t.Fatal(err)
	}
	third, err := b.AddSheet(strings.Repeat("z", 31), nil)
	if err != nil {
		t.Fatal(err)
	}
	fourth, err := b.AddSheet(strings.Repeat("z", 40), nil)
	if err != nil {
		t.Fatal(err)
	}
	if first != "Data" || second != "data (2)" {
		t.Errorf("names = %q, %q", first, second)
	}
	if third != strings.Repeat("z", 31) {
		t.Errorf("third = %q", third)
	}
	if fourth != strings.Repeat("z", 27)+" (2)" {
		t.Errorf("fourth = %q", fourth)
	}
	if b.Sheets() != 4 {
		t.Errorf("Sheets() = %d, want 4", b.Sheets())
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		ctx, want string
	}{
		{"reports", "reports_2024-03-09.xlsx"},
		{"LUCT Reports", "LUCT_Reports_2024-03-09.xlsx"},
		{"Mary  Ann Smith", "Mary_Ann_Smith_2024-03-09.xlsx"},
		{"", "export_2024-03-09.xlsx"},
	}
	for _, tt := range tests {
		if got := Filename(tt.ctx, now); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.ctx, got, tt.want)
		}
	}
}

func TestServe(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := Serve(rec, &Download{Filename: "r_2024-01-01.xlsx", Data: []byte("PK")}); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if got := rec.Header().Get("Content-Type"); got != ContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="r_2024-01-01.xlsx"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if rec.Body.String() != "PK" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
