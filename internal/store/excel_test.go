package store

import (
	"path/filepath"
	"testing"

	"github.com/mfarrukh14/pubmed-scraper/internal/model"
	"github.com/xuri/excelize/v2"
)

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("Read sheet: %v", err)
	}
	return rows
}

// cellByName returns the value in a data row under the named header column.
// GetRows drops trailing empty cells, so short rows read as empty.
func cellByName(t *testing.T, header, cells []string, name string) string {
	t.Helper()

	for i, h := range header {
		if h == name {
			if i < len(cells) {
				return cells[i]
			}
			return ""
		}
	}
	t.Fatalf("Column %q not in header %v", name, header)
	return ""
}

func TestAppend_CreatesWorkbookWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.xlsx")
	s := NewExcelStore(path)

	err := s.Append(model.Row{
		"Author(s)": "Sana Malik",
		"Title":     "TCF7L2 variants and diabetes",
		"Year":      "2021",
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	rows := readSheet(t, path)
	if len(rows) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d rows", len(rows))
	}
	for i, name := range model.Columns {
		if i >= len(rows[0]) || rows[0][i] != name {
			t.Fatalf("Header mismatch at %d: %v", i, rows[0])
		}
	}
	if got := cellByName(t, rows[0], rows[1], "Author(s)"); got != "Sana Malik" {
		t.Errorf("Unexpected author cell: %q", got)
	}
}

func TestAppend_PreservesExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.xlsx")
	s := NewExcelStore(path)

	if err := s.Append(model.Row{"Title": "First article"}); err != nil {
		t.Fatalf("First append failed: %v", err)
	}
	if err := s.Append(model.Row{"Title": "Second article", "Region": "Pakistan"}); err != nil {
		t.Fatalf("Second append failed: %v", err)
	}

	rows := readSheet(t, path)
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d rows", len(rows))
	}
	if got := cellByName(t, rows[0], rows[1], "Title"); got != "First article" {
		t.Errorf("First row lost: %q", got)
	}
	if got := cellByName(t, rows[0], rows[2], "Region"); got != "Pakistan" {
		t.Errorf("Second row region: %q", got)
	}
}

func TestAppend_MultilineCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.xlsx")
	s := NewExcelStore(path)

	gene := "1:PPARG(rs1801282 (Pro12Ala))\n2:HNF4A(rs745975)"
	if err := s.Append(model.Row{"Gene": gene}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	rows := readSheet(t, path)
	if got := cellByName(t, rows[0], rows[1], "Gene"); got != gene {
		t.Errorf("Gene cell round-trip: %q", got)
	}
}

func TestPath(t *testing.T) {
	s := NewExcelStore("out/articles.xlsx")
	if s.Path() != "out/articles.xlsx" {
		t.Errorf("Unexpected path: %q", s.Path())
	}
}
