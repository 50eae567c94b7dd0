// Package store appends extraction rows to an Excel workbook, creating it
// with the fixed column set when absent.
package store

import (
	"fmt"
	"os"

	"github.com/mfarrukh14/pubmed-scraper/internal/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// ExcelStore appends rows to one workbook. Appends are read-modify-write:
// the existing sheet is loaded, missing columns are added, and the merged
// sheet is written back in the fixed column order.
type ExcelStore struct {
	path string
}

// NewExcelStore creates a store for the workbook at path.
func NewExcelStore(path string) *ExcelStore {
	return &ExcelStore{path: path}
}

// Path returns the workbook path.
func (s *ExcelStore) Path() string {
	return s.path
}

// Append adds one row after any existing rows and writes the workbook.
func (s *ExcelStore) Append(row model.Row) error {
	existing, err := s.readRows()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeRow(f, 1, headerCells()); err != nil {
		return err
	}
	for i, r := range existing {
		if err := writeRow(f, i+2, rowCells(r)); err != nil {
			return err
		}
	}
	if err := writeRow(f, len(existing)+2, rowCells(row)); err != nil {
		return err
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// readRows loads existing data rows keyed by header name. A missing file
// yields no rows; an unreadable file is treated as empty, matching the
// create-or-append contract.
func (s *ExcelStore) readRows() ([]model.Row, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat workbook: %w", err)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, nil
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	if err != nil || len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	records := make([]model.Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		rec := make(model.Row, len(header))
		for i, name := range header {
			if i < len(cells) {
				rec[name] = cells[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func headerCells() []interface{} {
	cells := make([]interface{}, len(model.Columns))
	for i, name := range model.Columns {
		cells[i] = name
	}
	return cells
}

// rowCells orders a record's values by the fixed column set; columns the
// record lacks become empty cells.
func rowCells(row model.Row) []interface{} {
	cells := make([]interface{}, len(model.Columns))
	for i, name := range model.Columns {
		cells[i] = row[name]
	}
	return cells
}

func writeRow(f *excelize.File, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("set row %d: %w", rowNum, err)
	}
	return nil
}
