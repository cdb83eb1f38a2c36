package office

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Workbook exposes the active sheet of an .xlsx file column-wise.
type Workbook struct {
	f     *excelize.File
	sheet string
}

// OpenWorkbook opens path and selects its active sheet.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			f.Close()
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = list[0]
	}
	return &Workbook{f: f, sheet: sheet}, nil
}

// SheetName returns the name of the sheet being edited.
func (w *Workbook) SheetName() string { return w.sheet }

// Column returns the displayed value of every cell in the 1-based column col,
// from row 1 to the last used row. Empty cells are nil.
func (w *Workbook) Column(col int) ([]any, error) {
	rows, err := w.f.GetRows(w.sheet)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(rows))
	for i, row := range rows {
		if col-1 < len(row) && row[col-1] != "" {
			out[i] = row[col-1]
		}
	}
	return out, nil
}

// ClearColumn empties every cell of col up to the last used row.
func (w *Workbook) ClearColumn(col int) error {
	rows, err := w.f.GetRows(w.sheet)
	if err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(col, i+1)
		if err != nil {
			return err
		}
		if err := w.f.SetCellDefault(w.sheet, cell, ""); err != nil {
			return fmt.Errorf("clear %s: %w", cell, err)
		}
	}
	return nil
}

// WriteColumn writes values into col starting at row 1.
func (w *Workbook) WriteColumn(col int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(col, i+1)
		if err != nil {
			return err
		}
		if err := w.f.SetCellStr(w.sheet, cell, v); err != nil {
			return fmt.Errorf("write %s: %w", cell, err)
		}
	}
	return nil
}

// SaveAs writes the workbook to path atomically. The source file is untouched.
func (w *Workbook) SaveAs(path string) error {
	return writeFileAtomic(path, func(out io.Writer) error {
		_, err := w.f.WriteTo(out)
		return err
	})
}

func (w *Workbook) Close() error { return w.f.Close() }
