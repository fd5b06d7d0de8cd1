package workbook

import (
	"context"
	"fmt"
	"log/slog"

	"sheets-moving-average/pkg/excel"
	"sheets-moving-average/pkg/pipeline"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

// Workbook is one worksheet of a local .xlsx file.
type Workbook struct {
	path  string
	sheet string
	file  *excelize.File
}

// Open opens the workbook at path. An empty sheet selects the first worksheet.
func Open(path, sheet string) (*Workbook, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook %s: %w", path, err)
	}
	if !isZip(mtype) {
		slog.Error("Workbook is not an xlsx file", "path", path, "mimetype", mtype.String())
		return nil, fmt.Errorf("workbook %s is %s, not xlsx", path, mtype.String())
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		f.Close()
		return nil, fmt.Errorf("sheet %q not found in %s", sheet, path)
	}

	slog.Info("Opened workbook", "path", path, "sheet", sheet, "mimetype", mtype.String())
	return &Workbook{path: path, sheet: sheet, file: f}, nil
}

// xlsx files are detected as xlsx or as plain zip, depending on entry order.
func isZip(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

func (w *Workbook) Sheet() string { return w.sheet }

func (w *Workbook) Bounds(ctx context.Context) (pipeline.Bounds, error) {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return pipeline.Bounds{}, fmt.Errorf("failed to read rows of %s: %w", w.sheet, err)
	}
	bounds := pipeline.Bounds{Title: w.sheet, Rows: max(len(rows), 1), Columns: 1}
	for _, row := range rows {
		bounds.Columns = max(bounds.Columns, len(row))
	}
	return bounds, nil
}

func (w *Workbook) FetchGrid(ctx context.Context, rng excel.Range) ([][]any, error) {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", w.sheet, err)
	}
	firstCol, err := excel.ColumnNumber(rng.Start.Column)
	if err != nil {
		return nil, err
	}
	lastCol, err := excel.ColumnNumber(rng.End.Column)
	if err != nil {
		return nil, err
	}
	firstRow := max(rng.Start.Row, 1)
	lastRow := rng.End.Row
	if lastRow == 0 || lastRow > len(rows) {
		lastRow = len(rows)
	}

	var grid [][]any
	for r := firstRow; r <= lastRow; r++ {
		row := rows[r-1]
		cells := []any{}
		for c := firstCol; c <= lastCol && c <= len(row); c++ {
			cells = append(cells, row[c-1])
		}
		grid = append(grid, trimTrailingEmpty(cells))
	}
	return grid, nil
}

func trimTrailingEmpty(cells []any) []any {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}

// WriteGrid sets every cell of values starting at the top-left of rng and saves
// the workbook.
func (w *Workbook) WriteGrid(ctx context.Context, rng excel.Range, values [][]any) error {
	firstCol, err := excel.ColumnNumber(rng.Start.Column)
	if err != nil {
		return err
	}
	firstRow := max(rng.Start.Row, 1)

	for i, row := range values {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(firstCol+j, firstRow+i)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := w.file.SetCellValue(w.sheet, cell, v); err != nil {
				return fmt.Errorf("failed to set %s: %w", cell, err)
			}
		}
	}

	if err := w.file.Save(); err != nil {
		slog.Error("Failed to save workbook", "path", w.path, "error", err)
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	slog.Debug("Saved workbook", "path", w.path, "range", rng.String())
	return nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}
