package excel

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrHeaderNotFound = errors.New("header row not found")
	ErrColumnNotFound = errors.New("column not found")
)

// Label returns the header label in a cell, or "" for anything that is not a
// string.
func Label(cell any) string {
	s, _ := cell.(string)
	return s
}

func hasLabels(row []any, labels []string) bool {
	for _, label := range labels {
		if !slices.ContainsFunc(row, func(cell any) bool { return Label(cell) == label }) {
			return false
		}
	}
	return true
}

// LocateHeader returns the index of the first row holding every label.
func LocateHeader(grid [][]any, labels []string) (int, error) {
	for idx, row := range grid {
		if hasLabels(row, labels) {
			return idx, nil
		}
	}
	return 0, fmt.Errorf("%w: no row among %d contains %q", ErrHeaderNotFound, len(grid), labels)
}

// HeaderAt checks that the 1-based row holds every label and returns its index
// in grid.
func HeaderAt(grid [][]any, row int, labels []string) (int, error) {
	if row <= 0 || row > len(grid) {
		return 0, fmt.Errorf("%w: row %d is outside the %d fetched rows", ErrHeaderNotFound, row, len(grid))
	}
	if !hasLabels(grid[row-1], labels) {
		return 0, fmt.Errorf("%w: row %d does not contain %q", ErrHeaderNotFound, row, labels)
	}
	return row - 1, nil
}

// ColumnIndex returns the 0-based position of label in header.
func ColumnIndex(header []any, label string) (int, error) {
	for idx, cell := range header {
		if Label(cell) == label {
			return idx, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, label)
}

// LocateOrAppendTargetColumn returns the index of label in header. When the
// label is missing it returns len(header) and true: the column has to be
// created right after the last header column.
func LocateOrAppendTargetColumn(header []any, label string) (int, bool) {
	if idx, err := ColumnIndex(header, label); err == nil {
		return idx, false
	}
	return len(header), true
}

// BuildWriteRange returns the single-column range receiving results below the
// header. origin is the top-left cell the grid was read from, headerIndex and
// targetIndex are positions within that grid. rowOffset is 0 when the header
// label is written along with the values, 1 when only the values below it are.
func BuildWriteRange(sheet string, origin Cell, headerIndex, targetIndex, rowOffset, dataRows int) (Range, error) {
	if headerIndex < 0 || targetIndex < 0 || dataRows < 0 {
		return Range{}, fmt.Errorf("invalid write position: header %d, column %d, rows %d", headerIndex, targetIndex, dataRows)
	}
	if rowOffset != 0 && rowOffset != 1 {
		return Range{}, fmt.Errorf("invalid row offset: %d", rowOffset)
	}
	startCol, err := ColumnNumber(origin.Column)
	if err != nil {
		return Range{}, err
	}
	column, err := ColumnLetter(startCol + targetIndex)
	if err != nil {
		return Range{}, err
	}
	startRow := origin.Row
	if startRow == 0 {
		startRow = 1
	}

	headerRow := startRow + headerIndex
	return Range{
		Sheet: sheet,
		Start: Cell{Column: column, Row: headerRow + rowOffset},
		End:   Cell{Column: column, Row: headerRow + dataRows},
	}, nil
}

// SheetRange is the area from A1 to the last column and row of a sheet.
func SheetRange(sheet string, columns, rows int) (Range, error) {
	if rows <= 0 {
		return Range{}, fmt.Errorf("invalid row count: %d", rows)
	}
	last, err := ColumnLetter(columns)
	if err != nil {
		return Range{}, err
	}
	return Range{
		Sheet: sheet,
		Start: Cell{Column: "A", Row: 1},
		End:   Cell{Column: last, Row: rows},
	}, nil
}
