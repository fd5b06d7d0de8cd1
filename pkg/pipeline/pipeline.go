package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sheets-moving-average/pkg/excel"
	"sheets-moving-average/pkg/series"
)

const (
	DefaultSourceLabel = "Visitors"
	DefaultTargetLabel = "Moving Average"
)

var DefaultHeaderLabels = []string{"Date", "Visitors"}

// ErrEmptyDataset is returned along with a Result when the header is the last
// row. Nothing is written in that case.
var ErrEmptyDataset = errors.New("no data rows below the header")

// Bounds is the used size of a worksheet.
type Bounds struct {
	Title   string
	Rows    int
	Columns int
}

// GridStore reads and writes blocks of cell values.
type GridStore interface {
	Bounds(ctx context.Context) (Bounds, error)
	FetchGrid(ctx context.Context, rng excel.Range) ([][]any, error)
	WriteGrid(ctx context.Context, rng excel.Range, values [][]any) error
}

type Options struct {
	Interval     int
	Placeholder  series.Value
	HeaderLabels []string
	SourceLabel  string
	TargetLabel  string
	// HeaderRow fixes the 1-based header row. 0 finds it.
	HeaderRow int
	DryRun    bool
}

func (o Options) withDefaults() Options {
	if len(o.HeaderLabels) == 0 {
		o.HeaderLabels = DefaultHeaderLabels
	}
	if o.SourceLabel == "" {
		o.SourceLabel = DefaultSourceLabel
	}
	if o.TargetLabel == "" {
		o.TargetLabel = DefaultTargetLabel
	}
	return o
}

type Result struct {
	SourceRange excel.Range
	WriteRange  excel.Range
	HeaderIndex int
	NewColumn   bool
	Averages    []series.Value
	Summary     series.Summary
	Written     bool
}

// Run reads the sheet, computes the moving average of the source column and
// writes it into the target column.
func Run(ctx context.Context, store GridStore, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	// 1. Read the used area
	bounds, err := store.Bounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet bounds: %w", err)
	}
	source, err := excel.SheetRange(bounds.Title, bounds.Columns, bounds.Rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build source range: %w", err)
	}

	slog.Info("Fetching sheet values", "range", source.String())
	grid, err := store.FetchGrid(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grid: %w", err)
	}
	slog.Debug("Fetched sheet values", "range", source.String(), "rows", len(grid))

	// 2. Find the header and columns
	headerIndex, err := findHeader(grid, opts)
	if err != nil {
		return nil, err
	}
	header := grid[headerIndex]

	sourceIndex, err := excel.ColumnIndex(header, opts.SourceLabel)
	if err != nil {
		return nil, err
	}
	targetIndex, isNew := excel.LocateOrAppendTargetColumn(header, opts.TargetLabel)
	slog.Debug("Located columns", "header_row", source.Start.Row+headerIndex, "source_index", sourceIndex, "target_index", targetIndex, "new_column", isNew)

	res := &Result{
		SourceRange: source,
		HeaderIndex: headerIndex,
		NewColumn:   isNew,
	}

	rows := grid[headerIndex+1:]
	if len(rows) == 0 {
		slog.Warn("No data found", "range", source.String(), "header_row", source.Start.Row+headerIndex)
		return res, ErrEmptyDataset
	}

	// 3. Compute
	data := series.Coerce(columnValues(rows, sourceIndex, opts.Placeholder))
	averages, err := series.MovingAverages(data, opts.Interval, opts.Placeholder)
	if err != nil {
		return nil, err
	}
	res.Averages = averages
	res.Summary = series.Summarize(averages)

	// 4. Write back
	rowOffset := 1
	var values [][]any
	if isNew {
		rowOffset = 0
		values = append(values, []any{opts.TargetLabel})
	}
	for _, v := range averages {
		values = append(values, []any{v.Interface()})
	}

	res.WriteRange, err = excel.BuildWriteRange(source.Sheet, source.Start, headerIndex, targetIndex, rowOffset, len(rows))
	if err != nil {
		return nil, fmt.Errorf("failed to build write range: %w", err)
	}

	if opts.DryRun {
		slog.Info("Dry run, skipping write", "range", res.WriteRange.String(), "values", len(values))
		return res, nil
	}

	if err := store.WriteGrid(ctx, res.WriteRange, values); err != nil {
		return nil, fmt.Errorf("failed to write moving averages: %w", err)
	}
	res.Written = true

	slog.Info("Moving averages written", "range", res.WriteRange.String(), "computed", res.Summary.Computed, "skipped", res.Summary.Skipped)
	return res, nil
}

func findHeader(grid [][]any, opts Options) (int, error) {
	if opts.HeaderRow > 0 {
		return excel.HeaderAt(grid, opts.HeaderRow, opts.HeaderLabels)
	}
	return excel.LocateHeader(grid, opts.HeaderLabels)
}

// columnValues picks the cell at index from every row. Empty rows and rows
// that end before index yield the placeholder.
func columnValues(rows [][]any, index int, placeholder series.Value) []any {
	values := make([]any, 0, len(rows))
	for _, row := range rows {
		if index >= len(row) {
			values = append(values, placeholder)
			continue
		}
		values = append(values, row[index])
	}
	return values
}
