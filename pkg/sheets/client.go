package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sheets-moving-average/pkg/excel"
	"sheets-moving-average/pkg/pipeline"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

var ErrSheetNotFound = errors.New("sheet not found")

// ValueInputOption makes the service parse written values as if typed by a user.
const ValueInputOption = "USER_ENTERED"

// Client reads and writes one sheet of a spreadsheet.
type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	sheetID       int64
}

// ClientOptions builds the service options. Scopes default to read/write
// spreadsheet access.
func ClientOptions(credentialsPath, apiKey string, scopes []string, userAgent string) []option.ClientOption {
	opts := []option.ClientOption{}
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if len(scopes) == 0 {
		scopes = []string{sheetsv4.SpreadsheetsScope}
	}
	opts = append(opts, option.WithScopes(scopes...))
	if userAgent != "" {
		opts = append(opts, option.WithUserAgent(userAgent))
	}
	return opts
}

// NewClient connects to the spreadsheet. sheetID selects the sheet by its
// numeric id, the "gid" of the sheet URL. 0 is the first sheet.
func NewClient(ctx context.Context, spreadsheetID string, sheetID int64, opts ...option.ClientOption) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is empty")
	}
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		slog.Error("Failed to create Sheets service", "error", err)
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{srv: srv, spreadsheetID: spreadsheetID, sheetID: sheetID}, nil
}

func (c *Client) SpreadsheetID() string { return c.spreadsheetID }

// Bounds returns the title and grid size of the selected sheet.
func (c *Client) Bounds(ctx context.Context) (pipeline.Bounds, error) {
	slog.Debug("Fetching spreadsheet properties", "spreadsheet_id", c.spreadsheetID, "sheet_id", c.sheetID)
	spreadsheet, err := c.srv.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		slog.Error("Failed to fetch spreadsheet", "spreadsheet_id", c.spreadsheetID, "error", err)
		return pipeline.Bounds{}, fmt.Errorf("failed to fetch spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		props := sheet.Properties
		if props == nil || props.SheetId != c.sheetID {
			continue
		}
		bounds := pipeline.Bounds{Title: props.Title}
		if props.GridProperties != nil {
			bounds.Rows = int(props.GridProperties.RowCount)
			bounds.Columns = int(props.GridProperties.ColumnCount)
		}
		slog.Info("Found sheet", "title", bounds.Title, "rows", bounds.Rows, "columns", bounds.Columns)
		return bounds, nil
	}

	return pipeline.Bounds{}, fmt.Errorf("%w: id %d in spreadsheet %s", ErrSheetNotFound, c.sheetID, c.spreadsheetID)
}

func (c *Client) FetchGrid(ctx context.Context, rng excel.Range) ([][]any, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, rng.String()).
		Context(ctx).
		Do()
	if err != nil {
		slog.Error("Failed to fetch values", "range", rng.String(), "error", err)
		return nil, fmt.Errorf("failed to fetch values %s: %w", rng.String(), err)
	}
	return resp.Values, nil
}

func (c *Client) WriteGrid(ctx context.Context, rng excel.Range, values [][]any) error {
	body := &sheetsv4.ValueRange{
		MajorDimension: "ROWS",
		Range:          rng.String(),
		Values:         values,
	}
	resp, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, rng.String(), body).
		ValueInputOption(ValueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		slog.Error("Failed to update values", "range", rng.String(), "error", err)
		return fmt.Errorf("failed to update values %s: %w", rng.String(), err)
	}
	slog.Debug("Updated values", "range", resp.UpdatedRange, "cells", resp.UpdatedCells)
	return nil
}
