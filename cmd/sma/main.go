package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"sheets-moving-average/config"
	"sheets-moving-average/pkg/pipeline"
	"sheets-moving-average/pkg/series"
	"sheets-moving-average/pkg/sheets"
	"sheets-moving-average/pkg/workbook"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type runFlags struct {
	settingsPath string
	sheetID      int64
	interactive  bool
	xlsxPath     string
	xlsxSheet    string
	dryRun       bool
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "sma",
		Short: "Write the moving average of a visitors column back into its sheet",
		Long: `Reads a sheet, finds the header row holding "Date" and "Visitors", computes
the simple moving average of the visitors column and writes it into the
"Moving Average" column, creating the column after the last header column
when it does not exist yet.

The sheet is a Google Sheets spreadsheet (SPREADSHEET_ID) or a local .xlsx
workbook (--xlsx or XLSX_PATH).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.settingsPath, "settings", "", "Settings file (default $SETTINGS_PATH or settings.json)")
	cmd.Flags().Int64Var(&flags.sheetID, "sheet-id", 0, "Numeric sheet id (gid), 0 for the first sheet (default $SHEET_ID)")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Prompt for the sheet id")
	cmd.Flags().StringVar(&flags.xlsxPath, "xlsx", "", "Local .xlsx workbook used instead of a spreadsheet")
	cmd.Flags().StringVar(&flags.xlsxSheet, "sheet", "", "Worksheet of the .xlsx workbook, first sheet when empty")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Compute without writing back")

	return cmd
}

func run(cmd *cobra.Command, flags runFlags) error {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flags.settingsPath != "" {
		cfg.SettingsPath = flags.settingsPath
	}
	if cmd.Flags().Changed("sheet-id") {
		cfg.SheetID = flags.sheetID
	}
	if flags.xlsxPath != "" {
		cfg.XLSXPath = flags.xlsxPath
	}
	if flags.xlsxSheet != "" {
		cfg.XLSXSheet = flags.xlsxSheet
	}

	// 2. Setup Logger
	setupLogger(cfg.LogLevel)
	logger := slog.Default().With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	// 3. Load Settings
	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		slog.Error("Failed to load settings", "path", cfg.SettingsPath, "error", err)
		return err
	}
	cfg.Merge(settings)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if flags.interactive && cfg.XLSXPath == "" {
		id, err := promptSheetID(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		cfg.SheetID = id
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// 4. Init Store
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open sheet", "error", err)
		return err
	}
	defer closeStore()

	// 5. Run
	opts := pipeline.Options{
		Interval:     settings.MovingAverageInterval,
		Placeholder:  series.CoerceValue(settings.Uncounted),
		HeaderLabels: settings.HeaderLabels,
		SourceLabel:  settings.SourceLabel,
		TargetLabel:  settings.TargetLabel,
		HeaderRow:    settings.HeaderRow,
		DryRun:       flags.dryRun,
	}
	slog.Info("Computing moving average", "interval", opts.Interval, "uncounted", opts.Placeholder.String())

	res, err := pipeline.Run(ctx, store, opts)
	if errors.Is(err, pipeline.ErrEmptyDataset) {
		fmt.Fprintln(cmd.OutOrStdout(), "No data found.")
		return nil
	}
	if err != nil {
		slog.Error("Moving average run failed", "error", err)
		return err
	}

	slog.Info("Run complete",
		"write_range", res.WriteRange.String(),
		"written", res.Written,
		"computed", res.Summary.Computed,
		"skipped", res.Summary.Skipped,
		"mean", res.Summary.Mean,
	)
	return nil
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(logger)
}

func openStore(ctx context.Context, cfg *config.Config) (pipeline.GridStore, func(), error) {
	if cfg.XLSXPath != "" {
		w, err := workbook.Open(cfg.XLSXPath, cfg.XLSXSheet)
		if err != nil {
			return nil, nil, err
		}
		return w, func() { w.Close() }, nil
	}

	opts := sheets.ClientOptions(cfg.GoogleCredentialsPath, cfg.GoogleAPIKey, cfg.Scopes, cfg.ApplicationName)
	c, err := sheets.NewClient(ctx, cfg.SpreadsheetID, cfg.SheetID, opts...)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Sheets integration enabled", "spreadsheet_id", c.SpreadsheetID(), "sheet_id", cfg.SheetID)
	return c, func() {}, nil
}
