package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFixture(t *testing.T, dir string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(dir, "visitors.xlsx")
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func setupRun(t *testing.T, settings string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SPREADSHEET_ID", "")
	t.Setenv("XLSX_PATH", "")
	t.Setenv("SHEET_ID", "")
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(settings), 0o600))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand_Workbook(t *testing.T) {
	dir := setupRun(t, `{"moving_average_interval": 2, "uncounted": "N/A"}`)
	path := writeFixture(t, dir, [][]any{
		{"Date", "Visitors"},
		{"2017-01-01", 100000},
		{"2017-01-02", 30000},
		{"2017-01-03", 70000},
		{"2017-01-04", 10000},
	})

	_, err := execute(t, "--xlsx", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	var got []string
	for _, cell := range []string{"C1", "C2", "C3", "C4", "C5"} {
		v, err := f.GetCellValue("Sheet1", cell)
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []string{"Moving Average", "N/A", "65000", "50000", "40000"}, got)
}

func TestRunCommand_DryRun(t *testing.T) {
	dir := setupRun(t, `{"moving_average_interval": 1}`)
	path := writeFixture(t, dir, [][]any{
		{"Date", "Visitors"},
		{"2017-01-01", 1},
		{"2017-01-02", 2},
	})

	_, err := execute(t, "--xlsx", path, "--dry-run")
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Sheet1", "C1")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestRunCommand_NoData(t *testing.T) {
	dir := setupRun(t, `{"moving_average_interval": 2}`)
	path := writeFixture(t, dir, [][]any{{"Date", "Visitors"}})

	out, err := execute(t, "--xlsx", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No data found.")
}

func TestRunCommand_MissingHeader(t *testing.T) {
	dir := setupRun(t, `{"moving_average_interval": 2}`)
	path := writeFixture(t, dir, [][]any{{"Day", "Clicks"}, {"1", 2}, {"2", 3}})

	_, err := execute(t, "--xlsx", path)
	assert.Error(t, err)
}

func TestRunCommand_MissingSettings(t *testing.T) {
	setupRun(t, `{}`)

	_, err := execute(t, "--settings", "wrong_settings.json", "--xlsx", "visitors.xlsx")
	assert.Error(t, err)
}
