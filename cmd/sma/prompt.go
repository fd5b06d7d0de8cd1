package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const sheetIDPrompt = `Input sheet ID (9 digits or zero at the end of the sheet URL, after "/edit#gid=")
or just hit Enter to work with the first sheet
>>> `

// parseSheetID accepts "0" or a 9 digit sheet id.
func parseSheetID(s string) (int64, error) {
	if s != "0" && len(s) != 9 {
		return 0, fmt.Errorf("sheet id must be 0 or 9 digits: %q", s)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("sheet id must be 0 or 9 digits: %q", s)
	}
	return id, nil
}

// promptSheetID asks for a sheet id until a valid one or an empty line is
// entered. An empty line or end of input selects the first sheet.
func promptSheetID(in io.Reader, out io.Writer) (int64, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, sheetIDPrompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("failed to read sheet id: %w", err)
			}
			return 0, nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return 0, nil
		}
		id, err := parseSheetID(line)
		if err != nil {
			fmt.Fprintln(out, "Wrong value entered!")
			continue
		}
		return id, nil
	}
}
