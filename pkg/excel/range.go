package excel

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type Cell struct {
	Column string `json:"column"`
	Row    int    `json:"row"`
}

// NewCell parses "B7" or a bare column "B" (Row 0).
func NewCell(cell string) (Cell, error) {
	for i, r := range cell {
		if unicode.IsDigit(r) {
			row, err := strconv.Atoi(cell[i:])
			if err != nil || row <= 0 {
				return Cell{}, fmt.Errorf("invalid cell format: %s", cell)
			}
			c := Cell{Column: strings.ToUpper(cell[:i]), Row: row}
			if _, err := ColumnNumber(c.Column); err != nil {
				return Cell{}, fmt.Errorf("invalid cell format: %s", cell)
			}
			return c, nil
		}
	}
	// Range might have letter only
	if _, err := ColumnNumber(cell); err != nil {
		return Cell{}, fmt.Errorf("invalid cell format: %s", cell)
	}
	return Cell{Column: strings.ToUpper(cell), Row: 0}, nil
}

// Range is a rectangular block of cells, optionally bound to a sheet.
type Range struct {
	Sheet string `json:"sheet,omitempty"`
	Start Cell   `json:"start"`
	End   Cell   `json:"end"`
}

// NewRange parses "A1:B2", "Sheet1!A1:B2" or "'Daily visitors'!A1:B2".
func NewRange(rangeExpr string) (Range, error) {
	var sheet string
	if i := strings.LastIndex(rangeExpr, "!"); i >= 0 {
		sheet = unquoteSheet(rangeExpr[:i])
		rangeExpr = rangeExpr[i+1:]
	}
	parts := strings.Split(rangeExpr, ":")
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("invalid range format: %s", rangeExpr)
	}
	startCell, err := NewCell(parts[0])
	if err != nil {
		return Range{}, err
	}
	endCell, err := NewCell(parts[1])
	if err != nil {
		return Range{}, err
	}
	return Range{Sheet: sheet, Start: startCell, End: endCell}, nil
}

func (c Cell) String() string {
	if c.Row == 0 {
		return c.Column
	}
	return fmt.Sprintf("%s%d", c.Column, c.Row)
}

func (r Range) String() string {
	if r.Sheet == "" {
		return fmt.Sprintf("%s:%s", r.Start.String(), r.End.String())
	}
	return fmt.Sprintf("%s!%s:%s", quoteSheet(r.Sheet), r.Start.String(), r.End.String())
}

// Rows is the number of rows the range spans, 0 for whole-column ranges.
func (r Range) Rows() int {
	if r.Start.Row == 0 || r.End.Row == 0 {
		return 0
	}
	return r.End.Row - r.Start.Row + 1
}

// ColumnLetter converts a 1-based column number to its letter name:
// 1 is "A", 26 is "Z", 27 is "AA", 703 is "AAA".
func ColumnLetter(num int) (string, error) {
	if num <= 0 {
		return "", fmt.Errorf("invalid column number: %d", num)
	}
	var buf []byte
	for num > 0 {
		num--
		buf = append(buf, byte('A'+num%26))
		num /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

// ColumnNumber converts a column name such as "AB" to its 1-based number.
func ColumnNumber(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("invalid column name: empty")
	}
	num := 0
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column name: %s", letters)
		}
		num = num*26 + int(r-'A') + 1
	}
	return num, nil
}

func quoteSheet(name string) string {
	plain := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func unquoteSheet(name string) string {
	if len(name) >= 2 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}
