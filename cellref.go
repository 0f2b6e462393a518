package xlwrap

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	cellRefPattern   = regexp.MustCompile(`(?i)^([A-Z]+)(\d+)$`)
	rangeRefPattern  = regexp.MustCompile(`(?i)^[A-Z]+\d+(:[A-Z]+\d+)?$`)
	columnRefPattern = regexp.MustCompile(`(?i)^[A-Z]+(:[A-Z]+)?$`)
)

// Bounds is an inclusive rectangle of 1-based row and column indexes.
type Bounds struct {
	MinRow int
	MinCol int
	MaxRow int
	MaxCol int
}

// String formats the bounds as "A1:C5", or "B2" for a single cell.
func (b Bounds) String() string {
	first := CellReference(b.MinRow, b.MinCol)
	if b.MinRow == b.MaxRow && b.MinCol == b.MaxCol {
		return first
	}
	return first + ":" + CellReference(b.MaxRow, b.MaxCol)
}

// ParseCellReference parses a cell reference like "B68" into (68, 2).
// Letters are case-insensitive.
func ParseCellReference(s string) (row, col int, err error) {
	m := cellRefPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: cell %q", ErrInvalidReference, s)
	}

	col, err = ColumnIndex(m[1])
	if err != nil {
		return 0, 0, err
	}

	row, err = strconv.Atoi(m[2])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("%w: row in cell %q", ErrInvalidReference, s)
	}
	return row, col, nil
}

// ParseRangeReference parses "A1" or "A6:C10" into bounds. The corners may
// be given in any order: "C10:A6" is the same rectangle as "A6:C10".
func ParseRangeReference(s string) (Bounds, error) {
	if !rangeRefPattern.MatchString(s) {
		return Bounds{}, fmt.Errorf("%w: range %q", ErrInvalidReference, s)
	}

	first, last := s, s
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		first, last = s[:idx], s[idx+1:]
	}

	r1, c1, err := ParseCellReference(first)
	if err != nil {
		return Bounds{}, err
	}
	r2, c2, err := ParseCellReference(last)
	if err != nil {
		return Bounds{}, err
	}

	return Bounds{
		MinRow: min(r1, r2),
		MinCol: min(c1, c2),
		MaxRow: max(r1, r2),
		MaxCol: max(c1, c2),
	}, nil
}

// ParseColumnRange parses "AB" or "B:IV" into a column span.
func ParseColumnRange(s string) (minCol, maxCol int, err error) {
	if !columnRefPattern.MatchString(s) {
		return 0, 0, fmt.Errorf("%w: columns %q", ErrInvalidReference, s)
	}

	first, last := s, s
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		first, last = s[:idx], s[idx+1:]
	}

	c1, err := ColumnIndex(first)
	if err != nil {
		return 0, 0, err
	}
	c2, err := ColumnIndex(last)
	if err != nil {
		return 0, 0, err
	}
	return min(c1, c2), max(c1, c2), nil
}

// maxColumnLetters keeps ColumnIndex well clear of int overflow.
const maxColumnLetters = 10

// ColumnIndex converts column letters to a 1-based index.
// "A"→1, "Z"→26, "AA"→27, "AB"→28
func ColumnIndex(letters string) (int, error) {
	if letters == "" || len(letters) > maxColumnLetters {
		return 0, fmt.Errorf("%w: column %q", ErrInvalidReference, letters)
	}
	col := 0
	for _, ch := range strings.ToUpper(letters) {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: column %q", ErrInvalidReference, letters)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col, nil
}

// ColumnLetters converts a 1-based column index to its letters.
// 1→"A", 26→"Z", 27→"AA", 703→"AAA". Indexes below 1 yield "".
func ColumnLetters(col int) string {
	var buf []byte
	for col > 0 {
		col--
		buf = append(buf, byte('A'+col%26))
		col /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// CellReference formats a 1-based (row, col) pair as "B5".
func CellReference(row, col int) string {
	return ColumnLetters(col) + strconv.Itoa(row)
}
