package xlwrap

import (
	"fmt"
	"strconv"
)

// Sheet edges. A bound at or beyond its sentinel extends to the edge of the
// worksheet.
const (
	RowInfinity = 65536
	ColInfinity = 256 // column "IV"
)

// RangeKind says whether a Range is viewed as cells, whole rows or whole columns.
type RangeKind int

const (
	CellBlock RangeKind = iota
	EntireColumns
	EntireRows
)

// String returns a human-readable name for the RangeKind.
func (k RangeKind) String() string {
	switch k {
	case CellBlock:
		return "CellBlock"
	case EntireColumns:
		return "EntireColumns"
	case EntireRows:
		return "EntireRows"
	default:
		return "Unknown"
	}
}

// Range is a cell, a row, a column, or a rectangular block of cells on a
// worksheet. It is an immutable value: every derivation returns a new Range.
// A Range borrows its worksheet and must not outlive the workbook.
type Range struct {
	minRow, minCol int
	maxRow, maxCol int
	kind           RangeKind
	ws             *Worksheet
}

// NewRange creates a Range with explicit bounds and kind. Corners given in
// the wrong order are swapped.
func NewRange(ws *Worksheet, b Bounds, kind RangeKind) Range {
	return Range{
		minRow: min(b.MinRow, b.MaxRow),
		minCol: min(b.MinCol, b.MaxCol),
		maxRow: max(b.MinRow, b.MaxRow),
		maxCol: max(b.MinCol, b.MaxCol),
		kind:   kind,
		ws:     ws,
	}
}

// NewCellRange creates a 1×1 CellBlock.
func NewCellRange(ws *Worksheet, row, col int) Range {
	return NewRange(ws, Bounds{row, col, row, col}, CellBlock)
}

// ParseRange creates a CellBlock from a reference like "B3" or "A2:IV65536".
func ParseRange(ws *Worksheet, ref string) (Range, error) {
	b, err := ParseRangeReference(ref)
	if err != nil {
		return Range{}, err
	}
	return NewRange(ws, b, CellBlock), nil
}

// SheetRange creates a Range of the given kind spanning the whole worksheet.
func SheetRange(ws *Worksheet, kind RangeKind) Range {
	return NewRange(ws, Bounds{1, 1, RowInfinity, ColInfinity}, kind)
}

// ColumnRange creates an EntireColumns range from "AB" or "B:IV".
func ColumnRange(ws *Worksheet, letters string) (Range, error) {
	minCol, maxCol, err := ParseColumnRange(letters)
	if err != nil {
		return Range{}, err
	}
	return NewRange(ws, Bounds{1, minCol, RowInfinity, maxCol}, EntireColumns), nil
}

// Row returns the first row of the range.
func (r Range) Row() int { return r.minRow }

// Column returns the first column of the range.
func (r Range) Column() int { return r.minCol }

// Bounds returns the range's rectangle.
func (r Range) Bounds() Bounds {
	return Bounds{MinRow: r.minRow, MinCol: r.minCol, MaxRow: r.maxRow, MaxCol: r.maxCol}
}

// Kind returns how the range is viewed.
func (r Range) Kind() RangeKind { return r.kind }

// Worksheet returns the worksheet the range belongs to.
func (r Range) Worksheet() *Worksheet { return r.ws }

// String formats the range as "Sheet1!A1:C3".
func (r Range) String() string {
	s := r.Bounds().String()
	if r.ws != nil {
		return r.ws.name + "!" + s
	}
	return s
}

// IsSingleCell reports whether the range covers exactly one cell.
func (r Range) IsSingleCell() bool {
	return r.minRow == r.maxRow && r.minCol == r.maxCol
}

// IsEntireColumns reports whether the range spans every row of its columns.
func (r Range) IsEntireColumns() bool {
	return r.minRow == 1 && r.maxRowInfinite()
}

// IsEntireRows reports whether the range spans every column of its rows.
func (r Range) IsEntireRows() bool {
	return r.minCol == 1 && r.maxColInfinite()
}

func (r Range) maxRowInfinite() bool { return r.maxRow >= RowInfinity }
func (r Range) maxColInfinite() bool { return r.maxCol >= ColInfinity }

func (r Range) isCell() bool {
	return r.kind == CellBlock && r.IsSingleCell()
}

func (r Range) derive(b Bounds, kind RangeKind) Range {
	return NewRange(r.ws, b, kind)
}

// Item returns the cell at a 1-based offset from the top-left cell of the
// range. Item(1, 1) is the top-left cell itself.
func (r Range) Item(rowOffset, colOffset int) (Range, error) {
	if rowOffset < 1 || colOffset < 1 {
		return Range{}, rangeErr("Item", r, ErrOutOfRange,
			fmt.Sprintf("offsets must be positive, got (%d, %d)", rowOffset, colOffset))
	}
	row := r.minRow + rowOffset - 1
	col := r.minCol + colOffset - 1
	return NewCellRange(r.ws, row, col), nil
}

// ItemIndex returns the index-th column (or row) of a range made of entire
// columns (or rows), counting from 1 at the left (or top).
func (r Range) ItemIndex(index int) (Range, error) {
	if r.kind == CellBlock {
		return Range{}, rangeErr("ItemIndex", r, ErrInvalidOperation,
			"only ranges of entire rows or columns can be indexed by one argument")
	}
	if index < 1 {
		return Range{}, rangeErr("ItemIndex", r, ErrOutOfRange,
			fmt.Sprintf("index must be positive, got %d", index))
	}
	if r.kind == EntireColumns {
		col := r.minCol + index - 1
		return r.derive(Bounds{r.minRow, col, r.maxRow, col}, EntireColumns), nil
	}
	row := r.minRow + index - 1
	return r.derive(Bounds{row, r.minCol, row, r.maxCol}, EntireRows), nil
}

// EntireColumn returns the entire column (or columns) containing the range.
func (r Range) EntireColumn() Range {
	return r.derive(Bounds{1, r.minCol, RowInfinity, r.maxCol}, EntireColumns)
}

// EntireRow returns the entire row (or rows) containing the range.
func (r Range) EntireRow() Range {
	return r.derive(Bounds{r.minRow, 1, r.maxRow, ColInfinity}, EntireRows)
}

// RelativeRange interprets ref relative to the top-left cell of r, so
// RelativeRange("A1") is that cell and RelativeRange("B2:C3") starts one
// row down and one column right. The result keeps r's kind.
func (r Range) RelativeRange(ref string) (Range, error) {
	rel, err := ParseRangeReference(ref)
	if err != nil {
		return Range{}, err
	}
	return r.derive(Bounds{
		MinRow: r.minRow + rel.MinRow - 1,
		MinCol: r.minCol + rel.MinCol - 1,
		MaxRow: r.minRow + rel.MaxRow - 1,
		MaxCol: r.minCol + rel.MaxCol - 1,
	}, r.kind), nil
}

// Address returns the R1C1 address of a single cell: B4 is "R4C2".
func (r Range) Address() (string, error) {
	if !r.isCell() {
		return "", rangeErr("Address", r, ErrInvalidOperation, "address is only defined for a single cell")
	}
	return "R" + strconv.Itoa(r.minRow) + "C" + strconv.Itoa(r.minCol), nil
}

// Offset returns the cell one step from the top-left cell of r in direction
// d. It reports false when that step would leave the sheet.
func (r Range) Offset(d Direction) (Range, bool) {
	dRow, dCol := d.Shift()
	row, col := r.minRow+dRow, r.minCol+dCol
	if row < 1 || col < 1 {
		return Range{}, false
	}
	return NewCellRange(r.ws, row, col), true
}
