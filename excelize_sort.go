package xlwrap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sortCell is everything a sort moves along with a cell.
type sortCell struct {
	raw     string
	typ     excelize.CellType
	formula string
	style   int
}

func (c sortCell) isString() bool {
	switch c.typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return true
	}
	return false
}

// sortKey orders empty cells last, numbers before text, and text without
// regard to case.
type sortKey struct {
	empty bool
	isNum bool
	num   float64
	text  string
}

func keyOf(c sortCell) sortKey {
	if c.raw == "" {
		return sortKey{empty: true}
	}
	if !c.isString() {
		if n, err := strconv.ParseFloat(c.raw, 64); err == nil {
			return sortKey{isNum: true, num: n}
		}
	}
	return sortKey{text: strings.ToLower(c.raw)}
}

func compareKeys(a, b sortKey) int {
	switch {
	case a.isNum && b.isNum:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	case a.isNum:
		return -1
	case b.isNum:
		return 1
	}
	return strings.Compare(a.text, b.text)
}

// Sort rearranges the cells of rect on the selected sheet. With byColumn
// the rows of rect are reordered by their cell in column keyIndex;
// otherwise the columns are reordered by their cell in row keyIndex.
// Values, formulas and styles move together. The sort is stable, and
// empty keys stay last in both orders.
func (d *ExcelizeDocument) Sort(rect Bounds, byColumn bool, keyIndex int, ascending bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sheet := d.sheet()
	lastRow, lastCol, err := d.usedSize(sheet)
	if err != nil {
		return err
	}
	rect.MaxRow = min(rect.MaxRow, lastRow)
	rect.MaxCol = min(rect.MaxCol, lastCol)
	if rect.MaxRow < rect.MinRow || rect.MaxCol < rect.MinCol {
		return nil
	}

	lo, hi := rect.MinRow, rect.MaxRow
	if byColumn {
		lo, hi = rect.MinCol, rect.MaxCol
	}
	if keyIndex < lo || keyIndex > hi {
		return fmt.Errorf("%w: sort key %d is outside %s", ErrInvalidOperation, keyIndex, rect)
	}

	// lines are rows when sorting by column, columns otherwise.
	nLines, nCells := rect.MaxRow-rect.MinRow+1, rect.MaxCol-rect.MinCol+1
	if !byColumn {
		nLines, nCells = nCells, nLines
	}
	at := func(line, i int) (row, col int) {
		if byColumn {
			return rect.MinRow + line, rect.MinCol + i
		}
		return rect.MinRow + i, rect.MinCol + line
	}

	lines := make([][]sortCell, nLines)
	for line := range lines {
		lines[line] = make([]sortCell, nCells)
		for i := range lines[line] {
			row, col := at(line, i)
			c, err := d.readSortCell(sheet, row, col)
			if err != nil {
				return err
			}
			lines[line][i] = c
		}
	}

	key := keyIndex - lo
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := keyOf(lines[i][key]), keyOf(lines[j][key])
		if a.empty || b.empty {
			return !a.empty && b.empty
		}
		if ascending {
			return compareKeys(a, b) < 0
		}
		return compareKeys(a, b) > 0
	})

	for line := range lines {
		for i, c := range lines[line] {
			row, col := at(line, i)
			if err := d.writeSortCell(sheet, row, col, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *ExcelizeDocument) readSortCell(sheet string, row, col int) (sortCell, error) {
	cell, err := cellName(row, col)
	if err != nil {
		return sortCell{}, err
	}
	var c sortCell
	if c.raw, err = d.file.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true}); err != nil {
		return c, err
	}
	if c.typ, err = d.file.GetCellType(sheet, cell); err != nil {
		return c, err
	}
	if c.formula, err = d.file.GetCellFormula(sheet, cell); err != nil {
		return c, err
	}
	if c.style, err = d.file.GetCellStyle(sheet, cell); err != nil {
		return c, err
	}
	return c, nil
}

func (d *ExcelizeDocument) writeSortCell(sheet string, row, col int, c sortCell) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	switch {
	case c.formula != "":
		err = d.file.SetCellFormula(sheet, cell, c.formula)
	case c.isString():
		err = d.file.SetCellStr(sheet, cell, c.raw)
	case c.typ == excelize.CellTypeBool:
		err = d.file.SetCellBool(sheet, cell, c.raw == "1" || strings.EqualFold(c.raw, "TRUE"))
	default:
		err = d.file.SetCellDefault(sheet, cell, c.raw)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", cell, err)
	}
	return d.file.SetCellStyle(sheet, cell, cell, c.style)
}
