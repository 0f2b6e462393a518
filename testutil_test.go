package xlwrap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type cellPos struct{ row, col int }

type memSheet struct {
	name   string
	cells  map[cellPos]Value
	styles map[cellPos]Style
	cols   map[int]Style
	widths map[int]float64

	protected string
	splitRow  int
	splitCol  int
	frozen    bool
}

func newMemSheet(name string) *memSheet {
	return &memSheet{
		name:   name,
		cells:  make(map[cellPos]Value),
		styles: make(map[cellPos]Style),
		cols:   make(map[int]Style),
		widths: make(map[int]float64),
	}
}

// memDocument is an in-memory Document that records every selection change
// and every primitive call.
type memDocument struct {
	sheets  []*memSheet
	current string

	selections []string
	calls      []string

	failText error // returned by CellText when set
}

var _ Document = (*memDocument)(nil)

func newMemDocument(names ...string) *memDocument {
	if len(names) == 0 {
		names = []string{"Sheet1"}
	}
	d := &memDocument{current: names[0]}
	for _, n := range names {
		d.sheets = append(d.sheets, newMemSheet(n))
	}
	return d
}

func (d *memDocument) sheet(name string) *memSheet {
	for _, s := range d.sheets {
		if s.name == name {
			return s
		}
	}
	return nil
}

func (d *memDocument) cur() *memSheet { return d.sheet(d.current) }

func (d *memDocument) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

// put stores a value directly, bypassing selection.
func (d *memDocument) put(sheet string, row, col int, v Value) {
	d.sheet(sheet).cells[cellPos{row, col}] = v
}

func (d *memDocument) get(sheet string, row, col int) Value {
	return d.sheet(sheet).cells[cellPos{row, col}]
}

func (d *memDocument) SelectWorksheet(name string) error {
	if d.sheet(name) == nil {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	d.current = name
	d.selections = append(d.selections, name)
	return nil
}

func (d *memDocument) CurrentWorksheet() string { return d.current }

func (d *memDocument) CellText(row, col int) (string, error) {
	if d.failText != nil {
		return "", d.failText
	}
	v := d.cur().cells[cellPos{row, col}]
	if t, ok := v.Time(); ok {
		// a serial number, like the stored form of a date
		return strconv.FormatInt(t.Unix()/86400+25569, 10), nil
	}
	return v.String(), nil
}

func (d *memDocument) CellTime(row, col int) (time.Time, error) {
	v := d.cur().cells[cellPos{row, col}]
	t, ok := v.Time()
	if !ok {
		return time.Time{}, fmt.Errorf("cell %s holds no date", CellReference(row, col))
	}
	return t, nil
}

func (d *memDocument) SetCellValue(row, col int, v Value) error {
	d.record("SetCellValue(%d,%d,%s)", row, col, v.Kind())
	p := cellPos{row, col}
	if s, ok := v.Text(); v.IsEmpty() || ok && s == "" {
		delete(d.cur().cells, p)
		return nil
	}
	d.cur().cells[p] = v
	return nil
}

func (d *memDocument) CellStyle(row, col int) (Style, error) {
	if s, ok := d.cur().styles[cellPos{row, col}]; ok {
		return s, nil
	}
	return Style{FormatCode: "General"}, nil
}

func (d *memDocument) SetCellStyle(row, col int, s Style) error {
	d.record("SetCellStyle(%d,%d,%s)", row, col, s.FormatCode)
	d.cur().styles[cellPos{row, col}] = s
	return nil
}

func (d *memDocument) ColumnStyle(col int) (Style, error) {
	if s, ok := d.cur().cols[col]; ok {
		return s, nil
	}
	return Style{FormatCode: "General"}, nil
}

func (d *memDocument) SetColumnStyle(col int, s Style) error {
	d.record("SetColumnStyle(%d,%s)", col, s.FormatCode)
	d.cur().cols[col] = s
	return nil
}

func (d *memDocument) DeleteRows(index, count int) error {
	d.record("DeleteRows(%d,%d)", index, count)
	moved := make(map[cellPos]Value)
	for p, v := range d.cur().cells {
		switch {
		case p.row < index:
			moved[p] = v
		case p.row >= index+count:
			moved[cellPos{p.row - count, p.col}] = v
		}
	}
	d.cur().cells = moved
	return nil
}

func (d *memDocument) DeleteColumns(index, count int) error {
	d.record("DeleteColumns(%d,%d)", index, count)
	moved := make(map[cellPos]Value)
	for p, v := range d.cur().cells {
		switch {
		case p.col < index:
			moved[p] = v
		case p.col >= index+count:
			moved[cellPos{p.row, p.col - count}] = v
		}
	}
	d.cur().cells = moved
	return nil
}

func (d *memDocument) AutoFitRows(minRow, maxRow int) error {
	d.record("AutoFitRows(%d,%d)", minRow, maxRow)
	return nil
}

func (d *memDocument) AutoFitColumns(minCol, maxCol int) error {
	d.record("AutoFitColumns(%d,%d)", minCol, maxCol)
	return nil
}

func (d *memDocument) SetColumnWidth(minCol, maxCol int, width float64) error {
	d.record("SetColumnWidth(%d,%d)", minCol, maxCol)
	for c := minCol; c <= maxCol; c++ {
		d.cur().widths[c] = width
	}
	return nil
}

// Sort handles numeric keys only, which is all the core tests need.
func (d *memDocument) Sort(rect Bounds, byColumn bool, keyIndex int, ascending bool) error {
	d.record("Sort(%s,%t,%d,%t)", rect, byColumn, keyIndex, ascending)
	s := d.cur()
	if !byColumn {
		return nil
	}
	rows := make([]map[int]Value, 0, rect.MaxRow-rect.MinRow+1)
	for r := rect.MinRow; r <= rect.MaxRow; r++ {
		line := make(map[int]Value)
		for c := rect.MinCol; c <= rect.MaxCol; c++ {
			line[c] = s.cells[cellPos{r, c}]
		}
		rows = append(rows, line)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, _ := rows[i][keyIndex].Float()
		b, _ := rows[j][keyIndex].Float()
		if ascending {
			return a < b
		}
		return a > b
	})
	for i, line := range rows {
		for c, v := range line {
			p := cellPos{rect.MinRow + i, c}
			if v.IsEmpty() {
				delete(s.cells, p)
				continue
			}
			s.cells[p] = v
		}
	}
	return nil
}

func (d *memDocument) SheetNames() []string {
	names := make([]string, 0, len(d.sheets))
	for _, s := range d.sheets {
		names = append(names, s.name)
	}
	return names
}

func (d *memDocument) AddWorksheet(name string) error {
	d.sheets = append(d.sheets, newMemSheet(name))
	return nil
}

func (d *memDocument) DeleteWorksheet(name string) error {
	for i, s := range d.sheets {
		if s.name == name {
			d.sheets = append(d.sheets[:i], d.sheets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

func (d *memDocument) RenameWorksheet(oldName, newName string) error {
	s := d.sheet(oldName)
	if s == nil {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, oldName)
	}
	s.name = newName
	if d.current == oldName {
		d.current = newName
	}
	return nil
}

func (d *memDocument) ProtectWorksheet(password string) error {
	d.cur().protected = password
	return nil
}

func (d *memDocument) SetPanes(splitRow, splitCol int, freeze bool) error {
	s := d.cur()
	s.splitRow, s.splitCol, s.frozen = splitRow, splitCol, freeze
	return nil
}

func (d *memDocument) UsedRows() (int, error) {
	first, last := 0, 0
	for p := range d.cur().cells {
		if first == 0 || p.row < first {
			first = p.row
		}
		last = max(last, p.row)
	}
	if first == 0 {
		return 0, nil
	}
	return last - first + 1, nil
}

// newTestSheet returns worksheet name backed by doc.
func newTestSheet(doc *memDocument, name string) *Worksheet {
	return NewWorksheet(name, doc)
}

func mustRange(t *testing.T, ws *Worksheet, ref string) Range {
	t.Helper()
	r, err := ws.Range(ref)
	require.NoError(t, err)
	return r
}

// createSampleWorkbook writes a workbook with two sheets to a temp dir.
//
//	Data:  A1: "Name"  B1: "Qty"
//	       A2: "pear"  B2: 3
//	       A3: "apple" B3: 1
//	       A4: "fig"   B4: 2
//	Notes: A1: "hello"
func createSampleWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Data"))
	_, err := f.NewSheet("Notes")
	require.NoError(t, err)

	rows := [][]any{{"Name", "Qty"}, {"pear", 3}, {"apple", 1}, {"fig", 2}}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Data", cell, &row))
	}
	require.NoError(t, f.SetCellValue("Notes", "A1", "hello"))

	path := filepath.Join(t.TempDir(), "sample.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
