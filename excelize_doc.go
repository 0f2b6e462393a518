package xlwrap

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	defaultRowHeight = 15.0
	minColumnWidth   = 8.43
)

// builtinFormatCodes maps excelize built-in number format IDs to their codes.
var builtinFormatCodes = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `"$"#,##0_);("$"#,##0)`,
	6:  `"$"#,##0_);[Red]("$"#,##0)`,
	7:  `"$"#,##0.00_);("$"#,##0.00)`,
	8:  `"$"#,##0.00_);[Red]("$"#,##0.00)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "hh:mm",
	21: "hh:mm:ss",
	22: "m/d/yy hh:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[red](#,##0)",
	39: "#,##0.00 ;(#,##0.00)",
	40: "#,##0.00 ;[red](#,##0.00)",
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0E+0",
	49: "@",
}

// ExcelizeDocument implements Document on top of an excelize file. The
// file's active sheet is the document's selected worksheet.
type ExcelizeDocument struct {
	file *excelize.File

	mu sync.Mutex // protects writes to file
}

var _ Document = (*ExcelizeDocument)(nil)

// NewExcelizeDocument wraps an excelize file.
func NewExcelizeDocument(f *excelize.File) *ExcelizeDocument {
	return &ExcelizeDocument{file: f}
}

// File returns the underlying excelize file for advanced operations.
func (d *ExcelizeDocument) File() *excelize.File {
	return d.file
}

func (d *ExcelizeDocument) sheet() string {
	return d.file.GetSheetName(d.file.GetActiveSheetIndex())
}

func cellName(row, col int) (string, error) {
	return excelize.CoordinatesToCellName(col, row)
}

// SelectWorksheet makes name the active sheet.
func (d *ExcelizeDocument) SelectWorksheet(name string) error {
	idx, err := d.file.GetSheetIndex(name)
	if err != nil {
		return err
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.file.SetActiveSheet(idx)
	return nil
}

// CurrentWorksheet returns the name of the active sheet.
func (d *ExcelizeDocument) CurrentWorksheet() string {
	return d.sheet()
}

// CellText returns the raw stored text of a cell: numbers and dates come
// back unformatted, e.g. a date as its serial number.
func (d *ExcelizeDocument) CellText(row, col int) (string, error) {
	cell, err := cellName(row, col)
	if err != nil {
		return "", err
	}
	return d.file.GetCellValue(d.sheet(), cell, excelize.Options{RawCellValue: true})
}

// CellTime interprets a cell's stored serial number as a date.
func (d *ExcelizeDocument) CellTime(row, col int) (time.Time, error) {
	text, err := d.CellText(row, col)
	if err != nil {
		return time.Time{}, err
	}
	serial, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("cell %s is not a date serial: %q", CellReference(row, col), text)
	}
	return excelize.ExcelDateToTime(serial, d.date1904())
}

func (d *ExcelizeDocument) date1904() bool {
	props, err := d.file.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

// SetCellValue stores v in a cell, keeping the cell's style.
func (d *ExcelizeDocument) SetCellValue(row, col int, v Value) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	sheet := d.sheet()
	switch v.Kind() {
	case KindNumber:
		n, _ := v.Float()
		return d.file.SetCellFloat(sheet, cell, n, -1, 64)
	case KindText:
		s, _ := v.Text()
		return d.file.SetCellStr(sheet, cell, s)
	case KindDate:
		t, _ := v.Time()
		return d.file.SetCellValue(sheet, cell, t)
	default:
		return d.file.SetCellDefault(sheet, cell, "")
	}
}

// CellStyle returns the format code and fill of a cell.
func (d *ExcelizeDocument) CellStyle(row, col int) (Style, error) {
	cell, err := cellName(row, col)
	if err != nil {
		return Style{}, err
	}
	id, err := d.file.GetCellStyle(d.sheet(), cell)
	if err != nil {
		return Style{}, err
	}
	return d.styleFromID(id)
}

// SetCellStyle applies s to a cell, keeping the rest of its style (fonts,
// borders, alignment). A format code or fill equal to the cell's current one
// is left as stored.
func (d *ExcelizeDocument) SetCellStyle(row, col int, s Style) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	sheet := d.sheet()
	base, err := d.file.GetCellStyle(sheet, cell)
	if err != nil {
		return err
	}
	id, err := d.restyle(base, s)
	if err != nil {
		return err
	}
	return d.file.SetCellStyle(sheet, cell, cell, id)
}

// ColumnStyle returns the format code and fill of a column.
func (d *ExcelizeDocument) ColumnStyle(col int) (Style, error) {
	id, err := d.file.GetColStyle(d.sheet(), ColumnLetters(col))
	if err != nil {
		return Style{}, err
	}
	return d.styleFromID(id)
}

// SetColumnStyle applies s to a whole column.
func (d *ExcelizeDocument) SetColumnStyle(col int, s Style) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sheet := d.sheet()
	letters := ColumnLetters(col)
	base, err := d.file.GetColStyle(sheet, letters)
	if err != nil {
		return err
	}
	id, err := d.restyle(base, s)
	if err != nil {
		return err
	}
	return d.file.SetColStyle(sheet, letters, id)
}

func (d *ExcelizeDocument) styleFromID(id int) (Style, error) {
	if id == 0 {
		return Style{FormatCode: builtinFormatCodes[0]}, nil
	}
	xs, err := d.file.GetStyle(id)
	if err != nil {
		return Style{}, fmt.Errorf("read style %d: %w", id, err)
	}

	var s Style
	if xs.CustomNumFmt != nil && *xs.CustomNumFmt != "" {
		s.FormatCode = *xs.CustomNumFmt
	} else if code, ok := builtinFormatCodes[xs.NumFmt]; ok {
		s.FormatCode = code
	} else {
		s.FormatCode = builtinFormatCodes[0]
	}
	if xs.Fill.Type == "pattern" && xs.Fill.Pattern == 1 && len(xs.Fill.Color) > 0 {
		s.FillColor = normalizeColor(xs.Fill.Color[0])
	}
	return s, nil
}

// restyle derives a style ID from base with the format code and fill of s.
// Only the parts of s that differ from base are rewritten, so number formats
// and fills this package cannot describe survive an unrelated change.
func (d *ExcelizeDocument) restyle(base int, s Style) (int, error) {
	cur, err := d.styleFromID(base)
	if err != nil {
		return 0, err
	}
	if s == cur {
		return base, nil
	}

	xs := &excelize.Style{}
	if base != 0 {
		if xs, err = d.file.GetStyle(base); err != nil {
			return 0, fmt.Errorf("read style %d: %w", base, err)
		}
	}

	if s.FormatCode != cur.FormatCode {
		xs.NumFmt, xs.CustomNumFmt = 0, nil
		if s.FormatCode != "" && s.FormatCode != builtinFormatCodes[0] {
			if id, ok := builtinFormatID(s.FormatCode); ok {
				xs.NumFmt = id
			} else {
				code := s.FormatCode
				xs.CustomNumFmt = &code
			}
		}
	}

	if s.FillColor != cur.FillColor {
		xs.Fill = excelize.Fill{}
		if s.FillColor != "" {
			xs.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{s.FillColor}}
		}
	}
	return d.file.NewStyle(xs)
}

func builtinFormatID(code string) (int, bool) {
	for id, c := range builtinFormatCodes {
		if c == code {
			return id, true
		}
	}
	return 0, false
}

// normalizeColor turns "#c0c0c0" or "FFC0C0C0" into "C0C0C0".
func normalizeColor(c string) string {
	c = strings.ToUpper(strings.TrimPrefix(c, "#"))
	if len(c) == 8 {
		c = c[2:]
	}
	return c
}

// usedSize returns the last row and the last column holding any cell.
func (d *ExcelizeDocument) usedSize(sheet string) (rows, cols int, err error) {
	grid, err := d.file.GetRows(sheet)
	if err != nil {
		return 0, 0, err
	}
	for _, row := range grid {
		cols = max(cols, len(row))
	}
	return len(grid), cols, nil
}

// DeleteRows removes count rows starting at index. Rows past the last used
// row are already empty and are not visited.
func (d *ExcelizeDocument) DeleteRows(index, count int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sheet := d.sheet()
	lastRow, _, err := d.usedSize(sheet)
	if err != nil {
		return err
	}
	n := min(count, lastRow-index+1)
	for i := 0; i < n; i++ {
		if err := d.file.RemoveRow(sheet, index); err != nil {
			return err
		}
	}
	return nil
}

// DeleteColumns removes count columns starting at index.
func (d *ExcelizeDocument) DeleteColumns(index, count int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sheet := d.sheet()
	_, lastCol, err := d.usedSize(sheet)
	if err != nil {
		return err
	}
	n := min(count, lastCol-index+1)
	letters := ColumnLetters(index)
	for i := 0; i < n; i++ {
		if err := d.file.RemoveCol(sheet, letters); err != nil {
			return err
		}
	}
	return nil
}

// AutoFitRows sets each used row's height to fit its tallest cell, counting
// one default row height per line of text.
func (d *ExcelizeDocument) AutoFitRows(minRow, maxRow int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sheet := d.sheet()
	grid, err := d.file.GetRows(sheet)
	if err != nil {
		return err
	}
	for row := minRow; row <= min(maxRow, len(grid)); row++ {
		lines := 1
		for _, text := range grid[row-1] {
			lines = max(lines, strings.Count(text, "\n")+1)
		}
		if err := d.file.SetRowHeight(sheet, row, defaultRowHeight*float64(lines)); err != nil {
			return err
		}
	}
	return nil
}

// AutoFitColumns sets each used column's width to fit its widest cell.
func (d *ExcelizeDocument) AutoFitColumns(minCol, maxCol int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sheet := d.sheet()
	cols, err := d.file.GetCols(sheet)
	if err != nil {
		return err
	}
	for col := minCol; col <= min(maxCol, len(cols)); col++ {
		widest := 0
		for _, text := range cols[col-1] {
			for _, line := range strings.Split(text, "\n") {
				widest = max(widest, utf8.RuneCountInString(line))
			}
		}
		if widest == 0 {
			continue
		}
		width := min(max(float64(widest)+2, minColumnWidth), excelize.MaxColumnWidth)
		letters := ColumnLetters(col)
		if err := d.file.SetColWidth(sheet, letters, letters, width); err != nil {
			return err
		}
	}
	return nil
}

// SetColumnWidth sets the width of columns minCol through maxCol.
func (d *ExcelizeDocument) SetColumnWidth(minCol, maxCol int, width float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file.SetColWidth(d.sheet(), ColumnLetters(minCol), ColumnLetters(maxCol), width)
}

// SheetNames returns all sheet names in tab order.
func (d *ExcelizeDocument) SheetNames() []string {
	return d.file.GetSheetList()
}

// AddWorksheet appends a sheet. The selection does not change.
func (d *ExcelizeDocument) AddWorksheet(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.file.NewSheet(name); err != nil {
		return fmt.Errorf("add worksheet %q: %w", name, err)
	}
	return nil
}

// DeleteWorksheet removes a sheet.
func (d *ExcelizeDocument) DeleteWorksheet(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file.DeleteSheet(name)
}

// RenameWorksheet renames a sheet.
func (d *ExcelizeDocument) RenameWorksheet(oldName, newName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file.SetSheetName(oldName, newName)
}

// ProtectWorksheet protects the selected sheet with a password. Users can
// still select cells but not edit them.
func (d *ExcelizeDocument) ProtectWorksheet(password string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file.ProtectSheet(d.sheet(), &excelize.SheetProtectionOptions{
		Password:            password,
		SelectLockedCells:   true,
		SelectUnlockedCells: true,
	})
}

// SetPanes splits the selected sheet below splitRow rows and right of
// splitCol columns, frozen or not. A zero split removes the panes.
func (d *ExcelizeDocument) SetPanes(splitRow, splitCol int, freeze bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sheet := d.sheet()
	if splitRow <= 0 && splitCol <= 0 {
		return d.file.SetPanes(sheet, &excelize.Panes{})
	}

	active := "bottomRight"
	switch {
	case splitRow <= 0:
		active = "topRight"
	case splitCol <= 0:
		active = "bottomLeft"
	}
	return d.file.SetPanes(sheet, &excelize.Panes{
		Freeze:      freeze,
		Split:       !freeze,
		XSplit:      max(splitCol, 0),
		YSplit:      max(splitRow, 0),
		TopLeftCell: CellReference(max(splitRow, 0)+1, max(splitCol, 0)+1),
		ActivePane:  active,
	})
}

// UsedRows counts the rows from the first nonempty row to the last.
func (d *ExcelizeDocument) UsedRows() (int, error) {
	grid, err := d.file.GetRows(d.sheet())
	if err != nil {
		return 0, err
	}
	first, last := 0, 0
	for i, row := range grid {
		if !rowHasData(row) {
			continue
		}
		if first == 0 {
			first = i + 1
		}
		last = i + 1
	}
	if first == 0 {
		return 0, nil
	}
	return last - first + 1, nil
}

func rowHasData(row []string) bool {
	for _, v := range row {
		if v != "" {
			return true
		}
	}
	return false
}

// SaveAs writes the workbook to path.
func (d *ExcelizeDocument) SaveAs(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file.SaveAs(path)
}

// Write writes the workbook to the given writer.
func (d *ExcelizeDocument) Write(w io.Writer) error {
	return d.file.Write(w)
}

// Close closes the underlying excelize file.
func (d *ExcelizeDocument) Close() error {
	return d.file.Close()
}
