package xlwrap

import "time"

// Style is the part of a cell or column style the automation surface reads
// and writes. Fields left empty keep the engine's defaults.
type Style struct {
	FormatCode string // number format code, e.g. "0.00" or "dd/mm/yyyy"
	FillColor  string // solid fill as RRGGBB, empty for no fill
}

// Document is the spreadsheet engine behind a workbook. Cell, style, row and
// column operations act on the currently selected worksheet. All row and
// column indexes are 1-based.
type Document interface {
	// Worksheet selection
	SelectWorksheet(name string) error
	CurrentWorksheet() string

	// Cell contents
	CellText(row, col int) (string, error)
	CellTime(row, col int) (time.Time, error)
	SetCellValue(row, col int, v Value) error

	// Styles
	CellStyle(row, col int) (Style, error)
	SetCellStyle(row, col int, s Style) error
	ColumnStyle(col int) (Style, error)
	SetColumnStyle(col int, s Style) error

	// Structure
	DeleteRows(index, count int) error
	DeleteColumns(index, count int) error
	AutoFitRows(minRow, maxRow int) error
	AutoFitColumns(minCol, maxCol int) error
	SetColumnWidth(minCol, maxCol int, width float64) error
	Sort(rect Bounds, byColumn bool, keyIndex int, ascending bool) error

	// Sheet management
	SheetNames() []string
	AddWorksheet(name string) error
	DeleteWorksheet(name string) error
	RenameWorksheet(oldName, newName string) error
	ProtectWorksheet(password string) error
	SetPanes(splitRow, splitCol int, freeze bool) error
	UsedRows() (int, error)
}
