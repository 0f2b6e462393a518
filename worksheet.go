package xlwrap

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Worksheet is a named sheet in a Document. Ranges built from it refer back
// to it, so renaming the worksheet is seen by its existing ranges.
type Worksheet struct {
	name   string
	doc    Document
	logger zerolog.Logger

	splitRow int // rows above the pane split
	splitCol int // columns left of the pane split
}

// NewWorksheet returns the worksheet called name in doc. It does not check
// that the sheet exists; Workbook.Worksheet does.
func NewWorksheet(name string, doc Document) *Worksheet {
	return &Worksheet{name: name, doc: doc, logger: zerolog.Nop()}
}

// Name returns the worksheet name.
func (ws *Worksheet) Name() string { return ws.name }

// Document returns the document the worksheet lives in.
func (ws *Worksheet) Document() Document { return ws.doc }

// Range returns the cell or block named by ref, for example "B3" or "A2:IV65536".
func (ws *Worksheet) Range(ref string) (Range, error) {
	return ParseRange(ws, ref)
}

// Columns returns all the columns of the worksheet as entire columns.
func (ws *Worksheet) Columns() Range {
	return SheetRange(ws, EntireColumns)
}

// Column returns the index-th column of the worksheet; the first column is 1.
func (ws *Worksheet) Column(index int) (Range, error) {
	return ws.Columns().ItemIndex(index)
}

// ColumnsRef returns the columns named by letters, for example "AB" or "A:IV".
func (ws *Worksheet) ColumnsRef(letters string) (Range, error) {
	return ColumnRange(ws, letters)
}

// Rows returns all the rows of the worksheet as entire rows.
func (ws *Worksheet) Rows() Range {
	return SheetRange(ws, EntireRows)
}

// Row returns the index-th row of the worksheet; the first row is 1.
func (ws *Worksheet) Row(index int) (Range, error) {
	return ws.Rows().ItemIndex(index)
}

// Cells returns every cell of the worksheet.
func (ws *Worksheet) Cells() Range {
	return SheetRange(ws, CellBlock)
}

// Cell returns the single cell at (row, col).
func (ws *Worksheet) Cell(row, col int) (Range, error) {
	return ws.Cells().Item(row, col)
}

// Rename changes the worksheet name in the document.
func (ws *Worksheet) Rename(name string) error {
	if err := ws.doc.RenameWorksheet(ws.name, name); err != nil {
		return fmt.Errorf("rename worksheet %q to %q: %w", ws.name, name, err)
	}
	ws.name = name
	return nil
}

// Delete removes the worksheet from the document. The selected worksheet
// cannot be deleted.
func (ws *Worksheet) Delete() error {
	if ws.doc.CurrentWorksheet() == ws.name {
		return fmt.Errorf("delete worksheet %q: %w: the selected worksheet cannot be deleted",
			ws.name, ErrInvalidOperation)
	}
	if err := ws.doc.DeleteWorksheet(ws.name); err != nil {
		return fmt.Errorf("delete worksheet %q: %w", ws.name, err)
	}
	return nil
}

// UsedRangeRowsCount returns the number of rows from the first nonempty row
// to the last nonempty row, inclusive.
func (ws *Worksheet) UsedRangeRowsCount() (int, error) {
	var n int
	err := ws.withSelection(func() error {
		var err error
		n, err = ws.doc.UsedRows()
		return err
	})
	return n, err
}

// Protect protects the worksheet with a password.
func (ws *Worksheet) Protect(password string) error {
	return ws.withSelection(func() error {
		return ws.doc.ProtectWorksheet(password)
	})
}

// SetSplitRow splits the worksheet into panes below the given number of rows.
func (ws *Worksheet) SetSplitRow(rows int) error {
	ws.splitRow = rows
	return ws.applyPanes(false)
}

// SetSplitColumn splits the worksheet into panes right of the given number of columns.
func (ws *Worksheet) SetSplitColumn(cols int) error {
	ws.splitCol = cols
	return ws.applyPanes(false)
}

// SetFreezePanes freezes or unfreezes the split panes. Unfreezing keeps the split.
func (ws *Worksheet) SetFreezePanes(freeze bool) error {
	return ws.applyPanes(freeze)
}

func (ws *Worksheet) applyPanes(freeze bool) error {
	return ws.withSelection(func() error {
		return ws.doc.SetPanes(ws.splitRow, ws.splitCol, freeze)
	})
}
