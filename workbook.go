package xlwrap

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// FileFormat is the legacy file format number passed to SaveAs.
type FileFormat int

const (
	FormatText FileFormat = 21
	FormatXLSX FileFormat = 56
)

// Workbook is a single open spreadsheet file.
type Workbook struct {
	doc    *ExcelizeDocument
	logger zerolog.Logger
	path   string
	closed bool
}

// NewWorkbook creates an empty workbook whose sheets are named Sheet1,
// Sheet2, ... up to the configured default sheet count.
func NewWorkbook(opts ...Option) (*Workbook, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	f := excelize.NewFile()
	doc := NewExcelizeDocument(f)
	first := f.GetSheetName(0)
	if first != "Sheet1" {
		if err := doc.RenameWorksheet(first, "Sheet1"); err != nil {
			f.Close()
			return nil, err
		}
	}
	for i := 2; i <= o.defaultSheets; i++ {
		if err := doc.AddWorksheet("Sheet" + strconv.Itoa(i)); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := doc.SelectWorksheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}

	o.logger.Debug().Int("sheets", o.defaultSheets).Msg("Created workbook")
	return &Workbook{doc: doc, logger: o.logger}, nil
}

// OpenWorkbook opens an existing xlsx file.
func OpenWorkbook(path string, opts ...Option) (*Workbook, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var xopts []excelize.Options
	if o.password != "" {
		xopts = append(xopts, excelize.Options{Password: o.password})
	}
	f, err := excelize.OpenFile(path, xopts...)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}

	o.logger.Debug().Str("path", path).Strs("sheets", f.GetSheetList()).Msg("Opened workbook")
	return &Workbook{doc: NewExcelizeDocument(f), logger: o.logger, path: path}, nil
}

// Document returns the document behind the workbook.
func (wb *Workbook) Document() *ExcelizeDocument { return wb.doc }

// Worksheets returns every worksheet in tab order.
func (wb *Workbook) Worksheets() []*Worksheet {
	names := wb.doc.SheetNames()
	sheets := make([]*Worksheet, 0, len(names))
	for _, name := range names {
		sheets = append(sheets, wb.sheet(name))
	}
	return sheets
}

// SheetCount returns the number of worksheets.
func (wb *Workbook) SheetCount() int {
	return len(wb.doc.SheetNames())
}

// Worksheet returns the worksheet with the given name.
func (wb *Workbook) Worksheet(name string) (*Worksheet, error) {
	for _, n := range wb.doc.SheetNames() {
		if n == name {
			return wb.sheet(name), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

// WorksheetAt returns the index-th worksheet; the first worksheet is 1.
func (wb *Workbook) WorksheetAt(index int) (*Worksheet, error) {
	names := wb.doc.SheetNames()
	if index < 1 || index > len(names) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrSheetNotFound, index, len(names))
	}
	return wb.sheet(names[index-1]), nil
}

// ActiveSheet returns the currently selected worksheet.
func (wb *Workbook) ActiveSheet() *Worksheet {
	return wb.sheet(wb.doc.CurrentWorksheet())
}

// AddWorksheet adds a worksheet named with the first free "SheetN" and
// selects it.
func (wb *Workbook) AddWorksheet() (*Worksheet, error) {
	existing := make(map[string]bool)
	for _, n := range wb.doc.SheetNames() {
		existing[n] = true
	}
	name := "Sheet1"
	for i := 2; existing[name]; i++ {
		name = "Sheet" + strconv.Itoa(i)
	}

	if err := wb.doc.AddWorksheet(name); err != nil {
		return nil, err
	}
	ws := wb.sheet(name)
	if err := ws.Activate(); err != nil {
		return nil, err
	}
	wb.logger.Debug().Str("sheet", name).Msg("Added worksheet")
	return ws, nil
}

// SaveAs saves the workbook to path. Only FormatXLSX is implemented; any
// other format is logged and nothing is written.
func (wb *Workbook) SaveAs(path string, format FileFormat) error {
	if format != FormatXLSX {
		wb.logger.Warn().
			Int("format", int(format)).
			Str("path", path).
			Msg("Tried to save workbook to unimplemented file format, save not performed")
		return nil
	}
	if err := wb.doc.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	wb.path = path
	wb.logger.Debug().Str("path", path).Msg("Saved workbook")
	return nil
}

// Write writes the workbook as xlsx to w.
func (wb *Workbook) Write(w io.Writer) error {
	return wb.doc.Write(w)
}

// Close releases the workbook. Closing twice is a no-op.
func (wb *Workbook) Close() error {
	if wb.closed {
		return nil
	}
	wb.closed = true
	return wb.doc.Close()
}

func (wb *Workbook) sheet(name string) *Worksheet {
	ws := NewWorksheet(name, wb.doc)
	ws.logger = wb.logger.With().Str("sheet", name).Logger()
	return ws
}
