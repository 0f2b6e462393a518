package xlwrap

import (
	"fmt"
	"time"
)

// Value reads the content of a single cell. Reading does not change which
// worksheet is selected.
func (r Range) Value() (Value, error) {
	if err := r.requireCell("Value"); err != nil {
		return Value{}, err
	}

	var v Value
	err := r.ws.withSelection(func() error {
		doc := r.ws.doc
		text, err := doc.CellText(r.minRow, r.minCol)
		if err != nil {
			return fmt.Errorf("read cell %s: %w", r, err)
		}
		style, err := doc.CellStyle(r.minRow, r.minCol)
		if err != nil {
			return fmt.Errorf("read style of %s: %w", r, err)
		}
		v, err = decodeCell(text, style.FormatCode, func() (time.Time, error) {
			return doc.CellTime(r.minRow, r.minCol)
		})
		if err != nil {
			return fmt.Errorf("read date in %s: %w", r, err)
		}
		return nil
	})
	return v, err
}

// SetValue writes v into a single cell and selects the cell's worksheet.
// A Date also gets DateFormatCode as its number format so it reads back as
// a Date. Dates before 1900 or after 9999 fail with ErrUnsupportedValueType
// and nothing is written.
func (r Range) SetValue(v Value) error {
	if err := r.requireCell("SetValue"); err != nil {
		return err
	}
	if err := checkStorable(v); err != nil {
		return &RangeError{Op: "SetValue", Range: r.String(), Err: err}
	}
	if err := r.ws.Activate(); err != nil {
		return err
	}

	doc := r.ws.doc
	if err := doc.SetCellValue(r.minRow, r.minCol, v); err != nil {
		return fmt.Errorf("set cell %s: %w", r, err)
	}
	if v.Kind() != KindDate {
		return nil
	}

	style, err := doc.CellStyle(r.minRow, r.minCol)
	if err != nil {
		return fmt.Errorf("read style of %s: %w", r, err)
	}
	style.FormatCode = DateFormatCode
	if err := doc.SetCellStyle(r.minRow, r.minCol, style); err != nil {
		return fmt.Errorf("set date format on %s: %w", r, err)
	}
	return nil
}

// Set coerces x with ValueOf and writes it into a single cell.
func (r Range) Set(x any) error {
	v, err := ValueOf(x)
	if err != nil {
		return &RangeError{Op: "Set", Range: r.String(), Err: err}
	}
	return r.SetValue(v)
}

// Clear empties a single cell.
func (r Range) Clear() error {
	return r.SetValue(Empty())
}

// NumberFormat returns the number format code of a single cell.
func (r Range) NumberFormat() (string, error) {
	if err := r.requireCell("NumberFormat"); err != nil {
		return "", err
	}
	var code string
	err := r.ws.withSelection(func() error {
		style, err := r.ws.doc.CellStyle(r.minRow, r.minCol)
		if err != nil {
			return fmt.Errorf("read style of %s: %w", r, err)
		}
		code = style.FormatCode
		return nil
	})
	return code, err
}

// SetNumberFormat sets the number format code of every cell in the range,
// for example "0.00" or "@". Entire columns are formatted through their
// column style instead of cell by cell.
func (r Range) SetNumberFormat(code string) error {
	if err := r.ws.Activate(); err != nil {
		return err
	}
	doc := r.ws.doc

	if r.IsEntireColumns() {
		for col := r.minCol; col <= r.maxCol; col++ {
			style, err := doc.ColumnStyle(col)
			if err != nil {
				return fmt.Errorf("read style of column %s: %w", ColumnLetters(col), err)
			}
			style.FormatCode = code
			if err := doc.SetColumnStyle(col, style); err != nil {
				return fmt.Errorf("set format on column %s: %w", ColumnLetters(col), err)
			}
		}
		return nil
	}

	for row := r.minRow; row <= r.maxRow; row++ {
		for col := r.minCol; col <= r.maxCol; col++ {
			style, err := doc.CellStyle(row, col)
			if err != nil {
				return fmt.Errorf("read style of %s: %w", CellReference(row, col), err)
			}
			style.FormatCode = code
			if err := doc.SetCellStyle(row, col, style); err != nil {
				return fmt.Errorf("set format on %s: %w", CellReference(row, col), err)
			}
		}
	}
	return nil
}

// SetColumnWidth sets the width of every column the range touches.
func (r Range) SetColumnWidth(width float64) error {
	if err := r.ws.Activate(); err != nil {
		return err
	}
	if err := r.ws.doc.SetColumnWidth(r.minCol, r.maxCol, width); err != nil {
		return fmt.Errorf("set column width on %s: %w", r, err)
	}
	return nil
}

// CopyFromRows writes rows of values onto the worksheet starting at the
// top-left cell of the range. Nil and empty values are skipped. A value
// that cannot be stored is replaced by a message describing it, so the
// sheet shows where a new type needs support.
func (r Range) CopyFromRows(rows [][]any) error {
	if err := r.ws.Activate(); err != nil {
		return err
	}
	for i, fields := range rows {
		for j, field := range fields {
			cell := NewCellRange(r.ws, r.minRow+i, r.minCol+j)
			v, err := ValueOf(field)
			if err == nil {
				err = checkStorable(v)
			}
			if err != nil {
				r.ws.logger.Warn().
					Str("cell", cell.String()).
					Str("type", fmt.Sprintf("%T", field)).
					Msg("Cannot store record field, writing diagnostic text")
				v = Text(fmt.Sprintf("Error writing value (%v) of type %T: %v", field, field, err))
			}
			if v.IsEmpty() || v.Kind() == KindText && v.text == "" {
				continue
			}
			if err := cell.SetValue(v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r Range) requireCell(op string) error {
	if r.kind != CellBlock {
		return rangeErr(op, r, ErrInvalidOperation, "only ranges of cells hold values")
	}
	if !r.IsSingleCell() {
		return rangeErr(op, r, ErrInvalidOperation, "only single cells hold values")
	}
	return nil
}
