package xlwrap

import "fmt"

// Delete removes the rows or columns of a range made of entire rows or
// entire columns, and selects the range's worksheet.
func (r Range) Delete() error {
	if err := r.ws.Activate(); err != nil {
		return err
	}

	doc := r.ws.doc
	switch {
	case r.IsEntireColumns():
		if err := doc.DeleteColumns(r.minCol, r.maxCol-r.minCol+1); err != nil {
			return fmt.Errorf("delete %s: %w", r, err)
		}
	case r.IsEntireRows():
		if err := doc.DeleteRows(r.minRow, r.maxRow-r.minRow+1); err != nil {
			return fmt.Errorf("delete %s: %w", r, err)
		}
	default:
		return rangeErr("Delete", r, ErrInvalidOperation, "only entire rows or entire columns can be deleted")
	}
	return nil
}

// AutoFit resizes the columns or rows of the range to fit their contents.
// The range must be entire columns or entire rows.
func (r Range) AutoFit() error {
	switch r.kind {
	case EntireColumns:
		if !r.IsEntireColumns() {
			return rangeErr("AutoFit", r, ErrInvalidOperation, "cannot autofit partial columns")
		}
	case EntireRows:
		if !r.IsEntireRows() {
			return rangeErr("AutoFit", r, ErrInvalidOperation, "cannot autofit partial rows")
		}
	default:
		return rangeErr("AutoFit", r, ErrInvalidOperation, "only entire rows or entire columns can be autofit")
	}

	if err := r.ws.Activate(); err != nil {
		return err
	}

	doc := r.ws.doc
	if r.kind == EntireColumns {
		if err := doc.AutoFitColumns(r.minCol, r.maxCol); err != nil {
			return fmt.Errorf("autofit %s: %w", r, err)
		}
		return nil
	}
	if err := doc.AutoFitRows(r.minRow, r.maxRow); err != nil {
		return fmt.Errorf("autofit %s: %w", r, err)
	}
	return nil
}
