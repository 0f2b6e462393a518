package xlwrap

import "fmt"

// SortOrder is the order of a sort.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// SortOrientation chooses what a sort rearranges.
type SortOrientation int

const (
	// ByRows sorts by a key row: columns keep their cells and move
	// relative to each other. This is the default.
	ByRows SortOrientation = iota
	// ByColumns sorts by a key column: rows keep their cells and move
	// relative to each other.
	ByColumns
)

// Sort rearranges the range. key is a single cell: sorting ByColumns orders
// the rows by the values in key's column, sorting ByRows orders the columns
// by the values in key's row. Sorting selects the range's worksheet.
func (r Range) Sort(key Range, order SortOrder, orientation SortOrientation) error {
	if !key.isCell() {
		return rangeErr("Sort", r, ErrInvalidOperation, fmt.Sprintf("sort key %s is not a single cell", key))
	}
	if err := r.ws.Activate(); err != nil {
		return err
	}

	byColumn := orientation == ByColumns
	keyIndex := key.minRow
	if byColumn {
		keyIndex = key.minCol
	}

	if err := r.ws.doc.Sort(r.Bounds(), byColumn, keyIndex, order == Ascending); err != nil {
		return fmt.Errorf("sort %s: %w", r, err)
	}
	return nil
}
