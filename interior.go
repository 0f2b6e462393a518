package xlwrap

import "fmt"

// colorIndexFills maps the legacy 56-colour palette indexes the automation
// scripts use to RRGGBB fills.
var colorIndexFills = map[int]string{
	15: "C0C0C0",
	36: "FFFF99",
}

// Interior is the inside of a single cell, which can be given a fill colour.
type Interior struct {
	cell Range
}

// Interior returns the interior of a single cell.
func (r Range) Interior() (Interior, error) {
	if err := r.requireCell("Interior"); err != nil {
		return Interior{}, err
	}
	return Interior{cell: r}, nil
}

// SetColorIndex fills the cell with a palette colour and selects its worksheet.
func (in Interior) SetColorIndex(index int) error {
	fill, ok := colorIndexFills[index]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnsupportedColorIndex, index)
	}

	c := in.cell
	if err := c.ws.Activate(); err != nil {
		return err
	}
	doc := c.ws.doc
	style, err := doc.CellStyle(c.minRow, c.minCol)
	if err != nil {
		return fmt.Errorf("read style of %s: %w", c, err)
	}
	style.FillColor = fill
	if err := doc.SetCellStyle(c.minRow, c.minCol, style); err != nil {
		return fmt.Errorf("fill %s: %w", c, err)
	}
	return nil
}

// ColorIndex returns the palette index of the cell's fill, or 0 when the
// fill is not a palette colour.
func (in Interior) ColorIndex() (int, error) {
	c := in.cell
	var index int
	err := c.ws.withSelection(func() error {
		style, err := c.ws.doc.CellStyle(c.minRow, c.minCol)
		if err != nil {
			return fmt.Errorf("read style of %s: %w", c, err)
		}
		for i, fill := range colorIndexFills {
			if fill == style.FillColor {
				index = i
			}
		}
		return nil
	})
	return index, err
}
