package xlwrap

// End returns the cell at the edge of the data region next to a single cell,
// the way END+arrow moves the cursor in a spreadsheet application.
//
// From a nonempty cell whose neighbour is also nonempty, End is the last
// nonempty cell of that contiguous run. Otherwise End is the first nonempty
// cell beyond this one. Either walk stops early at the sheet edge or at a
// cell whose bound reaches RowInfinity or ColInfinity; it never fails there.
// Only single cells are supported.
func (r Range) End(d Direction) (Range, error) {
	if !r.isCell() {
		return Range{}, rangeErr("End", r, ErrInvalidOperation, "End is only implemented for a single cell")
	}

	next, ok := r.Offset(d)
	if !ok {
		return r, nil
	}

	selfEmpty, err := r.isEmpty()
	if err != nil {
		return Range{}, err
	}
	nextEmpty, err := next.isEmpty()
	if err != nil {
		return Range{}, err
	}

	if !selfEmpty && !nextEmpty {
		return endOfRun(next, d)
	}
	return firstNonempty(next, d)
}

// endOfRun walks a run of nonempty cells starting at next and returns its last cell.
func endOfRun(next Range, d Direction) (Range, error) {
	var cur Range
	for {
		cur = next
		if cur.atSentinel() {
			return cur, nil
		}

		var ok bool
		next, ok = cur.Offset(d)
		if !ok {
			return cur, nil
		}
		empty, err := next.isEmpty()
		if err != nil {
			return Range{}, err
		}
		if empty {
			return cur, nil
		}
	}
}

// firstNonempty walks from cur until it finds a nonempty cell.
func firstNonempty(cur Range, d Direction) (Range, error) {
	for {
		empty, err := cur.isEmpty()
		if err != nil {
			return Range{}, err
		}
		if !empty {
			return cur, nil
		}

		next, ok := cur.Offset(d)
		if !ok {
			return cur, nil
		}
		cur = next
		if cur.atSentinel() {
			return cur, nil
		}
	}
}

// atSentinel reports whether either bound of the range has reached the sheet edge.
func (r Range) atSentinel() bool {
	return r.maxRowInfinite() || r.maxColInfinite()
}

func (r Range) isEmpty() (bool, error) {
	v, err := r.Value()
	if err != nil {
		return false, err
	}
	return v.IsEmpty(), nil
}
