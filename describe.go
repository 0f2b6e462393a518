package xlwrap

import (
	"fmt"
	"strings"
)

// Describe returns a human-readable outline of the workbook: one line per
// worksheet with its used row count, the selected worksheet marked with
// "*". Useful when writing automation against an unfamiliar file.
func (wb *Workbook) Describe() (string, error) {
	var b strings.Builder
	b.WriteString("Workbook: ")
	if wb.path != "" {
		b.WriteString(wb.path)
	} else {
		b.WriteString("<new>")
	}
	b.WriteByte('\n')

	active := wb.doc.CurrentWorksheet()
	for i, ws := range wb.Worksheets() {
		rows, err := ws.UsedRangeRowsCount()
		if err != nil {
			return "", fmt.Errorf("describe worksheet %q: %w", ws.Name(), err)
		}
		marker := " "
		if ws.Name() == active {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %d. %s (%d used rows)\n", marker, i+1, ws.Name(), rows)
	}
	return b.String(), nil
}
