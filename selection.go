package xlwrap

import "fmt"

// Activate makes ws the selected worksheet, like clicking its tab.
func (ws *Worksheet) Activate() error {
	if err := ws.doc.SelectWorksheet(ws.name); err != nil {
		return fmt.Errorf("select worksheet %q: %w", ws.name, err)
	}
	return nil
}

// withSelection runs fn with ws selected and then restores whichever
// worksheet was selected before, on every return path. Reads go through
// here so they leave the document's selection as they found it.
func (ws *Worksheet) withSelection(fn func() error) (err error) {
	prev := ws.doc.CurrentWorksheet()
	if err := ws.Activate(); err != nil {
		return err
	}
	defer func() {
		if prev == ws.name || prev == "" {
			return
		}
		if rerr := ws.doc.SelectWorksheet(prev); rerr != nil && err == nil {
			err = fmt.Errorf("restore worksheet %q: %w", prev, rerr)
		}
	}()
	return fn()
}
