package xlwrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorksheet_Activate(t *testing.T) {
	doc := newMemDocument("Sheet1", "Sheet2")
	ws := newTestSheet(doc, "Sheet2")

	require.NoError(t, ws.Activate())
	assert.Equal(t, "Sheet2", doc.CurrentWorksheet())

	missing := newTestSheet(doc, "Nope")
	assert.ErrorIs(t, missing.Activate(), ErrSheetNotFound)
}

func TestWorksheet_RenameKeepsRanges(t *testing.T) {
	doc := newMemDocument("Sheet1")
	ws := newTestSheet(doc, "Sheet1")
	cell := mustRange(t, ws, "A1")

	require.NoError(t, ws.Rename("Data"))
	assert.Equal(t, "Data", ws.Name())
	assert.Equal(t, []string{"Data"}, doc.SheetNames())

	require.NoError(t, cell.Set("moved"))
	assert.Equal(t, Text("moved"), doc.get("Data", 1, 1))
}

func TestWorksheet_Delete(t *testing.T) {
	doc := newMemDocument("Sheet1", "Sheet2")

	err := newTestSheet(doc, "Sheet1").Delete()
	assert.ErrorIs(t, err, ErrInvalidOperation, "the selected sheet stays")

	require.NoError(t, newTestSheet(doc, "Sheet2").Delete())
	assert.Equal(t, []string{"Sheet1"}, doc.SheetNames())
}

func TestWorksheet_UsedRangeRowsCount(t *testing.T) {
	doc := newMemDocument("Sheet1", "Sheet2")
	ws := newTestSheet(doc, "Sheet2")

	n, err := ws.UsedRangeRowsCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	doc.put("Sheet2", 3, 1, Number(1))
	doc.put("Sheet2", 7, 4, Text("x"))
	n, err = ws.UsedRangeRowsCount()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "Sheet1", doc.CurrentWorksheet())
}

func TestWorksheet_ProtectAndPanes(t *testing.T) {
	doc := newMemDocument("Sheet1", "Sheet2")
	ws := newTestSheet(doc, "Sheet2")

	require.NoError(t, ws.Protect("secret"))
	assert.Equal(t, "secret", doc.sheet("Sheet2").protected)
	assert.Empty(t, doc.sheet("Sheet1").protected)

	require.NoError(t, ws.SetSplitRow(1))
	require.NoError(t, ws.SetSplitColumn(2))
	require.NoError(t, ws.SetFreezePanes(true))

	s := doc.sheet("Sheet2")
	assert.Equal(t, 1, s.splitRow)
	assert.Equal(t, 2, s.splitCol)
	assert.True(t, s.frozen)
	assert.Equal(t, "Sheet1", doc.CurrentWorksheet())

	require.NoError(t, ws.SetFreezePanes(false))
	assert.False(t, s.frozen)
	assert.Equal(t, 1, s.splitRow, "unfreezing keeps the split")
}

func TestWorksheet_CellAndRow(t *testing.T) {
	ws := newTestSheet(newMemDocument(), "Sheet1")

	cell, err := ws.Cell(4, 2)
	require.NoError(t, err)
	assert.Equal(t, "B4", cell.Bounds().String())

	_, err = ws.Cell(0, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRange_Delete(t *testing.T) {
	doc := newMemDocument("Sheet1", "Sheet2")
	ws := newTestSheet(doc, "Sheet2")
	doc.put("Sheet2", 1, 1, Text("a"))
	doc.put("Sheet2", 2, 1, Text("b"))
	doc.put("Sheet2", 3, 1, Text("c"))
	doc.put("Sheet2", 1, 3, Text("z"))

	row, err := ws.Row(2)
	require.NoError(t, err)
	require.NoError(t, row.Delete())
	assert.Equal(t, Text("c"), doc.get("Sheet2", 2, 1))
	assert.Equal(t, "Sheet2", doc.CurrentWorksheet())

	cols, err := ws.ColumnsRef("A:B")
	require.NoError(t, err)
	require.NoError(t, cols.Delete())
	assert.Equal(t, Text("z"), doc.get("Sheet2", 1, 1))

	assert.Equal(t, []string{"DeleteRows(2,1)", "DeleteColumns(1,2)"}, doc.calls)

	err = mustRange(t, ws, "A1:B2").Delete()
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestRange_AutoFit(t *testing.T) {
	doc := newMemDocument("Sheet1")
	ws := newTestSheet(doc, "Sheet1")

	cols, err := ws.ColumnsRef("B:C")
	require.NoError(t, err)
	require.NoError(t, cols.AutoFit())

	rows := mustRange(t, ws, "A3:B4").EntireRow()
	require.NoError(t, rows.AutoFit())

	assert.Equal(t, []string{"AutoFitColumns(2,3)", "AutoFitRows(3,4)"}, doc.calls)

	err = mustRange(t, ws, "A1:C3").AutoFit()
	assert.ErrorIs(t, err, ErrInvalidOperation)

	partial := NewRange(ws, Bounds{2, 1, 10, 1}, EntireColumns)
	err = partial.AutoFit()
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestInterior_ColorIndex(t *testing.T) {
	doc := newMemDocument("Sheet1", "Sheet2")
	ws := newTestSheet(doc, "Sheet2")
	cell := mustRange(t, ws, "C3")

	in, err := cell.Interior()
	require.NoError(t, err)

	idx, err := in.ColorIndex()
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	require.NoError(t, in.SetColorIndex(36))
	assert.Equal(t, "FFFF99", doc.sheet("Sheet2").styles[cellPos{3, 3}].FillColor)
	idx, err = in.ColorIndex()
	require.NoError(t, err)
	assert.Equal(t, 36, idx)

	require.NoError(t, in.SetColorIndex(15))
	assert.Equal(t, "C0C0C0", doc.sheet("Sheet2").styles[cellPos{3, 3}].FillColor)

	assert.ErrorIs(t, in.SetColorIndex(3), ErrUnsupportedColorIndex)

	_, err = mustRange(t, ws, "A1:B2").Interior()
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestInterior_KeepsNumberFormat(t *testing.T) {
	doc := newMemDocument("Sheet1")
	ws := newTestSheet(doc, "Sheet1")
	cell := mustRange(t, ws, "A1")

	require.NoError(t, cell.SetNumberFormat("0.00"))
	in, err := cell.Interior()
	require.NoError(t, err)
	require.NoError(t, in.SetColorIndex(15))

	code, err := cell.NumberFormat()
	require.NoError(t, err)
	assert.Equal(t, "0.00", code)
}
