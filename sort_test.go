package xlwrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_Sort_ByColumns(t *testing.T) {
	doc := newMemDocument("Sheet1", "Sheet2")
	ws := newTestSheet(doc, "Sheet2")
	for i, row := range [][2]float64{{3, 30}, {1, 10}, {2, 20}} {
		doc.put("Sheet2", i+1, 1, Number(row[0]))
		doc.put("Sheet2", i+1, 2, Number(row[1]))
	}

	block := mustRange(t, ws, "A1:B3")
	key := mustRange(t, ws, "A1")
	require.NoError(t, block.Sort(key, Ascending, ByColumns))

	assert.Equal(t, []string{"Sort(A1:B3,true,1,true)"}, doc.calls)
	assert.Equal(t, "Sheet2", doc.CurrentWorksheet(), "sort leaves the sheet selected")
	for i, want := range [][2]float64{{1, 10}, {2, 20}, {3, 30}} {
		assert.Equal(t, Number(want[0]), doc.get("Sheet2", i+1, 1))
		assert.Equal(t, Number(want[1]), doc.get("Sheet2", i+1, 2), "rows move as a unit")
	}
}

func TestRange_Sort_KeyIndex(t *testing.T) {
	doc := newMemDocument("Sheet1")
	ws := newTestSheet(doc, "Sheet1")
	block := mustRange(t, ws, "B2:E9")

	require.NoError(t, block.Sort(mustRange(t, ws, "D5"), Descending, ByColumns))
	require.NoError(t, block.Sort(mustRange(t, ws, "D5"), Ascending, ByRows))

	assert.Equal(t, []string{
		"Sort(B2:E9,true,4,false)",
		"Sort(B2:E9,false,5,true)",
	}, doc.calls)
}

func TestRange_Sort_DefaultOrientation(t *testing.T) {
	var o SortOrientation
	assert.Equal(t, ByRows, o)
	var s SortOrder
	assert.Equal(t, Ascending, s)
}

func TestRange_Sort_KeyMustBeSingleCell(t *testing.T) {
	doc := newMemDocument("Sheet1")
	ws := newTestSheet(doc, "Sheet1")
	block := mustRange(t, ws, "A1:C3")

	err := block.Sort(mustRange(t, ws, "A1:A2"), Ascending, ByColumns)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	col, err := ws.Column(1)
	require.NoError(t, err)
	err = block.Sort(col, Ascending, ByColumns)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Empty(t, doc.calls)
}
