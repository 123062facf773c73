package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingWork_CategoryScope(t *testing.T) {
	o := orderWith(1, "3")
	products := testProducts()
	o.Lines = []OrderLine{
		newLine(1, products[10], "", 0, testNow),
		newLine(1, products[20], "", 1, testNow),
		newLine(1, products[11], "", 2, testNow),
	}
	for i := range o.Lines {
		o.Lines[i].ID = uint64(i + 1)
	}
	o.Lines[2].Status = LineDelivered
	closed := orderWith(2, "4", LinePending)
	closed.Status = OrderClosed

	orders := []Order{*o, *closed}

	kitchen := PendingWork(orders, uptr(catKitchen), SortCreatedAsc)
	require.Len(t, kitchen, 1)
	assert.Equal(t, "Tacos", kitchen[0].ProductName)

	bar := PendingWork(orders, uptr(catBar), SortCreatedAsc)
	require.Len(t, bar, 1)
	assert.Equal(t, "Cerveza", bar[0].ProductName)

	none := PendingWork(orders, nil, SortCreatedAsc)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestVisible(t *testing.T) {
	l := OrderLine{CategoryID: catKitchen}
	assert.True(t, Visible(l, uptr(catKitchen)))
	assert.False(t, Visible(l, uptr(catBar)))
	assert.False(t, Visible(l, nil))
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortCreatedAsc, k)

	k, err = ParseSortKey("priority_desc")
	require.NoError(t, err)
	assert.Equal(t, SortPriorityDesc, k)

	_, err = ParseSortKey("alphabetical")
	assert.EqualError(t, err, `sort: unknown sort key "alphabetical"`)
}

func TestSortWork(t *testing.T) {
	base := testNow
	items := func() []WorkItem {
		return []WorkItem{
			{LineID: 1, Table: "10", Priority: 1, CreatedAt: base.Add(2 * time.Minute)},
			{LineID: 2, Table: "2", Priority: 3, CreatedAt: base},
			{LineID: 3, Table: "terraza", Priority: 3, CreatedAt: base.Add(time.Minute)},
			{LineID: 4, Table: "2", Priority: 1, CreatedAt: base},
		}
	}
	ids := func(w []WorkItem) []uint64 {
		out := make([]uint64, len(w))
		for i := range w {
			out[i] = w[i].LineID
		}
		return out
	}

	tests := []struct {
		key  SortKey
		want []uint64
	}{
		{SortCreatedAsc, []uint64{2, 4, 3, 1}},
		{SortCreatedDesc, []uint64{1, 3, 2, 4}},
		{SortTableAsc, []uint64{2, 4, 1, 3}},
		{SortTableDesc, []uint64{3, 1, 2, 4}},
		{SortPriorityAsc, []uint64{4, 1, 2, 3}},
		{SortPriorityDesc, []uint64{2, 3, 4, 1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			w := items()
			SortWork(w, tt.key)
			assert.Equal(t, tt.want, ids(w))
		})
	}
}

func TestCompareTables(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"7", "7", 0},
		{"9223372036854775807", "-1", 1},
		{"-1", "9223372036854775807", -1},
		{"-9223372036854775808", "1", -1},
		{"3", "Terraza", -1},
		{"Barra", "3", 1},
		{"Barra", "Terraza", -1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, compareTables(tt.a, tt.b))
		})
	}
}
