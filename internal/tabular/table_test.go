package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnOrderIsStable(t *testing.T) {
	table := NewTable("a", "b")
	table.EnsureColumn("c")
	table.EnsureColumn("b")

	assert.Equal(t, []string{"a", "b", "c"}, table.Columns())
	assert.True(t, table.HasColumn("c"))
	assert.False(t, table.HasColumn("d"))
}

func TestTable_SetCreatesColumnsLazily(t *testing.T) {
	table := NewTable("mfg_part_number")
	idx := table.AppendRow()
	table.Set(idx, "mfg_part_number", "QO120")
	table.Set(idx, "attr_voltage_rating", "120V")

	assert.Equal(t, []string{"mfg_part_number", "attr_voltage_rating"}, table.Columns())

	v, ok := table.Get(idx, "attr_voltage_rating")
	assert.True(t, ok)
	assert.Equal(t, "120V", v)

	_, ok = table.Get(idx, "missing")
	assert.False(t, ok)
}

func TestTable_MaterializeFillsUnwrittenCellsWithNil(t *testing.T) {
	table := NewTable("a")
	r0 := table.AppendRow()
	table.Set(r0, "a", "first")

	r1 := table.AppendRow()
	table.Set(r1, "b", 42)

	dense := table.Materialize()
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, [][]any{
		{"first", nil},
		{nil, 42},
	}, dense)
}

func TestTable_MaterializeEmptyTable(t *testing.T) {
	table := NewTable("a", "b")
	assert.Empty(t, table.Materialize())
	assert.Zero(t, table.Len())
}
