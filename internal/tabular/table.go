// Package tabular holds the row/column model shared by bulk enrichment
// input parsing and output file generation. Output tables accrete columns
// as rows produce new attribute names; cells stay sparse until the table
// is materialized for writing.
package tabular

// Table is a column-ordered, sparsely populated table. Columns only ever
// grow; a cell never written renders as empty.
type Table struct {
	columns []string
	colPos  map[string]int
	rows    []map[string]any
}

// NewTable creates a table with a fixed initial column order.
func NewTable(columns ...string) *Table {
	t := &Table{colPos: make(map[string]int)}
	for _, c := range columns {
		t.EnsureColumn(c)
	}
	return t
}

// EnsureColumn adds a column if the table does not have it yet.
func (t *Table) EnsureColumn(name string) {
	if _, ok := t.colPos[name]; ok {
		return
	}
	t.colPos[name] = len(t.columns)
	t.columns = append(t.columns, name)
}

// HasColumn reports whether the column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colPos[name]
	return ok
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// AppendRow adds an empty row and returns its index.
func (t *Table) AppendRow() int {
	t.rows = append(t.rows, make(map[string]any))
	return len(t.rows) - 1
}

// Set writes a cell, creating the column if needed.
func (t *Table) Set(row int, column string, value any) {
	t.EnsureColumn(column)
	t.rows[row][column] = value
}

// Get reads a cell. The second return is false when the cell was never
// written.
func (t *Table) Get(row int, column string) (any, bool) {
	v, ok := t.rows[row][column]
	return v, ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Materialize produces dense rows aligned to the column order. Cells never
// written come out as nil.
func (t *Table) Materialize() [][]any {
	out := make([][]any, len(t.rows))
	for i, row := range t.rows {
		dense := make([]any, len(t.columns))
		for j, col := range t.columns {
			if v, ok := row[col]; ok {
				dense[j] = v
			}
		}
		out[i] = dense
	}
	return out
}
