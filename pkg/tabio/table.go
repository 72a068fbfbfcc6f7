// Package tabio holds the tabular I/O layer for the pipeline: an
// in-memory table model, the CSV codec, and the source/sink abstractions
// that keep the transform stages free of filesystem coupling.
package tabio

// Table is an in-memory tabular dataset: a header and rows of string
// cells. Cells are kept as raw strings; typing is the concern of the
// stages that consume them.
type Table struct {
	Columns []string
	Rows    [][]string

	colIndex map[string]int
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	t := &Table{Columns: append([]string(nil), columns...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.colIndex = make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		// First occurrence wins when an input repeats a header name.
		if _, exists := t.colIndex[col]; !exists {
			t.colIndex[col] = i
		}
	}
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.colIndex[name]
	return i, ok
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIndex[name]
	return ok
}

// AppendRow adds a data row, padding or truncating it to the column
// count so every stored row is rectangular.
func (t *Table) AppendRow(row []string) {
	fixed := make([]string, len(t.Columns))
	copy(fixed, row)
	t.Rows = append(t.Rows, fixed)
}

// Value returns the cell at the given row for the named column, or ""
// when the column does not exist.
func (t *Table) Value(row int, column string) string {
	i, ok := t.colIndex[column]
	if !ok {
		return ""
	}
	return t.Rows[row][i]
}

// RenameColumn renames a column in place. It reports whether the column
// existed.
func (t *Table) RenameColumn(from, to string) bool {
	i, ok := t.colIndex[from]
	if !ok {
		return false
	}
	t.Columns[i] = to
	t.reindex()
	return true
}

// AddColumn appends a new column filled with the given default value.
// Adding an existing column is a no-op.
func (t *Table) AddColumn(name, defaultValue string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
	t.colIndex[name] = len(t.Columns) - 1
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], defaultValue)
	}
}

// DropColumn removes a column and its cells. It reports whether the
// column existed.
func (t *Table) DropColumn(name string) bool {
	i, ok := t.colIndex[name]
	if !ok {
		return false
	}
	t.Columns = append(t.Columns[:i], t.Columns[i+1:]...)
	for r := range t.Rows {
		t.Rows[r] = append(t.Rows[r][:i], t.Rows[r][i+1:]...)
	}
	t.reindex()
	return true
}

// SetValue overwrites the cell at the given row for the named column.
func (t *Table) SetValue(row int, column, value string) {
	if i, ok := t.colIndex[column]; ok {
		t.Rows[row][i] = value
	}
}
