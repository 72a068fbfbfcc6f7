package tabio

import (
	"reflect"
	"testing"
)

func TestTableColumns(t *testing.T) {
	table := NewTable("id", "title", "budget")

	if i, ok := table.ColumnIndex("title"); !ok || i != 1 {
		t.Errorf("ColumnIndex(title) = %d, %v", i, ok)
	}
	if table.HasColumn("missing") {
		t.Error("HasColumn(missing) = true")
	}
}

func TestAppendRowPadsAndTruncates(t *testing.T) {
	table := NewTable("a", "b", "c")
	table.AppendRow([]string{"1"})
	table.AppendRow([]string{"1", "2", "3", "4"})

	if got := table.Rows[0]; !reflect.DeepEqual(got, []string{"1", "", ""}) {
		t.Errorf("short row = %v", got)
	}
	if got := table.Rows[1]; !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Errorf("long row = %v", got)
	}
}

func TestRenameColumn(t *testing.T) {
	table := NewTable("movie_id", "cast")
	table.AppendRow([]string{"550", "[]"})

	if !table.RenameColumn("movie_id", "id") {
		t.Fatal("RenameColumn reported missing column")
	}
	if table.Value(0, "id") != "550" {
		t.Errorf("Value(id) = %q", table.Value(0, "id"))
	}
	if table.HasColumn("movie_id") {
		t.Error("old column name still resolves")
	}
	if table.RenameColumn("gone", "x") {
		t.Error("renaming a missing column reported success")
	}
}

func TestAddColumnBackfills(t *testing.T) {
	table := NewTable("id")
	table.AppendRow([]string{"1"})
	table.AppendRow([]string{"2"})

	table.AddColumn("overview", "")
	if len(table.Columns) != 2 {
		t.Fatalf("columns = %v", table.Columns)
	}
	for i := range table.Rows {
		if v := table.Value(i, "overview"); v != "" {
			t.Errorf("row %d overview = %q", i, v)
		}
	}

	// Adding an existing column must not duplicate it.
	table.AddColumn("overview", "x")
	if len(table.Columns) != 2 {
		t.Errorf("duplicate column added: %v", table.Columns)
	}
}

func TestDropColumn(t *testing.T) {
	table := NewTable("a", "b", "c")
	table.AppendRow([]string{"1", "2", "3"})

	if !table.DropColumn("b") {
		t.Fatal("DropColumn reported missing column")
	}
	if !reflect.DeepEqual(table.Columns, []string{"a", "c"}) {
		t.Errorf("columns = %v", table.Columns)
	}
	if !reflect.DeepEqual(table.Rows[0], []string{"1", "3"}) {
		t.Errorf("row = %v", table.Rows[0])
	}
	if table.Value(0, "c") != "3" {
		t.Errorf("Value(c) = %q after drop", table.Value(0, "c"))
	}
}

func TestSetValue(t *testing.T) {
	table := NewTable("id", "title")
	table.AppendRow([]string{"1", ""})

	table.SetValue(0, "title", "Fight Club")
	if table.Value(0, "title") != "Fight Club" {
		t.Errorf("title = %q", table.Value(0, "title"))
	}
}
