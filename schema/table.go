package schema

import (
	"fmt"

	"github.com/go-openapi/inflect"
)

// ColumnSpec is implemented by the column builders in schema/field.
type ColumnSpec interface {
	Descriptor() *Column
}

// Table is the immutable table descriptor: a name and its columns in
// declaration order. Built once and registered once; it lives for the
// process lifetime afterwards.
type Table struct {
	name    string
	columns []*Column
	index   map[string]*Column
	err     error
}

// NewTable builds a table descriptor from column specs, keeping declaration
// order. Construction errors (duplicate column, multiple primary keys,
// builder misuse) are deferred to the Err method and surfaced again on
// registration, matching the deferred-error style of the column builders.
func NewTable(name string, cols ...ColumnSpec) *Table {
	t := &Table{
		name:  name,
		index: make(map[string]*Column, len(cols)),
	}
	if name == "" {
		t.err = fmt.Errorf("quercus/schema: table name must not be empty")
		return t
	}
	var pk *Column
	for _, spec := range cols {
		c := spec.Descriptor()
		switch {
		case t.err != nil:
		case c.Err != nil:
			t.err = fmt.Errorf("quercus/schema: table %q: %w", name, c.Err)
		case c.Name == "":
			t.err = fmt.Errorf("quercus/schema: table %q: column name must not be empty", name)
		case !c.Type.Valid():
			t.err = fmt.Errorf("quercus/schema: table %q: column %q has no valid type", name, c.Name)
		case t.index[c.Name] != nil:
			t.err = fmt.Errorf("quercus/schema: table %q: duplicate column %q", name, c.Name)
		case c.PrimaryKey && pk != nil:
			t.err = fmt.Errorf("quercus/schema: table %q: multiple primary keys (%q, %q)", name, pk.Name, c.Name)
		case c.AutoIncrement && !c.Type.Integer():
			t.err = fmt.Errorf("quercus/schema: table %q: auto-increment column %q must be an integer", name, c.Name)
		}
		if c.PrimaryKey && pk == nil {
			pk = c
		}
		c.table = name
		t.columns = append(t.columns, c)
		t.index[c.Name] = c
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Err returns the deferred construction error, if any.
func (t *Table) Err() error { return t.err }

// Columns returns the columns in declaration order. The returned slice and
// its descriptors must not be mutated.
func (t *Table) Columns() []*Column { return t.columns }

// Column returns the descriptor of the named column.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.index[name]
	return c, ok
}

// PrimaryKey returns the primary key column, if one is declared.
func (t *Table) PrimaryKey() (*Column, bool) {
	for _, c := range t.columns {
		if c.PrimaryKey {
			return c, true
		}
	}
	return nil, false
}

// structuralEqual reports whether two descriptors declare the same table.
func (t *Table) structuralEqual(o *Table) bool {
	if t.name != o.name || len(t.columns) != len(o.columns) {
		return false
	}
	for i := range t.columns {
		if !t.columns[i].structuralEqual(o.columns[i]) {
			return false
		}
	}
	return true
}

// TableName derives a conventional table name from an entity identifier:
// "UserProfile" becomes "user_profiles".
func TableName(ident string) string {
	return inflect.Pluralize(inflect.Underscore(ident))
}
