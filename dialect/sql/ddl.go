package sql

import (
	"fmt"
	"strings"

	"github.com/quercus-db/quercus/dialect"
	"github.com/quercus-db/quercus/schema"
)

// CreateTableBuilder renders the CREATE TABLE statement for a registered
// table, plus CREATE INDEX statements for its indexed columns. DDL is the
// one place values are rendered as literals instead of bound; the profile
// owns the escaping rules.
type CreateTableBuilder struct {
	builder     *DialectBuilder
	table       string
	ifNotExists bool
}

// IfNotExists makes the statement a no-op when the table already exists.
func (c *CreateTableBuilder) IfNotExists() *CreateTableBuilder {
	c.ifNotExists = true
	return c
}

// Query compiles the CREATE TABLE statement. DDL carries no binds.
func (c *CreateTableBuilder) Query() (string, []schema.Value, error) {
	stmts, err := c.Queries()
	if err != nil {
		return "", nil, err
	}
	return stmts[0], nil, nil
}

// Queries compiles the CREATE TABLE statement followed by one CREATE INDEX
// statement per indexed column.
func (c *CreateTableBuilder) Queries() ([]string, error) {
	t, err := c.builder.tableDesc(c.table)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	if c.ifNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(c.builder.ident(c.table))
	sb.WriteString(" (")
	for n, col := range t.Columns() {
		if n > 0 {
			sb.WriteString(", ")
		}
		clause, err := c.columnClause(col)
		if err != nil {
			return nil, err
		}
		sb.WriteString(clause)
	}
	sb.WriteString(")")

	stmts := []string{sb.String()}
	for _, col := range t.Columns() {
		if !col.Indexed || col.Unique || col.PrimaryKey {
			continue
		}
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX %s ON %s (%s)",
			c.builder.ident(fmt.Sprintf("idx_%s_%s", c.table, col.Name)),
			c.builder.ident(c.table),
			c.builder.ident(col.Name)))
	}
	return stmts, nil
}

// columnClause renders one column definition. Clause order is fixed so
// dumps stay byte-stable across runs: type, nullability, default, UNIQUE,
// PRIMARY KEY, identity, engine extras, generated expression, CHECK.
func (c *CreateTableBuilder) columnClause(col *schema.Column) (string, error) {
	p := c.builder.profile
	parts := []string{c.builder.ident(col.Name), p.ColumnType(col.Type)}

	if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if def, err := c.defaultClause(col); err != nil {
		return "", err
	} else if def != "" {
		parts = append(parts, def)
	}
	if col.Unique {
		parts = append(parts, "UNIQUE")
	}
	if col.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	if col.AutoIncrement {
		if frag := p.AutoIncrement(); frag != "" {
			parts = append(parts, frag)
		}
	}
	// Engine-specific column attributes; only MySQL spells these inline.
	if p.Name() == dialect.MySQL {
		if col.Charset != "" {
			parts = append(parts, "CHARACTER SET "+col.Charset)
		}
		if col.Collate != "" {
			parts = append(parts, "COLLATE "+col.Collate)
		}
		if col.OnUpdateNow {
			parts = append(parts, "ON UPDATE CURRENT_TIMESTAMP")
		}
		if col.Invisible {
			parts = append(parts, "INVISIBLE")
		}
		if col.Comment != "" {
			parts = append(parts, fmt.Sprintf("COMMENT '%s'", strings.ReplaceAll(col.Comment, "'", "''")))
		}
	}
	if g := col.Generated; g != nil {
		mode := "VIRTUAL"
		if g.Stored {
			mode = "STORED"
		}
		parts = append(parts, fmt.Sprintf("GENERATED ALWAYS AS (%s) %s", g.Expr, mode))
	}
	if col.Check != "" {
		parts = append(parts, fmt.Sprintf("CHECK (%s)", col.Check))
	}
	return strings.Join(parts, " "), nil
}

// defaultClause renders the DEFAULT fragment, dispatching the special
// kinds to the profile.
func (c *CreateTableBuilder) defaultClause(col *schema.Column) (string, error) {
	p := c.builder.profile
	switch col.Default.Kind {
	case schema.DefaultNone:
		return "", nil
	case schema.DefaultLiteral:
		return "DEFAULT " + p.Literal(col.Default.Value), nil
	case schema.DefaultCurrentTimestamp:
		return "DEFAULT " + p.CurrentTimestamp(), nil
	case schema.DefaultRandomUUID:
		return "DEFAULT " + p.RandomUUID(), nil
	default:
		return "", fmt.Errorf("quercus/sql: column %q: unknown default kind %d", col.Name, col.Default.Kind)
	}
}

// Dump renders the DDL for every table in the builder's registry, in
// registration order, as a single script.
func (b *DialectBuilder) Dump() (string, error) {
	var sb strings.Builder
	for _, t := range b.registry.Tables() {
		stmts, err := b.CreateTable(t.Name()).Queries()
		if err != nil {
			return "", err
		}
		for _, s := range stmts {
			sb.WriteString(s)
			sb.WriteString(";\n")
		}
	}
	return sb.String(), nil
}
