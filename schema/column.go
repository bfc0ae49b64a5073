package schema

import "fmt"

// DefaultKind discriminates the kinds of column defaults.
type DefaultKind uint8

const (
	// DefaultNone means the column declares no default.
	DefaultNone DefaultKind = iota
	// DefaultLiteral is a user-supplied literal default.
	DefaultLiteral
	// DefaultCurrentTimestamp is the backend's current timestamp.
	DefaultCurrentTimestamp
	// DefaultRandomUUID is a backend-generated random UUID.
	DefaultRandomUUID
)

// Default describes a column default. The special kinds are rendered by the
// dialect profile; the literal kind carries its value.
type Default struct {
	Kind  DefaultKind
	Value Value
}

// Generated describes a generated column expression.
type Generated struct {
	Expr   string
	Stored bool // STORED when true, VIRTUAL otherwise
}

// Validator checks a candidate value before it is bound into an INSERT or
// UPDATE statement. Validators never run against values read from storage.
type Validator func(Value) error

// Column is the immutable per-column descriptor: name, logical type,
// constraint set and table association. Columns are created through the
// builders in schema/field and owned by the registry once their table is
// registered.
type Column struct {
	Name          string
	Type          Type
	Nullable      bool // NULL allowed in storage
	Unique        bool
	PrimaryKey    bool
	Indexed       bool
	AutoIncrement bool
	Default       Default
	Comment       string
	Charset       string
	Collate       string
	Check         string
	Generated     *Generated
	OnUpdateNow   bool // ON UPDATE CURRENT_TIMESTAMP
	Invisible     bool
	CustomTag     string // type tag for TypeCustom columns
	Validators    []Validator

	// Err carries a builder misuse error; surfaced on registration.
	Err error

	table string
}

// Table returns the name of the owning table, or "" before attachment.
func (c *Column) Table() string { return c.table }

// HasDefault reports whether the column declares any default.
func (c *Column) HasDefault() bool { return c.Default.Kind != DefaultNone }

// OmitIfAbsent reports whether an insert may leave the column out entirely
// so the backend's default or identity mechanism fires. Explicitly binding
// NULL is a distinct action and never happens implicitly.
func (c *Column) OmitIfAbsent() bool { return c.HasDefault() || c.AutoIncrement }

// Validate runs the column's validators against a candidate value.
func (c *Column) Validate(v Value) error {
	for _, fn := range c.Validators {
		if err := fn(v); err != nil {
			return fmt.Errorf("quercus/schema: column %q: %w", c.Name, err)
		}
	}
	return nil
}

// structuralEqual reports whether two columns declare the same structure.
// Validators are compared by count only; they do not shape the storage.
func (c *Column) structuralEqual(o *Column) bool {
	if c.Name != o.Name || c.Type != o.Type ||
		c.Nullable != o.Nullable || c.Unique != o.Unique ||
		c.PrimaryKey != o.PrimaryKey || c.Indexed != o.Indexed ||
		c.AutoIncrement != o.AutoIncrement ||
		c.Comment != o.Comment || c.Charset != o.Charset || c.Collate != o.Collate ||
		c.Check != o.Check || c.OnUpdateNow != o.OnUpdateNow ||
		c.Invisible != o.Invisible || c.CustomTag != o.CustomTag ||
		len(c.Validators) != len(o.Validators) {
		return false
	}
	if c.Default.Kind != o.Default.Kind || !c.Default.Value.Equal(o.Default.Value) {
		return false
	}
	switch {
	case c.Generated == nil && o.Generated == nil:
	case c.Generated != nil && o.Generated != nil:
		if *c.Generated != *o.Generated {
			return false
		}
	default:
		return false
	}
	return true
}
