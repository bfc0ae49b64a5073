package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by errors.Is against the typed errors below.
var (
	// ErrDuplicateTable is returned when a table name is re-registered
	// with a different structure.
	ErrDuplicateTable = errors.New("quercus/schema: duplicate table")

	// ErrUnknownColumn is returned when a statement or predicate
	// references a column that is not declared on a participating table.
	ErrUnknownColumn = errors.New("quercus/schema: unknown column")

	// ErrUnknownTable is returned when a statement names a table that is
	// not registered.
	ErrUnknownTable = errors.New("quercus/schema: unknown table")
)

// UnknownTableError reports a statement against an unregistered table.
type UnknownTableError struct {
	Name string
}

// Error returns the error string.
func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("quercus/schema: table %q is not registered", e.Name)
}

// Is reports whether the target matches ErrUnknownTable.
func (e *UnknownTableError) Is(err error) bool { return err == ErrUnknownTable }

// DuplicateTableError reports a conflicting re-registration of a table.
type DuplicateTableError struct {
	Name string
}

// Error returns the error string.
func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("quercus/schema: table %q already registered with a different structure", e.Name)
}

// Is reports whether the target matches ErrDuplicateTable.
func (e *DuplicateTableError) Is(err error) bool { return err == ErrDuplicateTable }

// UnknownColumnError reports a reference to an undeclared column.
type UnknownColumnError struct {
	Table  string
	Column string
}

// Error returns the error string.
func (e *UnknownColumnError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("quercus/schema: unknown column %q", e.Column)
	}
	return fmt.Sprintf("quercus/schema: unknown column %q on table %q", e.Column, e.Table)
}

// Is reports whether the target matches ErrUnknownColumn.
func (e *UnknownColumnError) Is(err error) bool { return err == ErrUnknownColumn }

// IsUnknownColumn reports whether err is an UnknownColumnError.
func IsUnknownColumn(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownColumnError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownColumn)
}

// TypeMismatchError reports a raw cell whose storage tag disagrees with
// the declared logical type. Decoding never coerces across tags.
type TypeMismatchError struct {
	Table  string
	Column string
	Type   Type   // declared logical type
	Stored string // description of the stored representation
}

// Error returns the error string.
func (e *TypeMismatchError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("quercus/schema: cannot decode %s into %s", e.Stored, e.Type)
	}
	return fmt.Sprintf("quercus/schema: column %s.%s: cannot decode %s into %s", e.Table, e.Column, e.Stored, e.Type)
}

// OverflowError reports a stored value that does not fit the declared
// logical type's width.
type OverflowError struct {
	Table  string
	Column string
	Type   Type
	Stored string
}

// Error returns the error string.
func (e *OverflowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("quercus/schema: value %s overflows %s", e.Stored, e.Type)
	}
	return fmt.Sprintf("quercus/schema: column %s.%s: value %s overflows %s", e.Table, e.Column, e.Stored, e.Type)
}

// MissingColumnError reports a requested column absent from the scanned
// result set.
type MissingColumnError struct {
	Table  string
	Column string
}

// Error returns the error string.
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("quercus/schema: column %s.%s missing from result set", e.Table, e.Column)
}
