package sql

import (
	"errors"
	"fmt"

	"github.com/quercus-db/quercus/dialect"
)

// Sentinel errors matched by errors.Is against the typed errors below.
var (
	// ErrEmptyUpdate is returned when an UPDATE carries no assignments.
	ErrEmptyUpdate = errors.New("quercus/sql: update without assignments")

	// ErrUnconfirmedDelete is returned when a DELETE carries no filter and
	// the caller did not confirm with WithoutFilter.
	ErrUnconfirmedDelete = errors.New("quercus/sql: unfiltered delete requires WithoutFilter")

	// ErrEmptyInsert is returned when an INSERT carries no records.
	ErrEmptyInsert = errors.New("quercus/sql: insert without records")
)

// UnsupportedJoinKindError reports a join kind the active dialect does not
// implement. Compilation fails rather than degrading to another kind.
type UnsupportedJoinKindError struct {
	Dialect string
	Kind    dialect.JoinKind
}

// Error returns the error string.
func (e *UnsupportedJoinKindError) Error() string {
	return fmt.Sprintf("quercus/sql: dialect %s does not support %s", e.Dialect, e.Kind)
}

// UnexpectedPredicateError reports a join predicate on a join kind that
// takes none, or a missing predicate on one that requires it.
type UnexpectedPredicateError struct {
	Table   string
	Kind    dialect.JoinKind
	Missing bool
}

// Error returns the error string.
func (e *UnexpectedPredicateError) Error() string {
	if e.Missing {
		return fmt.Sprintf("quercus/sql: %s with table %q requires a join predicate", e.Kind, e.Table)
	}
	return fmt.Sprintf("quercus/sql: %s with table %q does not take a join predicate", e.Kind, e.Table)
}

// InconsistentColumnSetError reports a multi-record INSERT whose records do
// not set the same columns. A single column list heads the statement, so
// every record must populate exactly that list.
type InconsistentColumnSetError struct {
	Table string
	Want  []string
	Got   []string
}

// Error returns the error string.
func (e *InconsistentColumnSetError) Error() string {
	return fmt.Sprintf("quercus/sql: insert into %q: record sets columns %v, first record set %v", e.Table, e.Got, e.Want)
}

// ReturningUnsupportedError reports a RETURNING clause on a dialect without
// one. ExecReturning falls back to a second round trip instead.
type ReturningUnsupportedError struct {
	Dialect string
}

// Error returns the error string.
func (e *ReturningUnsupportedError) Error() string {
	return fmt.Sprintf("quercus/sql: dialect %s does not support RETURNING", e.Dialect)
}

// NotNullError reports a NULL bound or implied for a NOT NULL column.
type NotNullError struct {
	Table  string
	Column string
}

// Error returns the error string.
func (e *NotNullError) Error() string {
	return fmt.Sprintf("quercus/sql: column %s.%s is NOT NULL", e.Table, e.Column)
}

// GeneratedColumnError reports an assignment to a generated column.
type GeneratedColumnError struct {
	Table  string
	Column string
}

// Error returns the error string.
func (e *GeneratedColumnError) Error() string {
	return fmt.Sprintf("quercus/sql: column %s.%s is generated and cannot be assigned", e.Table, e.Column)
}
