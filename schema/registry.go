package schema

import "sync"

// Registry is a process-wide, append-only catalog of finalized table
// descriptors. Registration holds a write lock only for the insert;
// resolution takes a shared read lock, so readers never block each other.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
	order  []string // registration order, for deterministic dumps
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Register adds a table descriptor to the registry. Registering the same
// structure again is a no-op, so a schema may be declared repeatedly across
// modules without single-initialization discipline. A table of the same
// name with a different structure fails with *DuplicateTableError, never a
// silent overwrite.
func (r *Registry) Register(t *Table) error {
	if err := t.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.tables[t.name]; ok {
		if prev.structuralEqual(t) {
			return nil
		}
		return &DuplicateTableError{Name: t.name}
	}
	r.tables[t.name] = t
	r.order = append(r.order, t.name)
	return nil
}

// Table returns the descriptor registered under name.
func (r *Registry) Table(name string) (*Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[name]
	return t, ok
}

// Resolve returns the descriptor of table.column, used by the filter
// algebra and statement builders to validate references.
func (r *Registry) Resolve(table, column string) (*Column, bool) {
	t, ok := r.Table(table)
	if !ok {
		return nil, false
	}
	return t.Column(column)
}

// Tables returns a snapshot of all registered tables in registration order.
func (r *Registry) Tables() []*Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Table, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tables[name])
	}
	return out
}

// defaultRegistry backs the package-level registration functions.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by the
// package-level functions and, unless overridden, by the statement
// builders.
func DefaultRegistry() *Registry { return defaultRegistry }

// Register adds a table to the default registry.
func Register(t *Table) error { return defaultRegistry.Register(t) }

// Resolve resolves table.column against the default registry.
func Resolve(table, column string) (*Column, bool) {
	return defaultRegistry.Resolve(table, column)
}
