package table

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/cfgpack/errs"
)

// Registry maps table fingerprints to tables.
//
// Services that receive records pinned to a table version (see envelope.Peek) use it to find
// the matching table. It is safe for concurrent use.
type Registry struct {
	tables *xsync.Map[uint64, *Table]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: xsync.NewMap[uint64, *Table]()}
}

// Register adds t and returns its fingerprint.
//
// Registering an identical table twice is a no-op. A different table with the same
// fingerprint wraps errs.ErrInvalidTable.
func (r *Registry) Register(t *Table) (uint64, error) {
	fp := t.Fingerprint()

	existing, loaded := r.tables.LoadOrStore(fp, t)
	if loaded && !existing.Equal(t) {
		return 0, fmt.Errorf("%w: fingerprint 0x%016x already registered for a different table", errs.ErrInvalidTable, fp)
	}

	return fp, nil
}

// Lookup returns the table registered under fingerprint.
func (r *Registry) Lookup(fingerprint uint64) (*Table, bool) {
	return r.tables.Load(fingerprint)
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	return r.tables.Size()
}
