package paytable

import (
	"fmt"
	"strings"
	"sync"
)

var aliases = map[string]string{
	"full-pay": "9/6",
	"fullpay":  "9/6",
}

// Registry holds named pay tables: the presets plus any loaded from files.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]PayTable
	order  []string
}

// NewRegistry creates a registry seeded with the presets.
func NewRegistry() *Registry {
	r := &Registry{tables: make(map[string]PayTable)}
	for _, pt := range Presets() {
		_ = r.Add(pt) // presets are always valid
	}
	return r
}

// Add validates and registers a table, replacing any table of the same name.
func (r *Registry) Add(pt PayTable) error {
	if pt.Name == "" {
		return fmt.Errorf("%w: table has no name", ErrInvalidPayTable)
	}
	if err := pt.Validate(); err != nil {
		return err
	}

	key := normalize(pt.Name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tables[key]; !exists {
		r.order = append(r.order, key)
	}
	r.tables[key] = pt.Clone(pt.Name)
	return nil
}

// Lookup finds a table by name. Names are case-insensitive and "9-6" matches "9/6".
func (r *Registry) Lookup(name string) (PayTable, error) {
	key := normalize(name)
	if alias, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		key = alias
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	pt, ok := r.tables[key]
	if !ok {
		return PayTable{}, fmt.Errorf("%w: %q", ErrUnknownPayTable, name)
	}
	return pt.Clone(pt.Name), nil
}

// All returns every registered table in registration order.
func (r *Registry) All() []PayTable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tables := make([]PayTable, 0, len(r.order))
	for _, key := range r.order {
		pt := r.tables[key]
		tables = append(tables, pt.Clone(pt.Name))
	}
	return tables
}

// LoadFile parses an HCL pay-table file and registers every table in it.
func (r *Registry) LoadFile(filename string) error {
	tables, err := LoadFile(filename)
	if err != nil {
		return err
	}
	for _, pt := range tables {
		if err := r.Add(pt); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
	}
	return nil
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "/")
}
