package hardware

import (
	"sort"
	"sync"
)

// Registry is an immutable id -> Spec lookup table.
type Registry struct {
	specs map[string]Spec
}

// NewRegistry merges the given catalogs into one namespace. When two
// catalogs share an id the later entry wins.
func NewRegistry(catalogs ...[]Spec) *Registry {
	r := &Registry{specs: make(map[string]Spec)}
	for _, c := range catalogs {
		for _, s := range c {
			r.specs[s.ID] = s
		}
	}
	return r
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry of built-in hardware.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry(Hinges, DrawerSlides, ShelfRows, DowelJoints)
	})
	return defaultReg
}

// With returns a new registry holding r's specs plus extra. r is unchanged.
func (r *Registry) With(extra ...Spec) *Registry {
	return NewRegistry(r.All(), extra)
}

// Lookup returns the hardware spec with the given id.
func (r *Registry) Lookup(id string) (Spec, bool) {
	if r == nil {
		return Spec{}, false
	}
	s, ok := r.specs[id]
	return s, ok
}

// IDs returns every registered id in sorted order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.specs))
	for id := range r.specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every spec ordered by id.
func (r *Registry) All() []Spec {
	ids := r.IDs()
	specs := make([]Spec, 0, len(ids))
	for _, id := range ids {
		specs = append(specs, r.specs[id])
	}
	return specs
}

// Len returns the number of registered specs.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.specs)
}
