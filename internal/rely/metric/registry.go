package metric

import (
	"errors"
	"fmt"
	"slices"
)

// ErrEmptyRegistry is returned when scores are reduced over no metrics. It
// indicates a build defect, not a runtime condition.
var ErrEmptyRegistry = errors.New("metric registry is empty")

// Registry maps normalized metric names to definitions. It is built once at
// startup and read-only afterwards, so concurrent reads need no locking.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// NewRegistry validates defs and builds a registry preserving their order.
// Duplicate names, weights outside (0, 1) and missing constructors are errors.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if err := r.register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) register(d Definition) error {
	key := d.Name.Normalized
	if key == "" {
		return fmt.Errorf("metric %q: normalized name is empty", d.Name.Pretty)
	}
	if _, dup := r.index[key]; dup {
		return fmt.Errorf("metric %s: registered twice", key)
	}
	if !d.Weight.Valid() {
		return fmt.Errorf("metric %s: weight %s must be between 0 and 1 (exclusive)", key, d.Weight)
	}
	if d.New == nil {
		return fmt.Errorf("metric %s: constructor is nil", key)
	}
	r.index[key] = len(r.defs)
	r.defs = append(r.defs, d)
	return nil
}

// Default returns a registry holding every built-in metric.
func Default() (*Registry, error) {
	return NewRegistry(Builtin()...)
}

// All returns the definitions in registration order.
func (r *Registry) All() []Definition {
	return slices.Clone(r.defs)
}

// Get looks a definition up by normalized name.
func (r *Registry) Get(normalized string) (Definition, bool) {
	i, ok := r.index[normalized]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Len returns the number of registered metrics.
func (r *Registry) Len() int { return len(r.defs) }
