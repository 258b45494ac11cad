package setmap

import (
	"github.com/arx-os/s4d/internal/spatialid"
)

// MapEntry pairs a flattened SingleId with the value covering it.
type MapEntry[V any] struct {
	ID    spatialid.SingleId
	Value V
}

// Map is the value-carrying spatiotemporal container: sibling-join only
// merges adjacent entries carrying equal values. Safe
// for concurrent use.
type Map[V comparable] struct {
	eng *engine[V]
}

// NewMap returns an empty Map.
func NewMap[V comparable]() *Map[V] {
	return &Map[V]{eng: newEngine[V](func(a, b V) bool { return a == b })}
}

// Len reports the number of normalized entries currently stored.
func (m *Map[V]) Len() int { return m.eng.Len() }

// Insert associates id with value, normalizing against existing content.
// Where id overlaps an existing entry with a different value, id's value
// wins over the overlapping region.
func (m *Map[V]) Insert(id idSource, value V) error {
	ids, err := id.FlexIds()
	if err != nil {
		return err
	}
	for _, f := range ids {
		if err := m.eng.Insert(f, value); err != nil {
			return err
		}
	}
	return nil
}

// Remove clears id from the map and returns the removed sub-region (with
// its prior values) as a new Map.
func (m *Map[V]) Remove(id idSource) (*Map[V], error) {
	ids, err := id.FlexIds()
	if err != nil {
		return nil, err
	}
	removed := NewMap[V]()
	for _, f := range ids {
		if err := m.eng.Remove(f, removed.eng); err != nil {
			return nil, err
		}
	}
	return removed, nil
}

// Get returns the subset of m intersecting id, with values preserved.
func (m *Map[V]) Get(id idSource) (*Map[V], error) {
	ids, err := id.FlexIds()
	if err != nil {
		return nil, err
	}
	out := NewMap[V]()
	for _, f := range ids {
		if err := m.eng.Get(f, out.eng); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Union returns a new Map holding every region in m or other; overlapping
// regions take other's value.
func (m *Map[V]) Union(other *Map[V]) (*Map[V], error) {
	eng, err := union(m.eng, other.eng, m.eng.equal)
	if err != nil {
		return nil, err
	}
	return &Map[V]{eng: eng}, nil
}

// Intersection returns a new Map holding the overlap of m and other, with
// m's values.
func (m *Map[V]) Intersection(other *Map[V]) (*Map[V], error) {
	eng, err := intersection(m.eng, other.eng, m.eng.equal)
	if err != nil {
		return nil, err
	}
	return &Map[V]{eng: eng}, nil
}

// Difference returns a new Map holding m minus other's regions.
func (m *Map[V]) Difference(other *Map[V]) (*Map[V], error) {
	eng, err := difference(m.eng, other.eng, m.eng.equal)
	if err != nil {
		return nil, err
	}
	return &Map[V]{eng: eng}, nil
}

// Flatten expands m to (SingleId, value) pairs at the deepest zoom actually
// used.
func (m *Map[V]) Flatten() ([]MapEntry[V], error) {
	return flattenValues(m.eng)
}

// FlattenDeep expands m extra levels finer than its deepest stored zoom.
func (m *Map[V]) FlattenDeep(extra int) ([]MapEntry[V], error) {
	return flattenDeepValues(m.eng, extra)
}
