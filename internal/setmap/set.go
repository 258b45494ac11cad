package setmap

import (
	"github.com/arx-os/s4d/internal/flexid"
	"github.com/arx-os/s4d/internal/spatialid"
)

// idSource covers both SingleId and RangeId, via the
// FlexIds() ([]flexid.FlexId, error) method both expose.
type idSource interface {
	FlexIds() ([]flexid.FlexId, error)
}

// Set is the unit-valued spatiotemporal container: membership only, no
// payload. Safe for concurrent use.
type Set struct {
	eng *engine[struct{}]
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{eng: newEngine[struct{}](func(struct{}, struct{}) bool { return true })}
}

// Len reports the number of normalized entries currently stored.
func (s *Set) Len() int { return s.eng.Len() }

// Insert adds id to the set, normalizing against existing content.
func (s *Set) Insert(id idSource) error {
	ids, err := id.FlexIds()
	if err != nil {
		return err
	}
	for _, f := range ids {
		if err := s.eng.Insert(f, struct{}{}); err != nil {
			return err
		}
	}
	return nil
}

// Remove clears id from the set and returns the removed sub-region as a new
// Set.
func (s *Set) Remove(id idSource) (*Set, error) {
	ids, err := id.FlexIds()
	if err != nil {
		return nil, err
	}
	removed := NewSet()
	for _, f := range ids {
		if err := s.eng.Remove(f, removed.eng); err != nil {
			return nil, err
		}
	}
	return removed, nil
}

// Get returns the subset of s intersecting id.
func (s *Set) Get(id idSource) (*Set, error) {
	ids, err := id.FlexIds()
	if err != nil {
		return nil, err
	}
	out := NewSet()
	for _, f := range ids {
		if err := s.eng.Get(f, out.eng); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Union returns a new Set holding every region in s or other.
func (s *Set) Union(other *Set) (*Set, error) {
	eng, err := union(s.eng, other.eng, s.eng.equal)
	if err != nil {
		return nil, err
	}
	return &Set{eng: eng}, nil
}

// Intersection returns a new Set holding the overlap of s and other.
func (s *Set) Intersection(other *Set) (*Set, error) {
	eng, err := intersection(s.eng, other.eng, s.eng.equal)
	if err != nil {
		return nil, err
	}
	return &Set{eng: eng}, nil
}

// Difference returns a new Set holding s minus other.
func (s *Set) Difference(other *Set) (*Set, error) {
	eng, err := difference(s.eng, other.eng, s.eng.equal)
	if err != nil {
		return nil, err
	}
	return &Set{eng: eng}, nil
}

// Complement returns the universe (the whole 4D space) minus s.
func (s *Set) Complement() (*Set, error) {
	eng, err := complement(s.eng, s.eng.equal)
	if err != nil {
		return nil, err
	}
	return &Set{eng: eng}, nil
}

// Flatten expands s to SingleIds at the deepest zoom actually used.
func (s *Set) Flatten() ([]spatialid.SingleId, error) {
	return flatten(s.eng)
}

// FlattenDeep expands s to SingleIds extra levels finer than its deepest
// stored zoom.
func (s *Set) FlattenDeep(extra int) ([]spatialid.SingleId, error) {
	return flattenDeep(s.eng, extra)
}
