// Package flexid implements the 4-tuple segment algebra: relation,
// intersection, containment, and cylindrical difference over FlexIds, the
// finest-grained identifier the core manipulates.
package flexid

import (
	"fmt"

	"github.com/arx-os/s4d/internal/segment"
)

// Axis indexes into a FlexId.
const (
	F = iota
	X
	Y
	T
	NumAxes
)

var axisNames = [NumAxes]string{"F", "X", "Y", "T"}

// FlexId is an axis-ordered 4-tuple of segments: F, X, Y, T. Each axis may
// carry an independent zoom. FlexId is comparable by value.
type FlexId [NumAxes]segment.Segment

// New builds a FlexId from its four axis segments.
func New(f, x, y, t segment.Segment) FlexId {
	return FlexId{f, x, y, t}
}

// Relation is the coarse classification the set engine drives insert/
// remove/get from: Disjoint if any axis diverges, Related otherwise. Finer
// per-axis relations are available via AxisRelations for callers (notably
// Intersect, Contains, Difference) that need them.
type Relation int

const (
	Related Relation = iota
	Disjoint
)

// AxisRelations returns the per-axis segment.Relation between f and other,
// in F, X, Y, T order.
func (f FlexId) AxisRelations(other FlexId) [NumAxes]segment.Relation {
	var out [NumAxes]segment.Relation
	for i := 0; i < NumAxes; i++ {
		out[i] = f[i].Relation(other[i])
	}
	return out
}

// Relation classifies f against other.
func (f FlexId) Relation(other FlexId) Relation {
	for i := 0; i < NumAxes; i++ {
		if f[i].Relation(other[i]) == segment.Disjoint {
			return Disjoint
		}
	}
	return Related
}

// Contains reports whether f equals or is a proper ancestor of other on
// every axis.
func (f FlexId) Contains(other FlexId) bool {
	for i := 0; i < NumAxes; i++ {
		rel := f[i].Relation(other[i])
		if rel != segment.Equal && rel != segment.Ancestor {
			return false
		}
	}
	return true
}

// Intersect computes the component-wise finer of f and other on every
// axis. ok is false if any axis is Disjoint.
func (f FlexId) Intersect(other FlexId) (FlexId, bool) {
	var out FlexId
	for i := 0; i < NumAxes; i++ {
		switch f[i].Relation(other[i]) {
		case segment.Equal, segment.Descendant:
			out[i] = f[i]
		case segment.Ancestor:
			out[i] = other[i]
		default:
			return FlexId{}, false
		}
	}
	return out, true
}

// Difference computes f \ other as a set of disjoint FlexIds whose union
// equals f minus other, via cylindrical subtraction:
// if disjoint, f is unchanged; if other contains f, the result is empty;
// otherwise each axis of the intersection contributes one slab by
// subtracting the intersection's axis segment from f's, holding the
// intersection segments on earlier axes and f's own segments on later axes.
func (f FlexId) Difference(other FlexId) []FlexId {
	if f.Relation(other) == Disjoint {
		return []FlexId{f}
	}
	if other.Contains(f) {
		return nil
	}
	inter, ok := f.Intersect(other)
	if !ok {
		return []FlexId{f}
	}
	var out []FlexId
	for axis := 0; axis < NumAxes; axis++ {
		frags := f[axis].Difference(inter[axis])
		for _, frag := range frags {
			var piece FlexId
			for k := 0; k < axis; k++ {
				piece[k] = inter[k]
			}
			piece[axis] = frag
			for k := axis + 1; k < NumAxes; k++ {
				piece[k] = f[k]
			}
			out = append(out, piece)
		}
	}
	return out
}

// SiblingAt flips axis i's segment to its sibling, leaving the other three
// axes unchanged.
func (f FlexId) SiblingAt(axis int) (FlexId, error) {
	sib, err := f[axis].Sibling()
	if err != nil {
		return FlexId{}, fmt.Errorf("sibling at axis %s: %w", axisNames[axis], err)
	}
	out := f
	out[axis] = sib
	return out, nil
}

// ParentAt replaces axis i's segment with its parent. ok is false if that
// axis is already at its root.
func (f FlexId) ParentAt(axis int) (FlexId, bool) {
	p, ok := f[axis].Parent()
	if !ok {
		return FlexId{}, false
	}
	out := f
	out[axis] = p
	return out, true
}

// Less orders FlexIds lexicographically over F, X, Y, T using each axis's
// byte order. Used for canonical container ordering; carries no
// geometric meaning.
func (f FlexId) Less(other FlexId) bool {
	for i := 0; i < NumAxes; i++ {
		if f[i] == other[i] {
			continue
		}
		return f[i].Less(other[i])
	}
	return false
}

// Bytes concatenates the four axis segments in F, X, Y, T order.
func (f FlexId) Bytes() []byte {
	b := make([]byte, 0, NumAxes*segment.Len)
	for i := 0; i < NumAxes; i++ {
		b = append(b, f[i].Bytes()...)
	}
	return b
}

// EncodeID returns the legacy 3D (F, X, Y) binary form, without T, used as
// a persistence key for spatial-only stores.
func (f FlexId) EncodeID() []byte {
	b := make([]byte, 0, 3*segment.Len)
	b = append(b, f[F].Bytes()...)
	b = append(b, f[X].Bytes()...)
	b = append(b, f[Y].Bytes()...)
	return b
}

func (f FlexId) String() string {
	return fmt.Sprintf("F=%s X=%s Y=%s T=%s", f[F], f[X], f[Y], f[T])
}
