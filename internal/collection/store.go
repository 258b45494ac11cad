// Package collection implements the collection core: per-dimension
// Segment→bitset(rank) indices, the main rank→(FlexId,value) table, the
// rank allocator, and the scanner that computes parents/children/
// partial-overlap sets in one pass.
package collection

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/arx-os/s4d/internal/flexid"
)

// Entry is one row of the main table.
type Entry[V any] struct {
	Flex  flexid.FlexId
	Value V
}

// Store is the collection core for a single logical owner: four axis
// indices, a main table, and a rank allocator. Store has no locking of
// its own -- the caller assigns reader/writer discipline to the
// caller (internal/setmap wraps a Store in a sync.RWMutex).
type Store[V any] struct {
	axes  [flexid.NumAxes]*axisIndex
	main  map[uint64]Entry[V]
	ranks *RankAllocator
}

// New returns an empty Store.
func New[V any]() *Store[V] {
	s := &Store[V]{
		main:  make(map[uint64]Entry[V]),
		ranks: NewRankAllocator(),
	}
	for i := range s.axes {
		s.axes[i] = newAxisIndex()
	}
	return s
}

// Len returns the number of ranks currently stored.
func (s *Store[V]) Len() int {
	return len(s.main)
}

// Get returns the entry at rank, if present.
func (s *Store[V]) Get(rank uint64) (Entry[V], bool) {
	e, ok := s.main[rank]
	return e, ok
}

// Ranks returns every rank currently stored, in no particular order.
func (s *Store[V]) Ranks() []uint64 {
	out := make([]uint64, 0, len(s.main))
	for r := range s.main {
		out = append(out, r)
	}
	return out
}

// Insert allocates a fresh rank for id/value and adds it to the main
// table and all four axis indices. This is the only primitive that
// creates new ranks; normalization (parent/child/sibling handling) lives
// in internal/setmap, which calls Insert only after deciding a fresh
// entry is needed.
func (s *Store[V]) Insert(id flexid.FlexId, value V) uint64 {
	rank := s.ranks.Fetch()
	s.main[rank] = Entry[V]{Flex: id, Value: value}
	for axis := 0; axis < flexid.NumAxes; axis++ {
		s.axes[axis].add(id[axis], rank)
	}
	return rank
}

// Delete removes rank from the main table and all four axis indices,
// returning the freed rank to the allocator's recycle pool.
func (s *Store[V]) Delete(rank uint64) {
	e, ok := s.main[rank]
	if !ok {
		return
	}
	for axis := 0; axis < flexid.NumAxes; axis++ {
		s.axes[axis].remove(e.Flex[axis], rank)
	}
	delete(s.main, rank)
	s.ranks.Return(rank)
}

// Scan computes the parents, children, and partial-overlap rank sets for
// candidate in one pass: parents are ranks whose
// FlexId equals or properly contains candidate on every axis; children
// are ranks equal to or contained by candidate on every axis (an entry
// equal to candidate is in both parents and children); partial is
// everything else related but neither a parent nor a child. By
// construction, Related == parents | children | partial.
func (s *Store[V]) Scan(candidate flexid.FlexId) (parents, children, partial, related *roaring64.Bitmap) {
	var parentUnion, childUnion, axisRelated [flexid.NumAxes]*roaring64.Bitmap
	for axis := 0; axis < flexid.NumAxes; axis++ {
		parentUnion[axis] = s.axes[axis].unionSelfAndParents(candidate[axis])
		childUnion[axis] = s.axes[axis].unionDescendants(candidate[axis])
		axisRelated[axis] = parentUnion[axis].Clone()
		axisRelated[axis].Or(childUnion[axis])
	}
	parents = intersectAll(parentUnion[:])
	children = intersectAll(childUnion[:])
	related = intersectAll(axisRelated[:])
	partial = related.Clone()
	notParentsOrChildren := parents.Clone()
	notParentsOrChildren.Or(children)
	partial.AndNot(notParentsOrChildren)
	return parents, children, partial, related
}

// intersectAll sorts by cardinality ascending, clones the smallest, and
// ANDs the rest into it, stopping early once the accumulator is empty.
func intersectAll(bitmaps []*roaring64.Bitmap) *roaring64.Bitmap {
	if len(bitmaps) == 0 {
		return roaring64.New()
	}
	ordered := make([]*roaring64.Bitmap, len(bitmaps))
	copy(ordered, bitmaps)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].GetCardinality() < ordered[j-1].GetCardinality(); j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	acc := ordered[0].Clone()
	for _, bm := range ordered[1:] {
		if acc.IsEmpty() {
			break
		}
		acc.And(bm)
	}
	return acc
}
