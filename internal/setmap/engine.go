// Package setmap implements the normalizing Set/Map engine on top of
// internal/collection: insert with parent/child/partial-overlap resolution
// and sibling-join compression, remove, get, and the set algebra.
package setmap

import (
	"sync"

	"github.com/arx-os/s4d/internal/collection"
	apperrors "github.com/arx-os/s4d/pkg/errors"
	"github.com/arx-os/s4d/internal/flexid"
)

// maxPartialDepth bounds the recursion in resolvePartial: each axis can
// contribute at most one cylindrical-difference fragment needing further
// splitting, and a FlexId has NumAxes axes, so normal operation never nears
// this bound. It exists purely as a runaway guard.
const maxPartialDepth = 64

// engine is the normalizing core shared by Set and Map[V]: a collection.Store
// guarded by a RWMutex, plus the value-equality test sibling-join needs to
// decide whether two adjacent entries may merge.
type engine[V any] struct {
	mu    sync.RWMutex
	store *collection.Store[V]
	equal func(a, b V) bool
}

func newEngine[V any](equal func(a, b V) bool) *engine[V] {
	return &engine[V]{
		store: collection.New[V](),
		equal: equal,
	}
}

// Len reports the number of normalized entries currently stored.
func (e *engine[V]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Len()
}

// snapshot returns every (FlexId, value) pair currently stored. Used by
// Union/Flatten, which need to enumerate a whole engine's contents.
func (e *engine[V]) snapshot() []collection.Entry[V] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ranks := e.store.Ranks()
	out := make([]collection.Entry[V], 0, len(ranks))
	for _, r := range ranks {
		entry, ok := e.store.Get(r)
		if ok {
			out = append(out, entry)
		}
	}
	return out
}

// Insert normalizes id/value into the store: skip if an existing entry with
// an equal value already covers id (a covering entry with a different value
// is split around id instead); delete any entries id subsumes;
// recursively resolve partial overlaps by differencing and reinserting the
// non-overlapping remainder; finally sibling-join compress upward.
func (e *engine[V]) Insert(id flexid.FlexId, value V) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.insertLocked(id, value, 0)
}

func (e *engine[V]) insertLocked(id flexid.FlexId, value V, depth int) error {
	if depth > maxPartialDepth {
		return apperrors.New(apperrors.CodeInvariantViolation, "partial-overlap resolution exceeded maximum recursion depth")
	}

	parents, children, partial, _ := e.store.Scan(id)
	if !parents.IsEmpty() {
		// A covering entry with an equal value already holds id. One with a
		// different value is split so that id's value wins over id's region.
		rank := parents.Iterator().Next()
		cover, ok := e.store.Get(rank)
		if !ok || e.equal(cover.Value, value) {
			return nil
		}
		e.store.Delete(rank)
		for _, frag := range cover.Flex.Difference(id) {
			if err := e.insertLocked(frag, cover.Value, depth+1); err != nil {
				return err
			}
		}
		return e.insertLocked(id, value, depth+1)
	}

	childIt := children.Iterator()
	for childIt.HasNext() {
		e.store.Delete(childIt.Next())
	}

	partialIt := partial.Iterator()
	var overlapping []collection.Entry[V]
	for partialIt.HasNext() {
		rank := partialIt.Next()
		entry, ok := e.store.Get(rank)
		if !ok {
			continue
		}
		overlapping = append(overlapping, entry)
		e.store.Delete(rank)
	}
	for _, entry := range overlapping {
		frags := entry.Flex.Difference(id)
		for _, frag := range frags {
			if err := e.insertLocked(frag, entry.Value, depth+1); err != nil {
				return err
			}
		}
	}

	cur := e.compress(id, value)
	e.store.Insert(cur, value)
	return nil
}

// compress repeatedly looks for an existing sibling of cur (on any axis)
// carrying an equal value, merges with it by rising to the shared parent on
// that axis, and retries until no further merge applies. Found siblings are
// deleted from the store; the final, possibly-risen FlexId is returned for
// the caller to insert.
func (e *engine[V]) compress(cur flexid.FlexId, value V) flexid.FlexId {
	for {
		merged := false
		for axis := 0; axis < flexid.NumAxes; axis++ {
			sib, err := cur.SiblingAt(axis)
			if err != nil {
				continue
			}
			rank, sibVal, found := e.findExact(sib)
			if !found || !e.equal(sibVal, value) {
				continue
			}
			parent, ok := cur.ParentAt(axis)
			if !ok {
				continue
			}
			e.store.Delete(rank)
			cur = parent
			merged = true
			break
		}
		if !merged {
			return cur
		}
	}
}

// findExact reports whether id is present as an exact entry (not merely
// covered), returning its rank and value.
func (e *engine[V]) findExact(id flexid.FlexId) (rank uint64, value V, found bool) {
	parents, _, _, _ := e.store.Scan(id)
	it := parents.Iterator()
	for it.HasNext() {
		r := it.Next()
		entry, ok := e.store.Get(r)
		if ok && entry.Flex == id {
			return r, entry.Value, true
		}
	}
	var zero V
	return 0, zero, false
}

// Remove clears id from the store, splitting any partially-overlapping
// entries and reinserting their non-overlapping remainder, and reports the
// removed sub-region by inserting it into dst. dst must
// not be e.
func (e *engine[V]) Remove(id flexid.FlexId, dst *engine[V]) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if dst != nil {
		dst.mu.Lock()
		defer dst.mu.Unlock()
	}

	_, _, _, related := e.store.Scan(id)
	it := related.Iterator()
	var hits []collection.Entry[V]
	for it.HasNext() {
		rank := it.Next()
		entry, ok := e.store.Get(rank)
		if !ok {
			continue
		}
		hits = append(hits, entry)
		e.store.Delete(rank)
	}
	for _, entry := range hits {
		if dst != nil {
			if inter, ok := entry.Flex.Intersect(id); ok {
				if err := dst.insertLocked(inter, entry.Value, 0); err != nil {
					return err
				}
			}
		}
		for _, frag := range entry.Flex.Difference(id) {
			if err := e.insertLocked(frag, entry.Value, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

// Get collects every stored region intersecting id into dst, normalizing
// as it inserts.
func (e *engine[V]) Get(id flexid.FlexId, dst *engine[V]) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	dst.mu.Lock()
	defer dst.mu.Unlock()

	_, _, _, related := e.store.Scan(id)
	it := related.Iterator()
	for it.HasNext() {
		rank := it.Next()
		entry, ok := e.store.Get(rank)
		if !ok {
			continue
		}
		inter, ok := entry.Flex.Intersect(id)
		if !ok {
			continue
		}
		if err := dst.insertLocked(inter, entry.Value, 0); err != nil {
			return err
		}
	}
	return nil
}
