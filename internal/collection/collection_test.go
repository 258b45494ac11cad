package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arx-os/s4d/internal/flexid"
	"github.com/arx-os/s4d/internal/segment"
)

func mustXY(t *testing.T, z int, v uint64) segment.Segment {
	t.Helper()
	s, err := segment.EncodeXY(z, v)
	require.NoError(t, err)
	return s
}

func rootFlex(t *testing.T) flexid.FlexId {
	t.Helper()
	z := mustXY(t, 0, 0)
	return flexid.New(z, z, z, z)
}

func TestInsertGetDelete(t *testing.T) {
	s := New[struct{}]()
	id := rootFlex(t)
	rank := s.Insert(id, struct{}{})
	e, ok := s.Get(rank)
	require.True(t, ok)
	assert.Equal(t, id, e.Flex)
	assert.Equal(t, 1, s.Len())

	s.Delete(rank)
	_, ok = s.Get(rank)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestRankRecycling(t *testing.T) {
	s := New[struct{}]()
	id := rootFlex(t)
	r1 := s.Insert(id, struct{}{})
	s.Delete(r1)
	r2 := s.Insert(id, struct{}{})
	assert.Equal(t, r1, r2, "freed rank should be recycled")
}

func TestScanParentChildPartial(t *testing.T) {
	s := New[struct{}]()

	parentF := mustXY(t, 0, 0)
	parentX := mustXY(t, 1, 0)
	parentY := mustXY(t, 1, 0)
	parentT := mustXY(t, 0, 0)
	parent := flexid.New(parentF, parentX, parentY, parentT)
	parentRank := s.Insert(parent, struct{}{})

	// a child of parent along X,Y at z=2
	childX := mustXY(t, 2, 1) // child of X@z1=0
	childY := mustXY(t, 2, 1)
	child := flexid.New(parentF, childX, childY, parentT)

	// an unrelated disjoint entry
	disjointX := mustXY(t, 1, 1)
	disjoint := flexid.New(parentF, disjointX, parentY, parentT)
	disjointRank := s.Insert(disjoint, struct{}{})
	_ = disjointRank

	parents, children, partial, related := s.Scan(child)
	assert.True(t, parents.Contains(parentRank))
	assert.Equal(t, uint64(1), parents.GetCardinality())
	assert.True(t, children.IsEmpty())
	assert.True(t, partial.IsEmpty())
	assert.True(t, related.Contains(parentRank))
	assert.False(t, related.Contains(disjointRank))
}

func TestScanChildrenSet(t *testing.T) {
	s := New[struct{}]()
	candF := mustXY(t, 0, 0)
	candX := mustXY(t, 1, 0)
	candY := mustXY(t, 1, 0)
	candT := mustXY(t, 0, 0)
	candidate := flexid.New(candF, candX, candY, candT)

	childX := mustXY(t, 2, 1)
	childY := mustXY(t, 2, 1)
	child := flexid.New(candF, childX, childY, candT)
	childRank := s.Insert(child, struct{}{})

	parents, children, partial, related := s.Scan(candidate)
	assert.True(t, parents.IsEmpty())
	assert.True(t, children.Contains(childRank))
	assert.True(t, partial.IsEmpty())
	assert.True(t, related.Contains(childRank))
}
