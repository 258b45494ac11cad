package spatialid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleIdParentRisesOneZoomLevel(t *testing.T) {
	id, err := NewSingleId(5, 3, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, "5/3/2/10", id.String())

	parent, err := id.Parent(1)
	require.NoError(t, err)
	assert.Equal(t, SingleId{Z: 4, F: 1, X: 1, Y: 5}, parent)
}

func TestSingleIdBoundsRejected(t *testing.T) {
	_, err := NewSingleId(2, 0, 10, 0)
	assert.Error(t, err)
}

func TestSingleIdParseRoundTrip(t *testing.T) {
	id, err := NewSingleId(5, -3, 2, 10)
	require.NoError(t, err)
	parsed, err := ParseSingleId(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestSingleIdChildrenCount(t *testing.T) {
	id, err := NewSingleId(2, 1, 1, 1)
	require.NoError(t, err)
	children, err := id.Children(1)
	require.NoError(t, err)
	assert.Len(t, children, 8)
	for _, c := range children {
		p, err := c.Parent(1)
		require.NoError(t, err)
		assert.Equal(t, id, p)
	}
}

func TestRangeIdXWraparoundSplitsAtDateLine(t *testing.T) {
	r, err := NewRangeId(4, [2]int64{0, 0}, [2]uint64{15, 0}, [2]uint64{0, 0})
	require.NoError(t, err)
	singles := r.SingleIds()
	assert.Len(t, singles, 2)
	xs := map[uint32]bool{}
	for _, s := range singles {
		xs[s.X] = true
	}
	assert.True(t, xs[15])
	assert.True(t, xs[0])
}

func TestRangeIdFSortsAscending(t *testing.T) {
	r, err := NewRangeId(3, [2]int64{2, -2}, [2]uint64{0, 0}, [2]uint64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, [2]int64{-2, 2}, r.F)
}

func TestRangeIdFlexIdsCoverSingleIds(t *testing.T) {
	r, err := NewRangeId(3, [2]int64{-1, 1}, [2]uint64{1, 5}, [2]uint64{0, 2})
	require.NoError(t, err)
	flexes, err := r.FlexIds()
	require.NoError(t, err)
	singles := r.SingleIds()
	for _, s := range singles {
		sf, err := s.FlexId()
		require.NoError(t, err)
		found := false
		for _, fx := range flexes {
			// SingleId carries no T axis, so only F/X/Y need to match;
			// the RangeId's T cover applies uniformly across all its
			// constituent singles.
			if fx[0].Contains(sf[0]) && fx[1].Contains(sf[1]) && fx[2].Contains(sf[2]) {
				found = true
				break
			}
		}
		assert.True(t, found, "single %s not covered by any flex id", s)
	}
}
