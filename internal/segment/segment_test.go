package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeXYRoundTrip(t *testing.T) {
	for z := 0; z <= 10; z++ {
		max := XYMax(z)
		for _, v := range []uint64{0, max, max / 2} {
			seg, err := EncodeXY(z, v)
			require.NoError(t, err)
			gotZ, gotV := DecodeXY(seg)
			assert.Equal(t, z, gotZ)
			assert.Equal(t, v, gotV)
		}
	}
}

func TestEncodeDecodeFRoundTrip(t *testing.T) {
	for z := 0; z <= 10; z++ {
		for f := FMin(z); f <= FMax(z); f++ {
			seg, err := EncodeF(z, f)
			require.NoError(t, err)
			gotZ, gotF := DecodeF(seg)
			assert.Equal(t, z, gotZ)
			assert.Equal(t, f, gotF)
		}
	}
}

func TestEncodeXYOutOfRange(t *testing.T) {
	_, err := EncodeXY(2, XYMax(2)+1)
	assert.Error(t, err)
}

func TestEncodeFOutOfRange(t *testing.T) {
	_, err := EncodeF(2, FMin(2)-1)
	assert.Error(t, err)
	_, err = EncodeF(2, FMax(2)+1)
	assert.Error(t, err)
}

func TestRelationEqual(t *testing.T) {
	a, _ := EncodeXY(5, 17)
	b, _ := EncodeXY(5, 17)
	assert.Equal(t, Equal, a.Relation(b))
}

func TestRelationAncestorDescendant(t *testing.T) {
	parent, _ := EncodeXY(2, 1)
	child, _ := EncodeXY(3, 2) // binary 10 -> child 0 of parent 1 (01->010)
	rel := parent.Relation(child)
	assert.Equal(t, Ancestor, rel)
	assert.Equal(t, Descendant, child.Relation(parent))
}

func TestRelationDisjoint(t *testing.T) {
	a, _ := EncodeXY(2, 0)
	b, _ := EncodeXY(2, 3)
	assert.Equal(t, Disjoint, a.Relation(b))
}

func TestRelationDual(t *testing.T) {
	segs := make([]Segment, 0)
	for v := uint64(0); v < 8; v++ {
		s, _ := EncodeXY(3, v)
		segs = append(segs, s)
	}
	for _, a := range segs {
		for _, b := range segs {
			switch a.Relation(b) {
			case Equal:
				assert.Equal(t, Equal, b.Relation(a))
			case Ancestor:
				assert.Equal(t, Descendant, b.Relation(a))
			case Descendant:
				assert.Equal(t, Ancestor, b.Relation(a))
			case Disjoint:
				assert.Equal(t, Disjoint, b.Relation(a))
			}
		}
	}
}

func TestSiblingRootError(t *testing.T) {
	root, _ := EncodeXY(0, 0)
	_, err := root.Sibling()
	assert.Error(t, err)
}

func TestSiblingParentRoundTrip(t *testing.T) {
	seg, _ := EncodeXY(4, 9)
	sib, err := seg.Sibling()
	require.NoError(t, err)
	assert.NotEqual(t, seg, sib)
	sib2, err := sib.Sibling()
	require.NoError(t, err)
	assert.Equal(t, seg, sib2)

	p1, ok := seg.Parent()
	require.True(t, ok)
	p2, ok := sib.Parent()
	require.True(t, ok)
	assert.Equal(t, p1, p2)
}

func TestParentOfRoot(t *testing.T) {
	root, _ := EncodeXY(0, 0)
	_, ok := root.Parent()
	assert.False(t, ok)
}

func TestByteOrderIsPrefixOrder(t *testing.T) {
	a, _ := EncodeXY(3, 2)
	b, _ := EncodeXY(3, 5)
	assert.True(t, a.Less(b))
}

func TestDescendantRangeEndCoversChildren(t *testing.T) {
	parent, _ := EncodeXY(2, 1)
	end, ok := parent.DescendantRangeEnd()
	require.True(t, ok)
	assert.True(t, parent.Less(end))
	for v := uint64(4); v <= 7; v++ { // descendants of index 1 at z=4: 4..7
		child, _ := EncodeXY(4, v)
		assert.True(t, parent.Contains(child))
		assert.True(t, child.Less(end), "child %d should fall before range end", v)
	}
	outside, _ := EncodeXY(4, 8) // first z=4 descendant of the next index, 2
	assert.False(t, outside.Less(end))
}

func TestSplitXYMinimalCover(t *testing.T) {
	segs, err := SplitXY(4, 3, 11)
	require.NoError(t, err)
	require.NotEmpty(t, segs)
	covered := map[uint64]bool{}
	for _, seg := range segs {
		z, v := DecodeXY(seg)
		width := uint64(1) << uint(4-z)
		for k := uint64(0); k < width; k++ {
			covered[v*width+k] = true
		}
	}
	for v := uint64(3); v <= 11; v++ {
		assert.True(t, covered[v], "missing %d", v)
	}
	assert.Len(t, covered, 9)
}

func TestSplitFCrossZero(t *testing.T) {
	segs, err := SplitF(3, -2, 3)
	require.NoError(t, err)
	require.NotEmpty(t, segs)
	covered := map[int64]bool{}
	for _, seg := range segs {
		z, f := DecodeF(seg)
		width := int64(1) << uint(3-z)
		for k := int64(0); k < width; k++ {
			covered[f*width+k] = true
		}
	}
	for f := int64(-2); f <= 3; f++ {
		assert.True(t, covered[f], "missing %d", f)
	}
}

func TestDifferenceAncestorCase(t *testing.T) {
	a, _ := EncodeXY(1, 0) // covers 0,1 at z=2
	b, _ := EncodeXY(2, 1) // child index 1
	frags := a.Difference(b)
	// a \ b should cover {0} at z=2.
	covered := map[uint64]bool{}
	for _, seg := range frags {
		z, v := DecodeXY(seg)
		width := uint64(1) << uint(2-z)
		for k := uint64(0); k < width; k++ {
			covered[v*width+k] = true
		}
	}
	assert.True(t, covered[0])
	assert.False(t, covered[1])
}

func TestDifferenceDisjoint(t *testing.T) {
	a, _ := EncodeXY(2, 0)
	b, _ := EncodeXY(2, 3)
	frags := a.Difference(b)
	require.Len(t, frags, 1)
	assert.Equal(t, a, frags[0])
}

func TestFromBytesRoundTrip(t *testing.T) {
	seg, _ := EncodeXY(5, 13)
	b := seg.Bytes()
	got, err := FromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, seg, got)
}

func TestFromBytesWrongLength(t *testing.T) {
	_, err := FromBytes([]byte{1, 2, 3})
	assert.Error(t, err)
}
