package collection

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/google/btree"

	"github.com/arx-os/s4d/internal/segment"
)

// segItem is one entry of an axis index's ordered tree: a Segment key and
// the compressed bitset of ranks carrying that segment on this axis.
type segItem struct {
	Seg    segment.Segment
	Bitmap *roaring64.Bitmap
}

func segLess(a, b segItem) bool {
	return a.Seg.Less(b.Seg)
}

// axisIndex is a Segment → bitset(rank) map ordered by Segment byte value,
// so that range queries (used by the scanner's child lookup) can walk a
// half-open interval directly instead of scanning every key.
type axisIndex struct {
	tree *btree.BTreeG[segItem]
}

func newAxisIndex() *axisIndex {
	return &axisIndex{tree: btree.NewG(32, segLess)}
}

func (ai *axisIndex) bitmapFor(seg segment.Segment) (*roaring64.Bitmap, bool) {
	item, ok := ai.tree.Get(segItem{Seg: seg})
	if !ok {
		return nil, false
	}
	return item.Bitmap, true
}

func (ai *axisIndex) add(seg segment.Segment, rank uint64) {
	if item, ok := ai.tree.Get(segItem{Seg: seg}); ok {
		item.Bitmap.Add(rank)
		return
	}
	bm := roaring64.New()
	bm.Add(rank)
	ai.tree.ReplaceOrInsert(segItem{Seg: seg, Bitmap: bm})
}

// remove deletes rank from seg's bitmap, dropping the slot entirely once
// it's empty.
func (ai *axisIndex) remove(seg segment.Segment, rank uint64) {
	item, ok := ai.tree.Get(segItem{Seg: seg})
	if !ok {
		return
	}
	item.Bitmap.Remove(rank)
	if item.Bitmap.IsEmpty() {
		ai.tree.Delete(segItem{Seg: seg})
	}
}

// unionSelfAndParents unions the bitsets of seg and every one of its
// ancestors that exists in the index.
func (ai *axisIndex) unionSelfAndParents(seg segment.Segment) *roaring64.Bitmap {
	out := roaring64.New()
	for _, anc := range seg.SelfAndParents() {
		if bm, ok := ai.bitmapFor(anc); ok {
			out.Or(bm)
		}
	}
	return out
}

// unionDescendants unions the bitsets of every indexed segment that falls
// in [seg, seg.DescendantRangeEnd()): seg itself and its full descendant
// subtree.
func (ai *axisIndex) unionDescendants(seg segment.Segment) *roaring64.Bitmap {
	out := roaring64.New()
	end, ok := seg.DescendantRangeEnd()
	visit := func(item segItem) bool {
		out.Or(item.Bitmap)
		return true
	}
	if !ok {
		ai.tree.AscendGreaterOrEqual(segItem{Seg: seg}, visit)
		return out
	}
	ai.tree.AscendRange(segItem{Seg: seg}, segItem{Seg: end}, visit)
	return out
}
