package collection

// RankAllocator hands out monotonically increasing ranks with a bounded
// LIFO recycle pool.
type RankAllocator struct {
	next    uint64
	recycle []uint64
}

// RecycleCap bounds the freed-rank pool; beyond this, a returned rank is
// simply discarded (correctness is preserved, only reuse is lost).
const RecycleCap = 1024

// NewRankAllocator returns a ready-to-use allocator starting at rank 0.
func NewRankAllocator() *RankAllocator {
	return &RankAllocator{}
}

// Fetch pops the recycle stack if non-empty, else returns the next fresh
// rank.
func (a *RankAllocator) Fetch() uint64 {
	if n := len(a.recycle); n > 0 {
		r := a.recycle[n-1]
		a.recycle = a.recycle[:n-1]
		return r
	}
	r := a.next
	a.next++
	return r
}

// Return pushes r onto the recycle stack, discarding it once the pool is
// at capacity.
func (a *RankAllocator) Return(r uint64) {
	if len(a.recycle) < RecycleCap {
		a.recycle = append(a.recycle, r)
	}
}
