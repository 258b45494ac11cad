package intervaltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndInOrderIsSorted(t *testing.T) {
	tr := New[int]()
	tr.Insert(30, 40, 1)
	tr.Insert(10, 20, 2)
	tr.Insert(50, 60, 3)
	tr.Insert(5, 8, 4)
	tr.Insert(15, 25, 5)

	var starts []uint64
	tr.InOrder(func(start, end uint64, value int) {
		starts = append(starts, start)
	})
	assert.Equal(t, []uint64{5, 10, 15, 30, 50}, starts)
	assert.Equal(t, 5, tr.Len())
}

func TestSearchContained(t *testing.T) {
	tr := New[int]()
	tr.Insert(10, 20, 1)
	tr.Insert(12, 18, 2)
	tr.Insert(5, 25, 3)
	tr.Insert(30, 40, 4)

	got := tr.SearchContained(10, 20)
	assert.ElementsMatch(t, []int{1, 2}, got)
}

func TestSearchOverlapping(t *testing.T) {
	tr := New[int]()
	tr.Insert(10, 20, 1)
	tr.Insert(25, 35, 2)
	tr.Insert(100, 200, 3)

	got := tr.SearchOverlapping(15, 30)
	assert.ElementsMatch(t, []int{1, 2}, got)
}

func TestDeleteByValue(t *testing.T) {
	tr := New[int]()
	tr.Insert(10, 20, 1)
	tr.Insert(30, 40, 2)
	tr.Insert(50, 60, 3)

	ok := tr.Delete(2)
	require.True(t, ok)
	assert.Equal(t, 2, tr.Len())

	got := tr.SearchOverlapping(0, 1000)
	assert.ElementsMatch(t, []int{1, 3}, got)

	assert.False(t, tr.Delete(999), "deleting an absent value reports false")
}

func TestBalanceFactorStaysWithinRangeAfterManyInserts(t *testing.T) {
	tr := New[int]()
	for i := 0; i < 100; i++ {
		tr.Insert(uint64(i), uint64(i+1), i)
	}
	count := 0
	tr.InOrder(func(start, end uint64, value int) {
		bf, ok := tr.BalanceFactor(value)
		require.True(t, ok)
		assert.GreaterOrEqual(t, bf, -1)
		assert.LessOrEqual(t, bf, 1)
		count++
	})
	assert.Equal(t, 100, count)
}

func TestBalanceFactorStaysWithinRangeAfterDeletes(t *testing.T) {
	tr := New[int]()
	for i := 0; i < 50; i++ {
		tr.Insert(uint64(i), uint64(i+1), i)
	}
	for i := 0; i < 25; i++ {
		tr.Delete(i)
	}
	tr.InOrder(func(start, end uint64, value int) {
		bf, ok := tr.BalanceFactor(value)
		require.True(t, ok)
		assert.GreaterOrEqual(t, bf, -1)
		assert.LessOrEqual(t, bf, 1)
	})
}
