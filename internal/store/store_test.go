package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-chain/internal/store"
)

func TestOrderedKeepsFirstInsertionOrder(t *testing.T) {
	t.Parallel()

	s := store.NewOrdered[string, int]()
	s.Set("b", 1)
	s.Set("a", 2)
	s.Set("b", 3)
	s.Set("c", 4)

	assert.Equal(t, []string{"b", "a", "c"}, s.Keys())
	assert.Equal(t, 3, s.Len())
	got, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, 3, got)
	_, ok = s.Get("z")
	assert.False(t, ok)
}

func TestOrderedRangeStops(t *testing.T) {
	t.Parallel()

	s := store.NewOrdered[int, string]()
	for i, v := range []string{"x", "y", "z"} {
		s.Set(i, v)
	}

	var seen []string
	s.Range(func(_ int, v string) bool {
		seen = append(seen, v)

		return v != "y"
	})
	assert.Equal(t, []string{"x", "y"}, seen)
}

func TestOrderedClone(t *testing.T) {
	t.Parallel()

	s := store.NewOrdered[int, int]()
	s.Set(1, 10)
	cp := s.Clone(nil)
	cp.Set(1, 20)
	cp.Set(2, 30)

	got, _ := s.Get(1)
	assert.Equal(t, 10, got)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []int{1, 2}, cp.Keys())
}

func TestOrderedCloneValues(t *testing.T) {
	t.Parallel()

	s := store.NewOrdered[string, []int]()
	s.Set("a", []int{1, 2})
	cp := s.Clone(func(v []int) []int { return append([]int(nil), v...) })

	got, ok := cp.Get("a")
	require.True(t, ok)
	got[0] = 100

	orig, _ := s.Get("a")
	assert.Equal(t, []int{1, 2}, orig)
}
