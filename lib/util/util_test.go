package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	id   int
	name string
}

func itemId(i item) int {
	return i.id
}

func TestSet(t *testing.T) {
	s := NewSet(itemId)
	s.Add(item{1, "one"}, item{2, "two"})
	s.AddFrom([]item{{1, "uno"}})

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(item{1, "anything"}))
	assert.False(t, s.Has(item{3, "three"}))
}

func TestDifferenceBy(t *testing.T) {
	left := []item{{3, "c"}, {1, "a"}, {2, "b"}}
	right := []item{{2, "x"}}
	assert.Equal(t, []item{{3, "c"}, {1, "a"}}, DifferenceBy(left, right, itemId))
	assert.Equal(t, []item{}, DifferenceBy(right, left, itemId))
	assert.Equal(t, []string{"a"}, DifferenceBy([]string{"a", "b"}, []string{"b"}, IdentityId[string]))
}

func TestFilterMap(t *testing.T) {
	evens := Filter([]int{1, 2, 3, 4}, func(i int) bool { return i%2 == 0 })
	assert.Equal(t, []int{2, 4}, evens)
	assert.Equal(t, []string{"1", "2"}, Map([]item{{1, "1"}, {2, "2"}}, func(i item) string { return i.name }))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(3, 1, 5))
	assert.Equal(t, 1, Clamp(-2, 1, 5))
	assert.Equal(t, 5, Clamp(9, 1, 5))
	assert.Equal(t, int8(-1), Clamp(int8(-4), -1, 5))
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr("", ""))
}

func TestQualifiedTable(t *testing.T) {
	assert.Equal(t, "app.events", QualifiedTable{"app", "events"}.String())
}
