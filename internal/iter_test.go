package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcat2(t *testing.T) {
	assert := assert.New(t)

	a := Map2([]string{"x", "y"}, func(s string) string { return s }, func(s string) int { return len(s) })
	b := maps.All(map[string]int{"zz": 2})

	var keys []string
	var values []int
	for k, v := range Concat2(a, b) {
		keys = append(keys, k)
		values = append(values, v)
	}

	assert.Equal([]string{"x", "y", "zz"}, keys)
	assert.Equal([]int{1, 1, 2}, values)
}

func TestConcat2Stop(t *testing.T) {
	assert := assert.New(t)

	a := Map2([]int{1, 2, 3}, func(n int) int { return n }, func(n int) int { return n * n })

	var seen []int
	for k := range Concat2(a, a) {
		seen = append(seen, k)
		if len(seen) == 4 {
			break
		}
	}

	assert.Equal([]int{1, 2, 3, 1}, seen)
	assert.True(slices.IsSorted(seen[:3]))
}
