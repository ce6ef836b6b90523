package ds

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrie(t *testing.T) {
	trie := NewTrie[int]()
	trie.Register([]string{"#", "N", "/", "A"}, 42)
	trie.Register([]string{"#", "N", "U", "M", "!"}, 36)
	trie.Register([]string{"#", "N", "U", "L", "L", "!"}, 0)

	v, ok := trie.Get([]string{"#", "N", "/", "A"})
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = trie.Get([]string{"#", "N"})
	assert.False(t, ok)

	_, ok = trie.Get([]string{"#", "X"})
	assert.False(t, ok)
}

func TestTrieLongest(t *testing.T) {
	trie := NewTrie[string]()
	trie.Register([]string{"a"}, "a")
	trie.Register([]string{"a", "b", "c"}, "abc")

	tests := []struct {
		Input string
		Want  string
		Size  int
	}{
		{Input: "abcd", Want: "abc", Size: 3},
		{Input: "abx", Want: "a", Size: 1},
		{Input: "a", Want: "a", Size: 1},
		{Input: "x", Want: "", Size: 0},
		{Input: "", Want: "", Size: 0},
	}
	for _, c := range tests {
		got, size := trie.Longest(strings.Split(c.Input, ""))
		assert.Equal(t, c.Want, got, c.Input)
		assert.Equal(t, c.Size, size, c.Input)
	}
}

func TestTrieWalk(t *testing.T) {
	trie := NewTrie[int]()
	trie.Register([]string{"x", "a"}, 1)
	trie.Register([]string{"x", "b"}, 2)
	trie.Register([]string{"y"}, 3)

	var got []int
	trie.Walk([]string{"x"}, func(_ []string, v int) {
		got = append(got, v)
	})
	slices.Sort(got)
	assert.Equal(t, []int{1, 2}, got)

	got = got[:0]
	trie.Walk([]string{"z"}, func(_ []string, v int) {
		got = append(got, v)
	})
	assert.Empty(t, got)
}
