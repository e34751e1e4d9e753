package uritrie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrie_LongestMatch(t *testing.T) {
	trie := New()
	require.NoError(t, trie.Insert("http://example.org/a", 1))
	require.NoError(t, trie.Insert("http://example.org/abc/", 2))

	handle, matchLen, ok := trie.LongestMatch("http://example.org/abc/123")
	require.True(t, ok)
	assert.Equal(t, 2, handle)
	assert.Equal(t, len("http://example.org/abc/"), matchLen)

	handle, matchLen, ok = trie.LongestMatch("http://example.org/a999")
	require.True(t, ok)
	assert.Equal(t, 1, handle)
	assert.Equal(t, len("http://example.org/a"), matchLen)
}

func TestTrie_NoMatch(t *testing.T) {
	trie := New()
	require.NoError(t, trie.Insert("http://example.org/a", 1))

	_, _, ok := trie.LongestMatch("http://other.org/a")
	assert.False(t, ok)
}

func TestTrie_DuplicateExactKey(t *testing.T) {
	trie := New()
	require.NoError(t, trie.Insert("http://example.org/a", 1))

	err := trie.Insert("http://example.org/a", 2)
	assert.ErrorIs(t, err, ErrDuplicateURIPrefix)
}

func TestTrie_ReinsertSameHandleIsNoop(t *testing.T) {
	trie := New()
	require.NoError(t, trie.Insert("http://example.org/a", 1))
	assert.NoError(t, trie.Insert("http://example.org/a", 1))
}

func TestTrie_ExactMatchEmptyResidual(t *testing.T) {
	trie := New()
	require.NoError(t, trie.Insert("http://example.org/a", 1))

	handle, matchLen, ok := trie.LongestMatch("http://example.org/a")
	require.True(t, ok)
	assert.Equal(t, 1, handle)
	assert.Equal(t, len("http://example.org/a"), matchLen)
}

func TestTrie_RootTerminal(t *testing.T) {
	trie := New()
	require.NoError(t, trie.Insert("", 1))

	handle, matchLen, ok := trie.LongestMatch("anything")
	require.True(t, ok)
	assert.Equal(t, 1, handle)
	assert.Equal(t, 0, matchLen)
}
