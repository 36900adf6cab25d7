package jsongen

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countKeyOccurrences(key string, v interface{}) int {
	n := 0
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			if k == key {
				n++
			}
			n += countKeyOccurrences(key, val)
		}
	case []interface{}:
		for _, e := range t {
			n += countKeyOccurrences(key, e)
		}
	}
	return n
}

func TestGenerateDocumentProducesValidJSONArray(t *testing.T) {
	dict := NewDictionary(nil)
	g := New(dict, Options{MaxDepth: 3, MaxNodes: 4}, rand.New(rand.NewSource(1)))

	doc := g.GenerateDocument(7)

	var out []interface{}
	require.NoError(t, json.Unmarshal([]byte(doc), &out))
	assert.Len(t, out, 7)
}

func TestGenerateDocumentInjectsExactAnchorCount(t *testing.T) {
	dict := NewDictionary(nil)
	opts := Options{MaxDepth: 3, MaxNodes: 4, AnchorKey: "anchor", AnchorLevel: 0, AnchorCount: 12, AnchorValue: "v"}
	g := New(dict, opts, rand.New(rand.NewSource(42)))

	doc := g.GenerateDocument(12)

	var out []interface{}
	require.NoError(t, json.Unmarshal([]byte(doc), &out))
	assert.Equal(t, 12, countKeyOccurrences("anchor", out))
}

func TestGenerateDocumentAnchorAtDeeperLevelOnlyAppearsThere(t *testing.T) {
	dict := NewDictionary(nil)
	opts := Options{MaxDepth: 3, MaxNodes: 4, AnchorKey: "anchor", AnchorLevel: 1, AnchorCount: 4, AnchorValue: "v"}
	g := New(dict, opts, rand.New(rand.NewSource(7)))

	doc := g.GenerateDocument(4)

	var out []interface{}
	require.NoError(t, json.Unmarshal([]byte(doc), &out))
	for _, root := range out {
		m, ok := root.(map[string]interface{})
		require.True(t, ok)
		_, present := m["anchor"]
		assert.False(t, present, "anchor at level 1 must not appear on the root object itself")
	}
	assert.Equal(t, 4, countKeyOccurrences("anchor", out), "the anchor budget must still be fully spent at the deeper level")
}

func TestNewAppliesDepthAndNodeDefaults(t *testing.T) {
	g := New(NewDictionary(nil), Options{}, rand.New(rand.NewSource(1)))
	assert.Equal(t, 4, g.opts.MaxDepth)
	assert.Equal(t, 6, g.opts.MaxNodes)
}

func TestDictionaryFallsBackToDefaultWords(t *testing.T) {
	d := NewDictionary(nil)
	word := d.RandomWord(rand.New(rand.NewSource(1)))
	assert.Contains(t, defaultWords, word)
}

func TestDictionaryUsesProvidedWords(t *testing.T) {
	d := NewDictionary([]string{"only"})
	for i := 0; i < 5; i++ {
		assert.Equal(t, "only", d.RandomWord(rand.New(rand.NewSource(int64(i)))))
	}
}
