// Package jsongen generates synthetic nested JSON documents with a
// controllable key-frequency profile, for exercising the speculation
// strategy's document-statistics pass and for scenario/property tests.
// Retargeted from the teacher's hargen package (dictionary.go,
// json_generator.go), which built random HAR-entry bodies the same way.
package jsongen

import (
	"math/rand"
)

var defaultWords = []string{
	"id", "name", "value", "type", "status", "count", "items", "children",
	"metadata", "tags", "created", "updated", "owner", "label", "data",
	"result", "payload", "entry", "record", "node", "parent", "index",
}

// Dictionary is a small word list used to synthesize object keys and
// string values.
type Dictionary struct {
	words []string
}

// NewDictionary builds a Dictionary from words, falling back to a small
// built-in word list if words is empty.
func NewDictionary(words []string) *Dictionary {
	if len(words) == 0 {
		words = defaultWords
	}
	return &Dictionary{words: words}
}

// RandomWord returns a random dictionary word.
func (d *Dictionary) RandomWord(rng *rand.Rand) string {
	return d.words[rng.Intn(len(d.words))]
}
