package project

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpartition/jpartition/internal/dfa"
	"github.com/jpartition/jpartition/internal/partition"
)

func keyElem(k string) partition.StackElem {
	return partition.NewKeyElem(0, func(int64) (string, error) { return k, nil })
}

func TestWalkAcceptsOnMatchingPath(t *testing.T) {
	d := dfa.NewStatic([]string{"a", "b"}, true)
	stack := partition.Stack{
		partition.NewBracketElem(partition.OpenBrace, 1),
		keyElem("a"),
		partition.NewBracketElem(partition.OpenBrace, 2),
		keyElem("b"),
	}

	res := Walk(d, stack)
	assert.Equal(t, 2, res.StartLevel)
	assert.Equal(t, 0, res.SkipLevels)
}

func TestWalkCountsSkipLevelsAfterStop(t *testing.T) {
	d := dfa.NewStatic([]string{"a"}, true)
	stack := partition.Stack{
		partition.NewBracketElem(partition.OpenBrace, 1),
		keyElem("a"),
		partition.NewBracketElem(partition.OpenBrace, 2),
		partition.NewBracketElem(partition.OpenBracket, 3),
	}

	res := Walk(d, stack)
	// "a" accepts at index 1; the remaining opens in the tail (index 1
	// onward) are the key itself (not a bracket) plus the trailing '{' '['.
	assert.Equal(t, 2, res.SkipLevels)
}

func TestWalkArrayLevelOnlyCountsWhenDFAAllows(t *testing.T) {
	stackWithArray := partition.Stack{partition.NewBracketElem(partition.OpenBracket, 1)}

	resCounts := Walk(dfa.NewStatic(nil, true), stackWithArray)
	assert.Equal(t, 1, resCounts.StartLevel)

	resSkips := Walk(dfa.NewStatic(nil, false), stackWithArray)
	assert.Equal(t, 0, resSkips.StartLevel)
}

func TestWalkEmptyStack(t *testing.T) {
	res := Walk(dfa.NewStatic(nil, true), nil)
	assert.Equal(t, 0, res.StartLevel)
	assert.Equal(t, 0, res.SkipLevels)
}
