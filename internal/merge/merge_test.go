package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpartition/jpartition/internal/partition"
)

func TestMergeFiltersElementsBeforePrevEnd(t *testing.T) {
	s1 := partition.Stack{partition.NewBracketElem(partition.OpenBrace, 5)}
	s2 := partition.Stack{
		partition.NewBracketElem(partition.OpenBracket, 3), // before prevEnd, dropped
		partition.NewBracketElem(partition.OpenBracket, 8), // after prevEnd, kept
	}

	merged, filtered := Merge(s1, s2, 5)
	assert.Len(t, filtered, 1)
	assert.Equal(t, partition.Stack{
		partition.NewBracketElem(partition.OpenBrace, 5),
		partition.NewBracketElem(partition.OpenBracket, 8),
	}, merged)
}

func TestMergeCancelsMatchedCloseBrace(t *testing.T) {
	s1 := partition.Stack{partition.NewBracketElem(partition.OpenBrace, 1)}
	s2 := partition.Stack{partition.NewBracketElem(partition.CloseBrace, 5)}

	merged, _ := Merge(s1, s2, 0)
	assert.Empty(t, merged)
}

func TestMergeCancelsMatchedCloseBracket(t *testing.T) {
	s1 := partition.Stack{partition.NewBracketElem(partition.OpenBracket, 1)}
	s2 := partition.Stack{partition.NewBracketElem(partition.CloseBracket, 5)}

	merged, _ := Merge(s1, s2, 0)
	assert.Empty(t, merged)
}

func TestMergeCloseBraceAlsoPopsDanglingKey(t *testing.T) {
	s1 := partition.Stack{
		partition.NewBracketElem(partition.OpenBrace, 1),
		partition.NewKeyElem(2, func(int64) (string, error) { return "k", nil }),
	}
	s2 := partition.Stack{partition.NewBracketElem(partition.CloseBrace, 5)}

	merged, _ := Merge(s1, s2, 0)
	assert.Empty(t, merged)
}

func TestMergeUnmatchedCloseOnEmptyStackIsNoop(t *testing.T) {
	merged, _ := Merge(nil, partition.Stack{partition.NewBracketElem(partition.CloseBracket, 1)}, 0)
	assert.Empty(t, merged)
}

func TestMergeAppendsOpensAndKeys(t *testing.T) {
	s2 := partition.Stack{
		partition.NewBracketElem(partition.OpenBrace, 1),
		partition.NewKeyElem(2, func(int64) (string, error) { return "k", nil }),
	}
	merged, _ := Merge(nil, s2, 0)
	assert.Len(t, merged, 2)
	assert.Equal(t, partition.OpenBrace, merged[0].Kind)
	assert.Equal(t, partition.Key, merged[1].Kind)
}

func TestMergeIsIdempotentOnEmptyResidual(t *testing.T) {
	// Merging an empty successor stack into any predecessor leaves it
	// unchanged (the merger's idempotence property, spec §8 property 4).
	s1 := partition.Stack{partition.NewBracketElem(partition.OpenBrace, 1)}
	merged, filtered := Merge(s1, nil, 0)
	assert.Equal(t, s1, merged)
	assert.Empty(t, filtered)
}
