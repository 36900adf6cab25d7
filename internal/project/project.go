// Package project implements the DFA projector (C6, partitionLevelSkipping):
// walking a merged stack through the projection DFA to find the first
// accept/reject and the levels that must be skipped past it (spec §4.6).
package project

import (
	"github.com/jpartition/jpartition/internal/dfa"
	"github.com/jpartition/jpartition/internal/partition"
)

// Result is the outcome of walking a merged stack through the DFA.
type Result struct {
	StartLevel int
	SkipLevels int
	DFAState   int
}

// Walk walks stack element by element through d, stopping at the first
// accept or reject verdict, then counts remaining opens in the tail as
// SkipLevels.
func Walk(d dfa.DFA, stack partition.Stack) Result {
	level := 0
	stopIndex := len(stack)
	stopped := false

	for i, e := range stack {
		switch e.Kind {
		case partition.OpenBracket:
			if d.ToNextStateIfArray(level) {
				level++
			}
		case partition.OpenBrace:
			level++
		case partition.Key:
			key, err := e.KeyString()
			if err != nil {
				continue
			}
			switch d.CheckToken(key, level) {
			case dfa.Accept, dfa.Reject:
				stopIndex = i
				stopped = true
			}
		}
		if stopped {
			break
		}
	}

	skipLevels := 0
	for _, e := range stack[stopIndex:] {
		if e.Kind == partition.OpenBrace || e.Kind == partition.OpenBracket {
			skipLevels++
		}
	}

	return Result{StartLevel: level, SkipLevels: skipLevels, DFAState: d.CurrentState()}
}
