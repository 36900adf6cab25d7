// Package reconcile implements the reconciler (C7): assembling final
// partition descriptors from scanned partitions by folding predecessor and
// successor residual stacks forward, then walking in reverse to shift
// starts and contract ends (spec §4.7).
package reconcile

import (
	"github.com/jpartition/jpartition/internal/dfa"
	"github.com/jpartition/jpartition/internal/merge"
	"github.com/jpartition/jpartition/internal/partition"
	"github.com/jpartition/jpartition/internal/project"
)

// ScannedPartition is one full-pass bucket after C4 has run over it.
type ScannedPartition struct {
	Path    string
	Start   int64
	End     int64 // requested bucket end
	ScanEnd int64 // C4's actual final position (Result.End)
	Stack   partition.Stack
}

type boundary struct {
	level      int
	dfaState   int
	skipLevels int
	stack      partition.Stack
}

// Reconcile runs the full-pass reconciliation over scanned, in document
// order (grouped by file, each file's buckets contiguous and ordered).
func Reconcile(d dfa.DFA, scanned []ScannedPartition) []partition.Descriptor {
	n := len(scanned)
	boundaries := make([]boundary, n)

	var acc partition.Stack
	prevEnd := int64(0)
	prevPath := ""
	for i, p := range scanned {
		if p.Path != prevPath {
			acc = nil
			prevEnd = p.Start
		}
		merged, _ := merge.Merge(acc, p.Stack, prevEnd)
		proj := project.Walk(d, merged)
		boundaries[i] = boundary{level: proj.StartLevel, dfaState: proj.DFAState, skipLevels: proj.SkipLevels, stack: merged}
		acc = merged
		prevEnd = p.ScanEnd
		prevPath = p.Path
	}

	var results []partition.Descriptor
	for i := n - 1; i >= 0; i-- {
		p := scanned[i]

		b := boundary{}
		if i > 0 && scanned[i-1].Path == p.Path {
			b = boundaries[i-1]
		}

		shiftedStart := p.Start
		if b.skipLevels > 0 {
			remaining := b.skipLevels
			finalPos := p.Start
			for j := i + 1; j < n && scanned[j].Path == p.Path && remaining > 0; j++ {
				for _, e := range scanned[j].Stack {
					if e.Kind == partition.CloseBrace || e.Kind == partition.CloseBracket {
						finalPos = e.Pos
						remaining--
						if remaining == 0 {
							break
						}
					}
				}
			}
			shiftedStart = finalPos
		}

		end := p.End
		if i+1 < n && scanned[i+1].Path == p.Path && scanned[i+1].Start < end {
			end = scanned[i+1].Start
		}

		if shiftedStart < end {
			results = append(results, partition.Descriptor{
				Path:         p.Path,
				Start:        shiftedStart,
				End:          end,
				StartLevel:   b.level,
				DFAState:     b.dfaState,
				InitialState: bracketBytes(b.stack),
			})
		}
	}

	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	for i := range results {
		results[i].ID = i
	}
	return results
}

// ContractEnds implements the speculation variant of reconciliation (spec
// §4.7): only the "contract end to next same-file start" pass, since
// speculation's shifter already produced correct starts/levels/states.
func ContractEnds(starts []partition.Descriptor, fileSizes map[string]int64) []partition.Descriptor {
	out := make([]partition.Descriptor, len(starts))
	copy(out, starts)
	for i := range out {
		end := fileSizes[out[i].Path]
		if i+1 < len(out) && out[i+1].Path == out[i].Path && out[i+1].Start < end {
			end = out[i+1].Start
		}
		out[i].End = end
	}
	n := 0
	for _, d := range out {
		if d.Start < d.End {
			out[n] = d
			n++
		}
	}
	out = out[:n]
	for i := range out {
		out[i].ID = i
	}
	return out
}

func bracketBytes(s partition.Stack) []byte {
	var b []byte
	for _, e := range s {
		if e.Kind == partition.OpenBrace || e.Kind == partition.OpenBracket {
			b = append(b, e.Kind.Byte())
		}
	}
	return b
}
