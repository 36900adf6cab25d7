// Package speculate implements the speculation-based partitioning strategy:
// the document-statistics pass that builds a SpeculationTable (spec §3,
// SPEC_FULL §D.1) and the speculation shifter (C3, spec §4.3).
package speculate

import (
	"fmt"
	"io"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/jpartition/jpartition/internal/bytesrc"
	"github.com/jpartition/jpartition/internal/dfa"
	"github.com/jpartition/jpartition/internal/errs"
	"github.com/jpartition/jpartition/internal/partition"
	"github.com/jpartition/jpartition/internal/tokenizer"
)

type keyStat struct {
	hash     uint64
	levels   map[int]struct{}
	count    int
	level    int
	dfaState int
}

// BuildTable runs a single forward pass over the document at path, tracking
// raw bracket nesting depth and feeding every object key through a fresh DFA
// instance, to produce the SpeculationTable consulted by the shifter. It
// returns errs.ErrSpeculationImpossible if no key qualifies.
func BuildTable(tok tokenizer.Tokenizer, newDFA func() dfa.DFA, path, hdfsPath, encoding string) (partition.SpeculationTable, error) {
	stream, size, err := tok.GetInputStream(path, hdfsPath)
	if err != nil {
		return nil, err
	}
	if c, ok := stream.(io.Closer); ok {
		defer c.Close()
	}
	r, err := tok.GetBufferedReader(stream, encoding, 0)
	if err != nil {
		return nil, err
	}

	d := newDFA()
	stack := make([]byte, 0, 64)
	valueMode := false
	// intern holds the one canonical string per digest ever seen, so every
	// keyStat and the final SpeculationTable share the same string instance
	// instead of each holding its own copy of a key seen thousands of times.
	// A hash collision merges two distinct keys' stats under one canonical
	// string, a tradeoff acceptable for a statistics pass that only picks
	// speculation anchors, mirroring the teacher's Intern-over-xxhash
	// pattern (motor.Index).
	intern := make(map[uint64]string, 64)
	stats := make(map[uint64]*keyStat)

	for {
		if size > 0 && r.Pos() >= size {
			break
		}
		b, rerr := r.ReadByte()
		if rerr != nil {
			if rerr != io.EOF {
				return nil, fmt.Errorf("%w: %v", errs.ErrStreamError, rerr)
			}
			break
		}
		switch b {
		case '{', '[':
			stack = append(stack, b)
			valueMode = false
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			valueMode = false
		case ':':
			valueMode = true
		case ',':
			valueMode = false
		case '"':
			top := byte(0)
			if len(stack) > 0 {
				top = stack[len(stack)-1]
			}
			isKey := !valueMode && top == '{'
			content, serr := bytesrc.ReadQuoted(r)
			if serr != nil {
				if serr != io.EOF {
					return nil, fmt.Errorf("%w: %v", errs.ErrStreamError, serr)
				}
				break
			}
			if isKey {
				level := len(stack)
				d.CheckToken(content, level)
				h := xxhash.Sum64String(content)
				if _, ok := intern[h]; !ok {
					intern[h] = content
				}
				st := stats[h]
				if st == nil {
					st = &keyStat{hash: h, levels: map[int]struct{}{}}
					stats[h] = st
				}
				st.levels[level] = struct{}{}
				st.count++
				st.level = level
				st.dfaState = d.CurrentState()
			} else {
				valueMode = false
			}
		}
	}

	type candidate struct {
		key string
		st  *keyStat
	}
	var singleLevel []candidate
	for _, st := range stats {
		if len(st.levels) == 1 {
			singleLevel = append(singleLevel, candidate{intern[st.hash], st})
		}
	}
	sort.Slice(singleLevel, func(i, j int) bool { return singleLevel[i].key < singleLevel[j].key })

	var qualifying []candidate
	for _, c := range singleLevel {
		if c.st.count >= partition.MinOccurrence {
			qualifying = append(qualifying, c)
		}
	}

	chosen := qualifying
	if len(qualifying) < partition.MinQualifyingKeys && len(singleLevel) >= partition.MinQualifyingKeys {
		sort.SliceStable(singleLevel, func(i, j int) bool { return singleLevel[i].st.count > singleLevel[j].st.count })
		n := partition.FallbackKeys
		if n > len(singleLevel) {
			n = len(singleLevel)
		}
		chosen = singleLevel[:n]
	}

	table := partition.SpeculationTable{}
	for _, c := range chosen {
		table[c.key] = partition.SpeculationEntry{
			Level:           c.st.level,
			DFAState:        c.st.dfaState,
			OccurrenceCount: c.st.count,
		}
	}
	if table.Empty() {
		return nil, errs.ErrSpeculationImpossible
	}
	return table, nil
}
