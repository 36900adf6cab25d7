package dfa

// Static is a minimal default DFA: a fixed ordered sequence of keys (a
// single JSONPath-like chain, e.g. $.a.b), used by the document-statistics
// pass (speculate.BuildTable) and by tests. It is not meant to express
// arbitrary projection queries — a real deployment supplies its own DFA
// behind the same interface.
type Static struct {
	path    []string
	states  []State
	cursor  int
	arrayOK bool // whether array brackets count toward level for this DFA
}

// NewStatic builds a Static DFA matching the given key path. arrayOK
// controls ToNextStateIfArray's answer; for simple path queries without
// array wildcards, true keeps array brackets counted as a level the same
// way object brackets are (consistent with spec §3 invariant 3's plain
// structural-depth definition).
func NewStatic(path []string, arrayOK bool) *Static {
	states := make([]State, len(path)+1)
	return &Static{path: path, states: states, arrayOK: arrayOK}
}

var _ DFA = (*Static)(nil)

func (s *Static) States() []State { return s.states }
func (s *Static) CurrentState() int { return s.cursor }
func (s *Static) ToNextStateIfArray(level int) bool { return s.arrayOK }

// CheckToken advances the cursor when token matches the next expected key
// at the expected level. level is the key's nesting depth (the number of
// enclosing '{'/'[' it sits under, as produced by project.Walk), so the
// root object's own keys arrive at level 1; cursor counts path segments
// already matched, so it is compared against level-1. Ascending past an
// already-matched ancestor level rejects (the target subtree closed without
// completing the path); encountering an unrelated key at or below the
// expected level continues.
func (s *Static) CheckToken(token string, level int) Verdict {
	if len(s.path) == 0 {
		// No projection path configured: match the whole document, so
		// nothing ever qualifies as "found" and nothing gets skipped.
		return Continue
	}
	depth := level - 1
	switch {
	case depth < s.cursor:
		return Reject
	case depth > s.cursor:
		return Continue
	case s.cursor >= len(s.path):
		return Accept
	case token == s.path[s.cursor]:
		s.cursor++
		if s.cursor == len(s.path) {
			return Accept
		}
		return Continue
	default:
		return Continue
	}
}

// Clone returns an independent copy positioned at the start, for use by
// multiple workers concurrently (each worker needs its own cursor).
func (s *Static) Clone() *Static {
	return NewStatic(append([]string(nil), s.path...), s.arrayOK)
}
