// Package dfa defines the external projection-DFA collaborator the
// partitioning engine consumes (spec §6). The projection DFA itself
// (matching a JSONPath-like query) is explicitly out of scope (spec §1) —
// only the interface the engine drives is specified here.
package dfa

// StateType classifies a DFA state. "descendant" states match at any depth
// below the current level (spec §4.6: arrays increment level "if the DFA
// transitions on arrays OR the current DFA state is of type descendant").
type StateType int

const (
	StateNormal StateType = iota
	StateDescendant
)

// Verdict is the result of checking a key token against the DFA at a given
// level (spec §6 checkToken).
type Verdict int

const (
	Continue Verdict = iota
	Accept
	Reject
)

// State is one node of the projection DFA.
type State struct {
	Type StateType
}

// DFA is the collaborator interface consumed by the speculation shifter
// (C3, worker-side) and the DFA projector (C6, driver-side only — see spec
// §5: "C6 runs only on the driver").
type DFA interface {
	// States returns the ordered list of DFA states.
	States() []State

	// CurrentState is the cursor's current state index.
	CurrentState() int

	// ToNextStateIfArray reports whether an array token at level advances
	// the cursor, per the "descendant" rule above.
	ToNextStateIfArray(level int) bool

	// CheckToken advances the cursor for key token at level and reports the
	// resulting verdict.
	CheckToken(token string, level int) Verdict
}
