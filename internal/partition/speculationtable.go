package partition

// SpeculationEntry is the per-key statistic recorded by the document-
// statistics pass (spec §3 / SPEC_FULL §D.1).
type SpeculationEntry struct {
	Level           int
	DFAState        int
	OccurrenceCount int
}

// SpeculationTable maps a key string to its speculation entry. It contains
// only keys that appear at exactly one nesting level in the document
// statistics, subject to the occurrence-count/fallback rule in spec §3.
// An empty table means the speculation strategy cannot run (spec §7
// ErrSpeculationImpossible).
type SpeculationTable map[string]SpeculationEntry

// Empty reports whether the table has no qualifying anchors.
func (t SpeculationTable) Empty() bool { return len(t) == 0 }

// MinOccurrence is the minimum per-level occurrence count (spec §3) for a
// single-level key to qualify as a speculation anchor directly.
const MinOccurrence = 1000

// MinQualifyingKeys is the minimum number of qualifying anchors before the
// top-10-by-frequency fallback kicks in (spec §3).
const MinQualifyingKeys = 10

// FallbackKeys is the size of the fallback candidate set (spec §3: "fall
// back to the top-10 most-frequent single-level keys").
const FallbackKeys = 10
