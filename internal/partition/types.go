// Package partition holds the data model shared by every stage of the
// partitioning engine: PartitionDescriptor, the SyntacticStack, the
// SpeculationTable, and FileBucket (spec §3). It is pure data plus small
// invariant-checking helpers; it performs no I/O.
package partition

import (
	"encoding/json"
	"fmt"
)

// Descriptor is a byte range annotated with the syntactic context a
// downstream parser needs to parse it in isolation (spec §3).
//
// Invariants (spec §3):
//  1. For each file, descriptors form a contiguous, non-overlapping cover
//     of [0, fileSize) or a prefix thereof.
//  2. Start never falls inside a JSON string literal.
//  3. StartLevel equals the count of unmatched '{'/'[' in [0, Start).
//  4. InitialState[i] is the bracket opened at depth i.
type Descriptor struct {
	Path         string `json:"path"`
	Start        int64  `json:"start"`
	End          int64  `json:"end"`
	StartLevel   int    `json:"startLevel"`
	DFAState     int    `json:"dfaState"`
	InitialState []byte `json:"-"` // sequence of '{' / '[' ancestors, root-first; full-pass only
	ID           int    `json:"id"`
}

func (d Descriptor) String() string {
	return fmt.Sprintf("Descriptor{path=%s start=%d end=%d level=%d dfa=%d id=%d}",
		d.Path, d.Start, d.End, d.StartLevel, d.DFAState, d.ID)
}

// Len returns the byte length of the half-open range [Start, End).
func (d Descriptor) Len() int64 { return d.End - d.Start }

// descriptorJSON mirrors Descriptor but renders InitialState as the literal
// bracket sequence (e.g. "{[{") instead of a base64 byte blob, matching how
// a JSONPath-shaped ancestor chain is normally read.
type descriptorJSON struct {
	Path         string `json:"path"`
	Start        int64  `json:"start"`
	End          int64  `json:"end"`
	StartLevel   int    `json:"startLevel"`
	DFAState     int    `json:"dfaState"`
	InitialState string `json:"initialState,omitempty"`
	ID           int    `json:"id"`
}

// MarshalJSON renders InitialState as a plain bracket string (spec §3 /
// SPEC_FULL §D.3).
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(descriptorJSON{
		Path: d.Path, Start: d.Start, End: d.End,
		StartLevel: d.StartLevel, DFAState: d.DFAState,
		InitialState: string(d.InitialState), ID: d.ID,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var dj descriptorJSON
	if err := json.Unmarshal(data, &dj); err != nil {
		return err
	}
	*d = Descriptor{
		Path: dj.Path, Start: dj.Start, End: dj.End,
		StartLevel: dj.StartLevel, DFAState: dj.DFAState,
		InitialState: []byte(dj.InitialState), ID: dj.ID,
	}
	return nil
}

// FileBucket is a raw, pre-syntactic byte range cut from a file (spec §3).
type FileBucket struct {
	Path  string `json:"path"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`
}

func (b FileBucket) Len() int64 { return b.End - b.Start }

// FileStat is a minimal (path, size) record of a file. The bucketizer
// itself works on fsprovider.FileStatus.
type FileStat struct {
	Path string
	Size int64
}
