package speculate

import (
	"github.com/jpartition/jpartition/internal/partition"
	"github.com/jpartition/jpartition/internal/tokenizer"
)

// ShiftResult is the outcome of running the speculation shifter (C3) over a
// single bucket.
type ShiftResult struct {
	Start         int64
	StartLevel    int
	DFAState      int
	SkippedLevels bool
}

// Shift implements the speculation shifter (spec §4.3). Buckets with
// start == 0 pass through unchanged. If no anchor key from table is found
// before fileSize, start is pushed to fileSize (an effectively empty
// partition).
func Shift(tok tokenizer.Tokenizer, r tokenizer.Reader, encoding string, bucket partition.FileBucket, fileSize int64, table partition.SpeculationTable) (ShiftResult, error) {
	if bucket.Start == 0 {
		return ShiftResult{Start: 0}, nil
	}

	pos := bucket.Start
	for {
		if pos >= fileSize {
			return ShiftResult{Start: fileSize}, nil
		}
		token, relIdx, err := tok.GetNextToken(r, encoding, pos, fileSize)
		if err != nil {
			return ShiftResult{}, err
		}
		if relIdx < 0 {
			return ShiftResult{Start: fileSize}, nil
		}
		entry, ok := table[token]
		if !ok {
			pos = r.Pos()
			continue
		}

		var res ShiftResult
		if entry.Level > entry.DFAState {
			skip := entry.Level - entry.DFAState
			if _, err := tok.SkipLevels(r, encoding, skip, fileSize); err != nil {
				return ShiftResult{}, err
			}
			res = ShiftResult{Start: r.Pos(), StartLevel: entry.DFAState, DFAState: entry.DFAState, SkippedLevels: true}
		} else {
			// relIdx is the offset of the key's opening quote, so starting
			// there keeps the anchor key itself inside the partition.
			anchorStart := pos + relIdx
			res = ShiftResult{Start: anchorStart, StartLevel: entry.Level, DFAState: entry.DFAState}
		}

		if res.DFAState == res.StartLevel && !res.SkippedLevels && res.DFAState > 0 {
			res.DFAState--
		}
		return res, nil
	}
}
