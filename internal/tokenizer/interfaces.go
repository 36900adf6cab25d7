// Package tokenizer defines the external JSON-tokenizer collaborator the
// partitioning engine consumes (spec §6). The actual JSON tokenizer is
// explicitly out of scope for this engine (spec §1) — only the interface it
// is consumed through is specified here, mirroring how the teacher's
// motor.HARDecoder interface (motor/interfaces.go in the reference pack)
// wraps encoding/json.Decoder so the concrete decoder stays swappable.
package tokenizer

import "io"

// Reader is a positioned, seekable byte reader over a file's JSON content,
// as produced by GetBufferedReader.
type Reader interface {
	io.Reader
	io.ByteScanner
	// Pos returns the reader's current absolute byte offset in the file.
	Pos() int64
	// Seek repositions the reader to an absolute byte offset.
	Seek(offset int64) error
}

// Tokenizer is the collaborator interface for JSON token/string consumption
// (spec §6). Callers only ever use these methods; they must not assume
// anything about how tokens are produced internally.
type Tokenizer interface {
	// GetInputStream opens path (honoring hdfsPath when non-empty) and
	// returns a raw stream plus the file's total size.
	GetInputStream(path, hdfsPath string) (io.ReadSeeker, int64, error)

	// GetBufferedReader returns a Reader over stream positioned at offset,
	// decoding bytes under encoding (empty string means UTF-8/raw bytes).
	GetBufferedReader(stream io.ReadSeeker, encoding string, offset int64) (Reader, error)

	// GetNextToken returns the next token string found in [start, end) and
	// its byte offset relative to start. relativeIndex is -1 at EOF.
	GetNextToken(r Reader, encoding string, start, end int64) (token string, relativeIndex int64, err error)

	// Consume reads forward from pos until delimiter (inclusive), returning
	// the consumed text (including delimiters) and the new position.
	Consume(r Reader, encoding string, pos, end int64, delimiter byte) (text string, newPos int64, err error)

	// IsValidString reports whether raw (without surrounding quotes) is a
	// syntactically valid JSON string body.
	IsValidString(raw string) bool

	// StringSize returns the byte length of s once encoded.
	StringSize(s string, encoding string) int64

	// CharSize returns the byte length of a single codepoint under encoding.
	CharSize(codepoint rune, encoding string) int64

	// SkipLevels advances r past n closing brackets (used by the
	// speculation shifter, spec §4.3 step 2), returning the number of bytes
	// skipped. fileSize bounds the advance.
	SkipLevels(r Reader, encoding string, n int, fileSize int64) (int64, error)
}
