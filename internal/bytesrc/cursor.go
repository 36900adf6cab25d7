// Package bytesrc provides the one-byte mark/reset cursor primitive used by
// the skip scanner (C2) and syntactic scanner (C4) to rewind a single byte,
// grounded on the pooled-reader wrapper pattern in the teacher's
// motor/reader.go.
package bytesrc

import "github.com/jpartition/jpartition/internal/tokenizer"

// Cursor wraps a tokenizer.Reader with a one-byte rewind buffer, since
// io.ByteScanner's UnreadByte only guarantees one pending unread and several
// scanners need to "push back" a byte they've already classified.
type Cursor struct {
	r        tokenizer.Reader
	pushed   bool
	pushByte byte
	pushPos  int64
}

// New wraps r in a Cursor.
func New(r tokenizer.Reader) *Cursor { return &Cursor{r: r} }

// ReadByte returns the next byte, honoring a pending Rewind.
func (c *Cursor) ReadByte() (byte, error) {
	if c.pushed {
		c.pushed = false
		return c.pushByte, nil
	}
	return c.r.ReadByte()
}

// Rewind pushes back the given byte (the last one read) so the next
// ReadByte returns it again. b should be the byte most recently read from
// this cursor.
func (c *Cursor) Rewind(b byte) {
	c.pushed = true
	c.pushByte = b
	c.pushPos = c.r.Pos() - 1
}

// Pos returns the cursor's logical position, accounting for a pending
// rewind.
func (c *Cursor) Pos() int64 {
	if c.pushed {
		return c.pushPos
	}
	return c.r.Pos()
}

// Underlying returns the wrapped Reader, for callers that need to pass it
// straight through to a tokenizer method (e.g. consuming a quoted string).
func (c *Cursor) Underlying() tokenizer.Reader { return c.r }

// ReadQuoted reads bytes (honoring backslash-escape parity) up to and
// including the closing, unescaped quote, returning the content with quotes
// stripped. r must be positioned immediately after the opening quote.
func ReadQuoted(r tokenizer.Reader) (string, error) {
	buf := make([]byte, 0, 32)
	escaped := false
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if escaped {
			buf = append(buf, b)
			escaped = false
			continue
		}
		if b == '\\' {
			escaped = true
			continue
		}
		if b == '"' {
			return string(buf), nil
		}
		buf = append(buf, b)
	}
}
