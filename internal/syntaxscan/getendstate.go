// Package syntaxscan implements the syntactic scanner (C4, getEndState):
// scanning a partition's bytes while tracking an incremental stack of
// unmatched `{ [ "` and the keys between them (spec §4.4).
package syntaxscan

import (
	"fmt"
	"io"

	"github.com/jpartition/jpartition/internal/bytesrc"
	"github.com/jpartition/jpartition/internal/errs"
	"github.com/jpartition/jpartition/internal/partition"
	"github.com/jpartition/jpartition/internal/skipscan"
	"github.com/jpartition/jpartition/internal/tokenizer"
)

// Result is the outcome of GetEndState.
type Result struct {
	Stack   partition.Stack
	End     int64
	PastEnd bool
}

// slot is one live stack entry during the scan: a bracket byte, or a key
// marker recorded by its opening-quote offset (resolved lazily afterward).
type slot struct {
	kind partition.ElemKind
	pos  int64
}

// GetEndState scans [start, end) of the file opened behind r (already
// positioned at start by the caller via tok.GetBufferedReader), returning
// the residual syntactic stack and the scanner's final position. end may be
// exceeded when the scanner must finish a structure that straddles the
// partition boundary (reported via PastEnd, a diagnostic field only — spec
// §9 design note 3).
func GetEndState(tok tokenizer.Tokenizer, r tokenizer.Reader, path, hdfsPath, encoding string, start, end int64) (Result, error) {
	if err := boundaryPrelude(tok, r, encoding, start); err != nil {
		return Result{}, err
	}

	stack := make([]slot, 0, 32)
	valueMode := false
	pos := r.Pos()
	cur := bytesrc.New(r)

	top := func() (slot, bool) {
		if len(stack) == 0 {
			return slot{}, false
		}
		return stack[len(stack)-1], true
	}
	pop := func() { stack = stack[:len(stack)-1] }
	push := func(kind partition.ElemKind, p int64) { stack = append(stack, slot{kind: kind, pos: p}) }

	for {
		if pos >= end && len(stack) == 0 {
			break
		}
		b, rerr := cur.ReadByte()
		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			return Result{}, fmt.Errorf("%w: %v", errs.ErrStreamError, rerr)
		}
		pos++

		switch b {
		case '{':
			push(partition.OpenBrace, pos)
			valueMode = false
		case '[':
			push(partition.OpenBracket, pos)
		case '}':
			if t, ok := top(); ok && t.kind == partition.Key {
				pop()
			}
			if t, ok := top(); ok && t.kind == partition.OpenBrace {
				pop()
			} else {
				push(partition.CloseBrace, pos)
			}
		case ']':
			if t, ok := top(); ok && t.kind == partition.OpenBracket {
				pop()
			} else {
				push(partition.CloseBracket, pos)
			}
		case '"':
			switch {
			case valueMode:
				// A value-position string: skip() (C2) subsumes
				// string-skipping with the same escape handling as
				// ReadQuoted, and is the scanner spec names for this case
				// (spec §4.4).
				newPos, err := skipscan.Skip(cur, pos, end, b)
				if err != nil {
					return Result{}, fmt.Errorf("%w: %v", errs.ErrStreamError, err)
				}
				pos = newPos
				continue
			default:
				if t, ok := top(); ok && t.kind == partition.OpenBrace {
					// Record the key by its opening quote's offset (ResolveKey
					// re-reads from offset+1 later) and skip its content now,
					// the same way a value string is skipped; the content
					// itself is resolved lazily only if something needs it.
					push(partition.Key, pos-1)
					if _, err := bytesrc.ReadQuoted(r); err != nil && err != io.EOF {
						return Result{}, fmt.Errorf("%w: %v", errs.ErrStreamError, err)
					}
				} else if ok && t.kind == partition.Key {
					// A second (or later) key in the same object: the
					// previous Key slot is stale (it's only ever popped by a
					// matching '}'), so overwrite it in place with this key's
					// position rather than leaving it pointing at the wrong
					// key (spec §4.4's third '"' sub-rule).
					stack[len(stack)-1] = slot{kind: partition.Key, pos: pos - 1}
					if _, err := bytesrc.ReadQuoted(r); err != nil && err != io.EOF {
						return Result{}, fmt.Errorf("%w: %v", errs.ErrStreamError, err)
					}
				}
			}
			pos = r.Pos()
		case ':':
			valueMode = true
		case ',':
			if t, ok := top(); !ok || t.kind != partition.OpenBracket {
				valueMode = false
			}
		}
	}

	pastEnd := pos > end

	st := make(partition.Stack, 0, len(stack))
	for _, s := range stack {
		if s.kind == partition.Key {
			offset := s.pos
			st = append(st, partition.NewKeyElem(offset, func(int64) (string, error) {
				return ResolveKey(tok, path, hdfsPath, encoding, offset)
			}))
			continue
		}
		st = append(st, partition.NewBracketElem(s.kind, s.pos))
	}

	return Result{Stack: st, End: pos, PastEnd: pastEnd}, nil
}

// ResolveKey re-reads the quoted string beginning at offset (its opening
// quote) using a fresh reader over path, returning the key content with
// quotes stripped. Each materialized Key element's KeyResolver closes over
// this so resolution stays lazy and works even after the original scan's
// reader has been closed.
func ResolveKey(tok tokenizer.Tokenizer, path, hdfsPath, encoding string, offset int64) (string, error) {
	stream, _, err := tok.GetInputStream(path, hdfsPath)
	if err != nil {
		return "", err
	}
	if c, ok := stream.(io.Closer); ok {
		defer c.Close()
	}
	r, err := tok.GetBufferedReader(stream, encoding, offset+1)
	if err != nil {
		return "", err
	}
	return bytesrc.ReadQuoted(r)
}

// boundaryPrelude attempts to consume one quoted string at start via the
// tokenizer (spec §4.4): if start>0 and the next token parses as a valid
// string, skip past it; otherwise reset the reader to start.
func boundaryPrelude(tok tokenizer.Tokenizer, r tokenizer.Reader, encoding string, start int64) error {
	if start == 0 {
		return nil
	}
	if err := r.Seek(start); err != nil {
		return err
	}
	b, err := r.ReadByte()
	if err != nil {
		return r.Seek(start)
	}
	if b != '"' {
		return r.Seek(start)
	}
	content, err := bytesrc.ReadQuoted(r)
	if err != nil || !tok.IsValidString(content) {
		return r.Seek(start)
	}
	return nil
}
