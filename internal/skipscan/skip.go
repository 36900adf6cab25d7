// Package skipscan implements the skip scanner (C2): advancing past one
// JSON value to the next top-level delimiter, honoring string escapes.
package skipscan

import (
	"io"

	"github.com/jpartition/jpartition/internal/bytesrc"
)

// Skip advances past one JSON value starting at currentByte (the byte
// already read at pos-1) and returns the new position (spec §4.2). end
// bounds the scan when the stack empties without hitting a delimiter.
func Skip(c *bytesrc.Cursor, pos, end int64, currentByte byte) (int64, error) {
	stack := make([]byte, 0, 16)
	inString := false
	backslashes := 0

	apply := func(b byte) {
		if inString {
			switch {
			case b == '\\':
				backslashes++
			case b == '"':
				escaped := backslashes%2 == 1
				backslashes = 0
				if !escaped {
					inString = false
					if len(stack) > 0 {
						stack = stack[:len(stack)-1]
					}
				}
			default:
				backslashes = 0
			}
			return
		}

		switch b {
		case '{', '[':
			stack = append(stack, b)
		case '"':
			stack = append(stack, b)
			inString = true
			backslashes = 0
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	// currentByte was already consumed by the caller at pos-1; if it alone
	// empties the stack (e.g. caller handed us a bare delimiter), the
	// one-byte-rewind rule below still applies on subsequent reads.
	apply(currentByte)
	if len(stack) == 0 && !inString && isTopLevelDelimiter(currentByte) {
		return pos - 1, nil
	}

	for {
		if end > 0 && pos >= end && len(stack) == 0 {
			return pos, nil
		}
		b, err := c.ReadByte()
		if err != nil {
			if err == io.EOF {
				return pos, nil
			}
			return pos, err
		}
		pos++

		if len(stack) == 0 && !inString && isTopLevelDelimiter(b) {
			c.Rewind(b)
			return pos - 1, nil
		}

		apply(b)
	}
}

func isTopLevelDelimiter(b byte) bool {
	return b == ',' || b == ']' || b == '}'
}
