package skipscan

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpartition/jpartition/internal/bytesrc"
)

// memReader is a minimal in-memory tokenizer.Reader for exercising the skip
// scanner without going through the filesystem.
type memReader struct {
	data []byte
	pos  int64
}

func newMemReader(s string) *memReader { return &memReader{data: []byte(s)} }

func (m *memReader) Read(p []byte) (int, error) {
	if int(m.pos) >= len(m.data) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memReader) ReadByte() (byte, error) {
	if int(m.pos) >= len(m.data) {
		return 0, io.EOF
	}
	b := m.data[m.pos]
	m.pos++
	return b, nil
}

func (m *memReader) UnreadByte() error {
	if m.pos == 0 {
		return io.EOF
	}
	m.pos--
	return nil
}

func (m *memReader) Pos() int64 { return m.pos }

func (m *memReader) Seek(offset int64) error {
	m.pos = offset
	return nil
}

// skipOver runs Skip starting right after consuming the first byte of body.
func skipOver(t *testing.T, body string) int64 {
	t.Helper()
	r := newMemReader(body)
	first, err := r.ReadByte()
	require.NoError(t, err)
	c := bytesrc.New(r)
	end, err := Skip(c, 1, int64(len(body)), first)
	require.NoError(t, err)
	return end
}

func TestSkipObjectValue(t *testing.T) {
	// body is the value following a ':' — skip should land on the comma.
	end := skipOver(t, `{"a":1},"next"`)
	assert.Equal(t, int64(len(`{"a":1}`)), end)
}

func TestSkipStringValueWithEscapedQuote(t *testing.T) {
	body := `"a\"b",next`
	end := skipOver(t, body)
	assert.Equal(t, int64(len(`"a\"b"`)), end)
}

func TestSkipNestedArray(t *testing.T) {
	body := `[1,[2,3],4]}`
	end := skipOver(t, body)
	assert.Equal(t, int64(len(`[1,[2,3],4]`)), end)
}

func TestSkipBareScalarValue(t *testing.T) {
	body := `42,"next"`
	end := skipOver(t, body)
	assert.Equal(t, int64(len("42")), end)
}

func TestSkipAtEOFWithoutDelimiter(t *testing.T) {
	body := `{"a":1}`
	end := skipOver(t, body)
	assert.Equal(t, int64(len(body)), end)
}
