package syntaxscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpartition/jpartition/internal/partition"
	"github.com/jpartition/jpartition/internal/tokenizer"
)

func scanFile(t *testing.T, content string, start, end int64) Result {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tok := tokenizer.NewDefault()
	stream, _, err := tok.GetInputStream(path, "")
	require.NoError(t, err)
	defer stream.(*os.File).Close()

	r, err := tok.GetBufferedReader(stream, "", start)
	require.NoError(t, err)

	res, err := GetEndState(tok, r, path, "", "", start, end)
	require.NoError(t, err)
	return res
}

func TestGetEndStateBalancedObject(t *testing.T) {
	body := `{"a":1,"b":2}`
	res := scanFile(t, body, 0, int64(len(body)))
	assert.Empty(t, res.Stack)
	assert.Equal(t, int64(len(body)), res.End)
	assert.False(t, res.PastEnd)
}

func TestGetEndStateUnclosedObjectLeavesDanglingKey(t *testing.T) {
	body := `{"a":1`
	res := scanFile(t, body, 0, int64(len(body)))
	require.Len(t, res.Stack, 2)
	assert.Equal(t, partition.OpenBrace, res.Stack[0].Kind)
	assert.Equal(t, partition.Key, res.Stack[1].Kind)
}

func TestGetEndStateMultiKeyUnclosedObjectKeepsLatestKey(t *testing.T) {
	// Once "a"'s value is done, its Key slot is stale; the second key's
	// opening quote must overwrite it rather than leave "a" on the stack.
	body := `{"a":1,"b":2`
	res := scanFile(t, body, 0, int64(len(body)))
	require.Len(t, res.Stack, 2)
	assert.Equal(t, partition.OpenBrace, res.Stack[0].Kind)
	require.Equal(t, partition.Key, res.Stack[1].Kind)

	key, err := res.Stack[1].KeyString()
	require.NoError(t, err)
	assert.Equal(t, "b", key)
}

func TestGetEndStateUnclosedNestedArray(t *testing.T) {
	body := `{"a":[1,2`
	res := scanFile(t, body, 0, int64(len(body)))
	require.Len(t, res.Stack, 3)
	assert.Equal(t, partition.OpenBrace, res.Stack[0].Kind)
	assert.Equal(t, partition.Key, res.Stack[1].Kind)
	assert.Equal(t, partition.OpenBracket, res.Stack[2].Kind)
}

func TestGetEndStateClosesDanglingKeyOnObjectClose(t *testing.T) {
	// A key immediately followed by the enclosing object's close, with no
	// value at all, is malformed JSON but must not wedge the scanner: the
	// close brace pops both the dangling key and the brace.
	body := `{"a"}`
	res := scanFile(t, body, 0, int64(len(body)))
	assert.Empty(t, res.Stack)
}

func TestGetEndStateEscapedQuoteInsideKey(t *testing.T) {
	body := `{"a\"b":1}`
	res := scanFile(t, body, 0, int64(len(body)))
	assert.Empty(t, res.Stack, "the escaped quote inside the key must not be read as its closing quote")
}

func TestGetEndStatePastEndWhenStructureStraddlesBoundary(t *testing.T) {
	body := `{"a":1}`
	// end lands inside the object; the scanner must keep going until the
	// brace closes, reporting that it read past the requested end.
	res := scanFile(t, body, 0, 2)
	assert.Empty(t, res.Stack)
	assert.Equal(t, int64(len(body)), res.End)
	assert.True(t, res.PastEnd)
}

func TestResolveKeyReadsContentAtOffset(t *testing.T) {
	body := `{"hello":1}`
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	tok := tokenizer.NewDefault()
	// The opening quote of "hello" sits at offset 1.
	key, err := ResolveKey(tok, path, "", "", 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", key)
}

func TestBoundaryPreludeSkipsValidQuotedPrefix(t *testing.T) {
	body := `{"ab":1}`
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	tok := tokenizer.NewDefault()
	stream, _, err := tok.GetInputStream(path, "")
	require.NoError(t, err)
	defer stream.(*os.File).Close()

	// start lands exactly on the opening quote of "ab".
	r, err := tok.GetBufferedReader(stream, "", 1)
	require.NoError(t, err)

	require.NoError(t, boundaryPrelude(tok, r, "", 1))
	// The prelude must have consumed past the closing quote of "ab".
	assert.Equal(t, int64(5), r.Pos())
}

func TestBoundaryPreludeResetsWhenNoLeadingQuote(t *testing.T) {
	body := `{"ab":1}`
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	tok := tokenizer.NewDefault()
	stream, _, err := tok.GetInputStream(path, "")
	require.NoError(t, err)
	defer stream.(*os.File).Close()

	r, err := tok.GetBufferedReader(stream, "", 2)
	require.NoError(t, err)

	require.NoError(t, boundaryPrelude(tok, r, "", 2))
	assert.Equal(t, int64(2), r.Pos())
}
