package fsprovider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestListFilesSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", 10)

	statuses, err := NewLocal().ListFiles(path, false)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, path, statuses[0].Path)
	assert.Equal(t, int64(10), statuses[0].Length)
}

func TestListFilesNonRecursiveSkipsSubdirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", 1)
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "b.json", 1)

	statuses, err := NewLocal().ListFiles(dir, false)
	require.NoError(t, err)
	assert.Len(t, statuses, 1)
}

func TestListFilesRecursiveIncludesSubdirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", 1)
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "b.json", 1)

	statuses, err := NewLocal().ListFiles(dir, true)
	require.NoError(t, err)
	assert.Len(t, statuses, 2)
}

func TestGlobMatchesPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", 1)
	writeFile(t, dir, "b.txt", 1)

	statuses, err := NewLocal().Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, filepath.Join(dir, "a.json"), statuses[0].Path)
}

func TestStatReportsDirectoryAndSize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", 42)

	st, err := NewLocal().Stat(path)
	require.NoError(t, err)
	assert.False(t, st.IsDirectory)
	assert.Equal(t, int64(42), st.Length)

	dirSt, err := NewLocal().Stat(dir)
	require.NoError(t, err)
	assert.True(t, dirSt.IsDirectory)
}

func TestOpenReadsFileContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	f, err := NewLocal().Open(path)
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 5)
	n, err := f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestBucketizeSplitsFileByParallelism(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", 100)

	buckets, err := Bucketize(NewLocal(), dir, BucketizeOptions{Parallelism: 4, MinBucket: 1})
	require.NoError(t, err)
	require.Len(t, buckets, 4)
	assert.Equal(t, int64(0), buckets[0].Start)
	assert.Equal(t, int64(100), buckets[len(buckets)-1].End)
}

func TestBucketizeClampsToMinBucket(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", 100)

	// Parallelism would normally produce 10-byte buckets; MinBucket forces
	// fewer, larger ones.
	buckets, err := Bucketize(NewLocal(), dir, BucketizeOptions{Parallelism: 10, MinBucket: 50})
	require.NoError(t, err)
	for _, b := range buckets[:len(buckets)-1] {
		assert.Equal(t, int64(50), b.Len())
	}
}

func TestBucketizeSkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.json", 0)
	writeFile(t, dir, "a.json", 10)

	buckets, err := Bucketize(NewLocal(), dir, BucketizeOptions{Parallelism: 1, MinBucket: 1})
	require.NoError(t, err)
	for _, b := range buckets {
		assert.NotEqual(t, "empty.json", filepath.Base(b.Path))
	}
}

func TestBucketizeReturnsNilWhenNoFilesFound(t *testing.T) {
	dir := t.TempDir()
	buckets, err := Bucketize(NewLocal(), dir, BucketizeOptions{})
	require.NoError(t, err)
	assert.Nil(t, buckets)
}

func TestHasGlobMetaDetectsWildcards(t *testing.T) {
	assert.True(t, hasGlobMeta("data/*.json"))
	assert.True(t, hasGlobMeta("data/file?.json"))
	assert.True(t, hasGlobMeta("data/[ab].json"))
	assert.False(t, hasGlobMeta("data/file.json"))
}
