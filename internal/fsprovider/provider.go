package fsprovider

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Local is the default, local-disk filesystem collaborator.
type Local struct {
	logger *slog.Logger
}

// NewLocal constructs a Local filesystem collaborator.
func NewLocal() *Local {
	return &Local{logger: slog.Default().With("component", "fsprovider")}
}

// ListFiles enumerates files under root, optionally recursing into
// subdirectories.
func (l *Local) ListFiles(root string, recursive bool) ([]FileStatus, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("fsprovider: stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []FileStatus{{Path: root, Length: info.Size()}}, nil
	}

	var out []FileStatus
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		fi, ferr := d.Info()
		if ferr != nil {
			return ferr
		}
		out = append(out, FileStatus{Path: path, Length: fi.Size()})
		return nil
	}
	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, fmt.Errorf("fsprovider: walk %s: %w", root, err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Glob enumerates files matching a doublestar pattern.
func (l *Local) Glob(pattern string) ([]FileStatus, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("fsprovider: glob %s: %w", pattern, err)
	}
	out := make([]FileStatus, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		out = append(out, FileStatus{Path: m, Length: info.Size()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Stat reports a single path's status.
func (l *Local) Stat(path string) (FileStatus, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileStatus{}, err
	}
	return FileStatus{Path: path, IsDirectory: info.IsDir(), Length: info.Size()}, nil
}

// Open opens path as a seekable byte stream.
func (l *Local) Open(path string) (io.ReadSeekCloser, error) {
	return os.Open(path)
}
