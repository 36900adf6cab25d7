package fsprovider

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jpartition/jpartition/internal/partition"
)

// BucketizeOptions mirrors the bucketizer's input options (spec §4.1).
type BucketizeOptions struct {
	Recursive      bool
	PathGlobFilter string
	MinBucket      int64
	MaxBucket      int64
	Parallelism    int
}

// Bucketize enumerates files under path (recursing and/or glob-filtering
// per opts), then splits each file into equal byte buckets sized from the
// total byte count, parallelism, and min/max bounds (spec §4.1, C1). If no
// files match, it logs a diagnostic and returns an empty slice (spec §7
// NoFilesFound).
func Bucketize(l *Local, path string, opts BucketizeOptions) ([]partition.FileBucket, error) {
	files, err := enumerate(l, path, opts)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		slog.Warn("no files found", "path", path)
		return nil, nil
	}

	var totalSize int64
	for _, f := range files {
		totalSize += f.Length
	}

	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = 8
	}
	bucketSize := ceilDiv(totalSize, int64(parallelism))
	bucketSize = clamp(bucketSize, opts.MinBucket, opts.MaxBucket)

	var buckets []partition.FileBucket
	for _, f := range files {
		if f.Length == 0 {
			continue
		}
		for start := int64(0); start < f.Length; start += bucketSize {
			end := start + bucketSize
			if end > f.Length {
				end = f.Length
			}
			buckets = append(buckets, partition.FileBucket{Path: f.Path, Start: start, End: end})
		}
	}
	return buckets, nil
}

func enumerate(l *Local, path string, opts BucketizeOptions) ([]FileStatus, error) {
	if opts.PathGlobFilter != "" {
		pattern := path
		if pattern == "" || pattern == "." {
			pattern = opts.PathGlobFilter
		} else {
			pattern = filepath.Join(path, opts.PathGlobFilter)
		}
		return l.Glob(pattern)
	}
	if hasGlobMeta(path) {
		return l.Glob(path)
	}
	return l.ListFiles(path, opts.Recursive)
}

func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

func ceilDiv(a, b int64) int64 {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

func clamp(v, lo, hi int64) int64 {
	if lo > 0 && v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}
