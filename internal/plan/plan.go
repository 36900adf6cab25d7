// Package plan orchestrates strategy selection (spec §2 data flow): for
// each file's buckets, try the speculation path and fall back to the full
// pass on errs.ErrSpeculationImpossible (SPEC_FULL §D.2).
package plan

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jpartition/jpartition/internal/dfa"
	"github.com/jpartition/jpartition/internal/errs"
	"github.com/jpartition/jpartition/internal/executor"
	"github.com/jpartition/jpartition/internal/partition"
	"github.com/jpartition/jpartition/internal/reconcile"
	"github.com/jpartition/jpartition/internal/speculate"
	"github.com/jpartition/jpartition/internal/syntaxscan"
	"github.com/jpartition/jpartition/internal/tokenizer"
)

// Options bundles the read-only inputs shared across workers (spec §5).
type Options struct {
	Tokenizer   tokenizer.Tokenizer
	NewDFA      func() dfa.DFA
	HDFSPath    string
	Encoding    string
	Parallelism int
	// PreferSpeculation attempts the speculation strategy first, falling
	// back to full pass on ErrSpeculationImpossible. When false, only full
	// pass runs.
	PreferSpeculation bool
}

// FileSizer resolves a file's total byte size (used to bound scans and
// contract the last partition).
type FileSizer func(path string) (int64, error)

// Run partitions buckets (grouped by file) into final descriptors,
// selecting speculation or full pass per file.
func Run(ctx context.Context, buckets []partition.FileBucket, opts Options, sizeOf FileSizer) ([]partition.Descriptor, error) {
	byFile := map[string][]partition.FileBucket{}
	var order []string
	for _, b := range buckets {
		if _, ok := byFile[b.Path]; !ok {
			order = append(order, b.Path)
		}
		byFile[b.Path] = append(byFile[b.Path], b)
	}

	var all []partition.Descriptor
	for _, path := range order {
		size, err := sizeOf(path)
		if err != nil {
			return nil, err
		}
		descs, err := planFile(ctx, path, byFile[path], size, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, descs...)
	}
	for i := range all {
		all[i].ID = i
	}
	return all, nil
}

func planFile(ctx context.Context, path string, buckets []partition.FileBucket, size int64, opts Options) ([]partition.Descriptor, error) {
	if opts.PreferSpeculation {
		descs, err := runSpeculation(ctx, path, buckets, size, opts)
		if err == nil {
			return descs, nil
		}
		if !errors.Is(err, errs.ErrSpeculationImpossible) {
			return nil, err
		}
	}
	return runFullPass(ctx, path, buckets, size, opts)
}

func runSpeculation(ctx context.Context, path string, buckets []partition.FileBucket, size int64, opts Options) ([]partition.Descriptor, error) {
	table, err := speculate.BuildTable(opts.Tokenizer, opts.NewDFA, path, opts.HDFSPath, opts.Encoding)
	if err != nil {
		return nil, err
	}

	shifted, err := executor.MapCollect(ctx, buckets, opts.Parallelism, func(_ context.Context, b partition.FileBucket) (partition.Descriptor, error) {
		stream, _, err := opts.Tokenizer.GetInputStream(b.Path, opts.HDFSPath)
		if err != nil {
			return partition.Descriptor{}, err
		}
		if c, ok := stream.(io.Closer); ok {
			defer c.Close()
		}
		r, err := opts.Tokenizer.GetBufferedReader(stream, opts.Encoding, b.Start)
		if err != nil {
			return partition.Descriptor{}, err
		}
		res, err := speculate.Shift(opts.Tokenizer, r, opts.Encoding, b, size, table)
		if err != nil {
			return partition.Descriptor{}, err
		}
		return partition.Descriptor{
			Path:       b.Path,
			Start:      res.Start,
			End:        b.End,
			StartLevel: res.StartLevel,
			DFAState:   res.DFAState,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	fileSizes := map[string]int64{path: size}
	return reconcile.ContractEnds(shifted, fileSizes), nil
}

func runFullPass(ctx context.Context, path string, buckets []partition.FileBucket, size int64, opts Options) ([]partition.Descriptor, error) {
	scanned, err := executor.MapCollect(ctx, buckets, opts.Parallelism, func(_ context.Context, b partition.FileBucket) (reconcile.ScannedPartition, error) {
		stream, _, err := opts.Tokenizer.GetInputStream(b.Path, opts.HDFSPath)
		if err != nil {
			return reconcile.ScannedPartition{}, err
		}
		if c, ok := stream.(io.Closer); ok {
			defer c.Close()
		}
		r, err := opts.Tokenizer.GetBufferedReader(stream, opts.Encoding, b.Start)
		if err != nil {
			return reconcile.ScannedPartition{}, err
		}
		res, err := syntaxscan.GetEndState(opts.Tokenizer, r, b.Path, opts.HDFSPath, opts.Encoding, b.Start, b.End)
		if err != nil {
			return reconcile.ScannedPartition{}, err
		}
		return reconcile.ScannedPartition{Path: b.Path, Start: b.Start, End: b.End, ScanEnd: res.End, Stack: res.Stack}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("plan: full pass scan: %w", err)
	}

	d := opts.NewDFA()
	return reconcile.Reconcile(d, scanned), nil
}
