// Package errs defines the error kinds used across the partitioning engine
// (see spec §7: NoFilesFound, SpeculationImpossible, StreamError,
// MalformedJSONBoundary).
package errs

import "errors"

// ErrNoFilesFound indicates the bucketizer's file enumeration matched
// nothing. It is diagnostic only: callers should log it and continue with
// an empty partition set, not treat it as fatal.
var ErrNoFilesFound = errors.New("jpartition: no files matched")

// ErrSpeculationImpossible indicates the speculation table ended up empty
// (no key qualifies as a single-level anchor). It is fatal to the
// speculation strategy; callers may fall back to the full-pass strategy.
var ErrSpeculationImpossible = errors.New("jpartition: speculation table is empty")

// ErrStreamError wraps an I/O failure encountered by a worker. It is fatal
// to the whole batch; no partial commit is produced.
var ErrStreamError = errors.New("jpartition: stream error")

// ErrMalformedJSONBoundary indicates the getEndState prelude could not
// parse a leading quoted string at a partition's start. It is always
// recovered locally (the reader is reset to the partition start), so this
// value exists for diagnostics/tests rather than as a propagated error.
var ErrMalformedJSONBoundary = errors.New("jpartition: malformed JSON boundary")
