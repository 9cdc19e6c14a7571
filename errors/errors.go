// Package errors defines all exported error sentinels for the topnselect module.
//
// This is the single source of truth for error values. The top-level
// topnselect package, the fixture package and the internal selector packages
// all import from here, so errors.Is checks work across package boundaries.
package errors

import "errors"

// Selection errors
var (
	ErrEmptyStructure        = errors.New("topnselect: structure is empty")
	ErrIndexOutOfRange       = errors.New("topnselect: index out of range")
	ErrUnimplementedStrategy = errors.New("topnselect: pivot strategy not implemented")
)

// Construction errors
var (
	ErrInvalidTopN       = errors.New("topnselect: topN must not be negative")
	ErrInvalidCapacity   = errors.New("topnselect: capacity must not be negative")
	ErrInvalidLoadFactor = errors.New("topnselect: load factor must be a positive finite number")
	ErrUnknownAlgorithm  = errors.New("topnselect: unknown algorithm")
	ErrUnknownVariant    = errors.New("topnselect: unknown selector variant")
)

// Fixture errors
var (
	ErrEmptyFixture   = errors.New("topnselect: fixture has no items")
	ErrInvalidMagic   = errors.New("topnselect: invalid fixture magic number")
	ErrInvalidVersion = errors.New("topnselect: unsupported fixture version")
	ErrTruncatedFile  = errors.New("topnselect: fixture file is truncated")
	ErrChecksumFailed = errors.New("topnselect: fixture checksum verification failed")
)

// Benchmark harness errors
var (
	ErrInvalidConfig  = errors.New("topnselect: invalid benchmark configuration")
	ErrFixtureMutated = errors.New("topnselect: fixture was modified during a trial")
	ErrVerifyMismatch = errors.New("topnselect: selector result differs from reference")
	ErrNoSamples      = errors.New("topnselect: statistics have no samples")
)
