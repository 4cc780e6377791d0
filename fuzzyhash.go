// Package fuzzyhash implements Dual-Layer Adaptive Hashing: a fuzzy
// file-fingerprinting scheme that detects similarity between inputs
// even after small insertions, deletions, or edits, by combining a
// content-defined Bloom filter with a block-entropy structural vector.
package fuzzyhash

import (
	"context"
	"errors"

	"github.com/greatroar/fuzzyhash/fingerprint"
	"github.com/greatroar/fuzzyhash/internal/entropy"
	"github.com/greatroar/fuzzyhash/internal/extract"
)

// defaultAlpha weights structural similarity at 30%, content similarity
// at 70%, when comparing two fingerprints.
const defaultAlpha = 0.3

// defaultMinModulus is the floor on the adaptive trigger modulus: with
// small inputs it controls feature density directly.
const defaultMinModulus = 16

// Config controls fingerprint generation.
type Config struct {
	// EnableParallel allows Generate to split large inputs across a
	// worker pool. It has no effect at or below extract.ParallelThreshold
	// bytes.
	EnableParallel bool

	// Alpha is the structural-vs-content weighting for callers to pass to
	// Compare, which takes alpha as an argument; Generate does not read
	// it. See fingerprint.Compare.
	Alpha float64

	// MinModulus is the floor on the adaptive BuzHash trigger modulus.
	// Lower values extract more, smaller features; this matters mostly
	// for small inputs, since the modulus scales up automatically once
	// the input is large enough to risk saturating the Bloom filter.
	MinModulus uint64
}

// DefaultConfig returns the reference configuration: parallel extraction
// enabled, alpha=0.3, min-modulus=16.
func DefaultConfig() Config {
	return Config{
		EnableParallel: true,
		Alpha:          defaultAlpha,
		MinModulus:     defaultMinModulus,
	}
}

// ErrEmptyInput is returned by Generate when data is empty: an empty
// input has no features and no entropy blocks, so no meaningful
// fingerprint can be produced.
var ErrEmptyInput = errors.New("fuzzyhash: empty input")

// Generate computes a fingerprint for data under cfg.
//
// Content extraction runs in parallel when cfg.EnableParallel is set
// and len(data) exceeds extract.ParallelThreshold; otherwise it runs as
// a single sequential pass. Either way the structural vector is always
// computed in a single pass, since entropy blocks are independent by
// construction and don't need fan-out to stay fast.
//
// cfg.MinModulus must be a positive integer (spec.md §3); a zero value
// is treated as 1 rather than rejected, since a zero modulus would
// otherwise divide by zero the first time a trigger is checked.
func Generate(ctx context.Context, data []byte, cfg Config) (*fingerprint.Fingerprint, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if cfg.MinModulus == 0 {
		cfg.MinModulus = 1
	}

	structData := entropy.Vector(data)

	if cfg.EnableParallel && len(data) > extract.ParallelThreshold {
		filter, err := extract.Parallel(ctx, data, cfg.MinModulus)
		if err != nil {
			return nil, err
		}
		return fingerprint.New(filter, structData), nil
	}

	filter := extract.Sequential(data, cfg.MinModulus)
	return fingerprint.New(filter, structData), nil
}

// Compare scores the similarity between two fingerprints on a 0-100
// scale. It is a thin forwarding wrapper over fingerprint.Compare.
func Compare(a, b *fingerprint.Fingerprint, alpha float64) uint8 {
	return fingerprint.Compare(a, b, alpha)
}
