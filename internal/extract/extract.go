// Package extract implements the content-hash side of the fingerprint
// pipeline: it walks normalized input through a rolling hash, fires a
// Bloom-filter insert at every content-defined trigger point, and (for
// large inputs) fans that walk out across a bounded worker pool.
package extract

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/greatroar/fuzzyhash/bloom"
	"github.com/greatroar/fuzzyhash/internal/normalize"
	"github.com/greatroar/fuzzyhash/internal/rollinghash"
)

// TargetFeatures is the number of trigger points an extraction aims for
// over the whole input. The adaptive modulus is derived from this target
// so that a Bloom filter sized for ~1200 features stays near its optimal
// fill rate regardless of input length. Parallel derives its modulus from
// the whole input length too, so its chunks share this one target.
const TargetFeatures = 1200

// ParallelThreshold is the input length above which fuzzyhash.Generate
// uses Parallel (when enabled) instead of a single Sequential pass.
const ParallelThreshold = 1 << 20 // 1MiB

// minChunkSize is the floor on the chunk size Parallel splits data into.
// Only the final chunk of an input can be shorter.
const minChunkSize = 256 << 10 // 256KiB

// ParallelSimilarityFloor is the minimum Jaccard-equivalent agreement
// (on a 0-100 scale) a parallel extraction is required to reach against
// a sequential extraction of the same input. Chunk boundaries mean the
// two need not produce byte-identical filters, only highly similar ones.
const ParallelSimilarityFloor = 80

// Modulus computes the adaptive trigger modulus for an input of length
// n, given a minimum modulus m0: M = max(m0, n/TargetFeatures) once n
// exceeds TargetFeatures*m0, otherwise M = m0. m0 must be a positive
// integer (spec.md §3); a caller-supplied 0 is treated as 1 so that the
// modulus is never zero, which would make the trigger check divide by
// zero.
func Modulus(n int, m0 uint64) uint64 {
	if m0 == 0 {
		m0 = 1
	}

	if uint64(n) > TargetFeatures*m0 {
		m := uint64(n) / TargetFeatures
		if m < m0 {
			return m0
		}
		return m
	}
	return m0
}

// Sequential walks data once, normalizing each byte, updating a single
// rolling hash, and inserting the trailing 64-byte feature window into
// a Bloom filter at every trigger point. The first WindowSize bytes
// (indices 0 through WindowSize-1) never trigger.
func Sequential(data []byte, minModulus uint64) *bloom.Filter {
	modulus := Modulus(len(data), minModulus)
	return scan(data, modulus)
}

func scan(data []byte, modulus uint64) *bloom.Filter {
	var h rollinghash.BuzHash
	filter := bloom.New()

	// window is a ring buffer of the trailing WindowSize bytes, mirroring
	// rollinghash.BuzHash's own pos/buf scheme, so recording a byte stays
	// O(1) regardless of how often (or rarely) a trigger fires.
	var window [rollinghash.WindowSize]byte
	windowLen := 0
	pos := 0

	var ordered [rollinghash.WindowSize]byte

	for i, raw := range data {
		b := normalize.Byte(raw)
		h.Update(b)

		window[pos] = b
		pos = (pos + 1) % rollinghash.WindowSize
		if windowLen < rollinghash.WindowSize {
			windowLen++
		}

		if i >= rollinghash.WindowSize && h.Trigger(modulus) {
			// Only linearize the ring buffer on an actual trigger: oldest
			// byte starts at pos once the window has filled.
			n := copy(ordered[:], window[pos:])
			copy(ordered[n:], window[:pos])
			filter.Add(ordered[:windowLen])
		}
	}

	return filter
}

// Parallel splits data into chunks and extracts each chunk's features
// independently and concurrently, merging the resulting Bloom filters
// with Union. Each chunk gets its own rolling hash and window state:
// trigger points never straddle a chunk boundary, and a trigger within
// the first WindowSize bytes of any chunk after the first is lost, so
// the result need not be byte-identical to Sequential's, only highly
// similar (see ParallelSimilarityFloor).
//
// ctx governs the worker pool only; chunk extraction itself cannot
// fail, so the returned error is nil unless ctx is done before some
// chunk's worker starts, in which case it is ctx's error.
func Parallel(ctx context.Context, data []byte, minModulus uint64) (*bloom.Filter, error) {
	chunkSize := ParallelThreshold / 4
	if chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}

	modulus := Modulus(len(data), minModulus)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	numChunks := (len(data) + chunkSize - 1) / chunkSize
	partials := make([]*bloom.Filter, numChunks)

	for i := 0; i < numChunks; i++ {
		i := i
		start := i * chunkSize
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		chunk := data[start:end]

		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			partials[i] = scan(chunk, modulus)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := bloom.New()
	for _, p := range partials {
		merged.Union(p)
	}
	return merged, nil
}
