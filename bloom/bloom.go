// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bloom implements the fixed-size Bloom filter used as the
// content-similarity half of a fingerprint.
//
// Unlike a general-purpose Bloom filter, this one has no Config or
// Optimize step: its size (8192 bits) and hash count (5) are fixed so
// that filters built by different processes, or different chunks of the
// same file processed in parallel, can be compared and merged bit for
// bit. Keys are feature windows (raw byte slices), not pre-hashed
// values — the filter owns its own hash function so that callers never
// need to agree on one independently.
package bloom

import (
	"encoding/binary"
	"math/bits"
)

// SizeBits is the number of bits in a Filter.
const SizeBits = 8192

// numWords is the number of 64-bit words backing a Filter (8192 / 64).
const numWords = SizeBits / 64

// NumHashes is the number of hash functions (and therefore set bits per
// insert) a Filter uses.
const NumHashes = 5

// hashSeeds are the fixed seeds for the k hash functions. Changing any
// of these changes every filter this package has ever produced.
var hashSeeds = [NumHashes]uint64{
	0x517cc1b727220a95,
	0x5bc42f4b7f0db7e3,
	0x9e3779b97f4a7c15,
	0xc3a5c85c97cb3127,
	0xb492b66fbe98f273,
}

// fxMul is the multiplier used by fxHash, chosen (as in rustc's FxHash)
// for its bit-mixing properties.
const fxMul = 0x517cc1b727220a95

// A Filter is a fixed 8192-bit Bloom filter over byte-slice keys.
//
// The zero value is an empty filter, ready to use.
type Filter struct {
	bits [numWords]uint64
}

// New returns an empty Filter. Equivalent to new(Filter).
func New() *Filter {
	return &Filter{}
}

// fxHash hashes data under seed using an FxHash-style mixer: rotate the
// running hash left 5 bits, fold in the next byte, then multiply by a
// fixed odd constant.
func fxHash(data []byte, seed uint64) uint64 {
	h := seed
	for _, b := range data {
		h = (h<<5 | h>>59)
		h += uint64(b)
		h *= fxMul
	}
	return h
}

// indices returns the NumHashes bit positions data maps to.
func indices(data []byte) [NumHashes]int {
	var idx [NumHashes]int
	for i, seed := range hashSeeds {
		idx[i] = int(fxHash(data, seed) % SizeBits)
	}
	return idx
}

func (f *Filter) setBit(i int) {
	f.bits[i/64] |= 1 << uint(i%64)
}

func (f *Filter) getBit(i int) bool {
	return f.bits[i/64]&(1<<uint(i%64)) != 0
}

// Add inserts data's feature key into the filter.
func (f *Filter) Add(data []byte) {
	for _, i := range indices(data) {
		f.setBit(i)
	}
}

// Has reports whether data may have been added to the filter. A false
// result is certain; a true result may be a false positive.
func (f *Filter) Has(data []byte) bool {
	for _, i := range indices(data) {
		if !f.getBit(i) {
			return false
		}
	}
	return true
}

// Union merges other into f in place (bitwise OR). Union is commutative
// and associative, which is what licenses building a filter out of
// independently-processed chunks and merging the partial results in any
// order.
func (f *Filter) Union(other *Filter) {
	for i := range f.bits {
		f.bits[i] |= other.bits[i]
	}
}

// Popcount returns the number of set bits in the filter.
func (f *Filter) Popcount() int {
	n := 0
	for _, w := range f.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether no bit in the filter is set.
func (f *Filter) Empty() bool {
	for _, w := range f.bits {
		if w != 0 {
			return false
		}
	}
	return true
}

// Clear resets every bit to zero.
func (f *Filter) Clear() {
	for i := range f.bits {
		f.bits[i] = 0
	}
}

// Jaccard returns the Jaccard similarity |f ∩ other| / |f ∪ other|
// between two filters, as a value in [0, 1]. Two empty filters are
// defined as identical (similarity 1.0), since an empty intersection
// over an empty union is otherwise undefined.
func (f *Filter) Jaccard(other *Filter) float64 {
	var intersection, union int
	for i := range f.bits {
		intersection += bits.OnesCount64(f.bits[i] & other.bits[i])
		union += bits.OnesCount64(f.bits[i] | other.bits[i])
	}
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

// Bytes returns the filter's bits packed as little-endian 64-bit words,
// SizeBits/8 bytes in length. The returned slice is a fresh copy.
func (f *Filter) Bytes() []byte {
	out := make([]byte, SizeBits/8)
	for i, w := range f.bits {
		binary.LittleEndian.PutUint64(out[i*8:], w)
	}
	return out
}

// FromBytes reconstructs a Filter from the encoding produced by Bytes.
// It returns an error if b is not exactly SizeBits/8 bytes long.
func FromBytes(b []byte) (*Filter, error) {
	if len(b) != SizeBits/8 {
		return nil, &SizeError{Got: len(b), Want: SizeBits / 8}
	}
	f := &Filter{}
	for i := range f.bits {
		f.bits[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return f, nil
}

// SizeError reports that a byte slice passed to FromBytes had the wrong
// length.
type SizeError struct {
	Got, Want int
}

func (e *SizeError) Error() string {
	return "bloom: wrong byte length for filter"
}
