// Package fingerprint implements the binary fingerprint format: the
// on-disk/on-wire encoding of a dual-layer fuzzy hash, and the
// similarity score between two decoded fingerprints.
package fingerprint

import (
	"encoding/binary"
	"fmt"

	"github.com/greatroar/fuzzyhash/bloom"
	"github.com/greatroar/fuzzyhash/internal/entropy"
)

// magicByte identifies the fingerprint format ('H').
const magicByte = 0x48

// version is the only fingerprint format version this package produces
// or accepts.
const version = 1

// headerSize is the size of the fixed header: magic, version, and a
// little-endian u16 struct_len.
const headerSize = 4

// bloomSize is the size in bytes of the encoded content Bloom filter.
const bloomSize = bloom.SizeBits / 8

// minSize is the smallest a valid encoded fingerprint can be: header
// plus the fixed-size Bloom filter, with zero bytes of structural data.
const minSize = headerSize + bloomSize

// A Fingerprint is a decoded dual-layer fuzzy hash: a content Bloom
// filter plus a packed structural (entropy) vector.
type Fingerprint struct {
	Version     uint8
	Flags       uint8
	ContentHash *bloom.Filter
	StructData  []byte
}

// New builds a Fingerprint from a content filter and structural vector.
func New(content *bloom.Filter, structData []byte) *Fingerprint {
	return &Fingerprint{
		Version:     version,
		ContentHash: content,
		StructData:  structData,
	}
}

// Size returns the encoded size of the fingerprint in bytes.
func (f *Fingerprint) Size() int {
	return headerSize + bloomSize + len(f.StructData)
}

// Encode serializes the fingerprint to its binary wire format:
//
//	offset 0x00        magic byte (0x48)
//	offset 0x01        version
//	offset 0x02-0x03   struct_len, u16 LE
//	offset 0x04-0x403  content Bloom filter, 1024 bytes
//	offset 0x404+      structural data, struct_len bytes
func (f *Fingerprint) Encode() []byte {
	out := make([]byte, f.Size())

	out[0] = magicByte
	out[1] = f.Version
	binary.LittleEndian.PutUint16(out[2:4], uint16(len(f.StructData)))

	copy(out[headerSize:headerSize+bloomSize], f.ContentHash.Bytes())
	copy(out[headerSize+bloomSize:], f.StructData)

	return out
}

// Decode parses a Fingerprint from its binary wire format. It returns
// an *Error whose Kind is ErrInvalidSize, ErrInvalidMagic, or
// ErrUnsupportedVersion on malformed input.
func Decode(b []byte) (*Fingerprint, error) {
	if len(b) < minSize {
		return nil, &Error{Kind: ErrInvalidSize}
	}
	if b[0] != magicByte {
		return nil, &Error{Kind: ErrInvalidMagic}
	}

	v := b[1]
	if v != version {
		return nil, &Error{Kind: ErrUnsupportedVersion, Version: v}
	}

	structLen := binary.LittleEndian.Uint16(b[2:4])
	structOff := headerSize + bloomSize
	structEnd := structOff + int(structLen)
	if len(b) < structEnd {
		return nil, &Error{Kind: ErrInvalidSize}
	}

	content, err := bloom.FromBytes(b[headerSize:structOff])
	if err != nil {
		// bloomSize is fixed above, so this can only happen if the
		// constants here and in package bloom ever drift apart.
		return nil, &Error{Kind: ErrInvalidSize}
	}

	structData := make([]byte, structLen)
	copy(structData, b[structOff:structEnd])

	return &Fingerprint{
		Version:     v,
		ContentHash: content,
		StructData:  structData,
	}, nil
}

// Equal reports whether f and other decode to the same fingerprint
// (same version, content hash, and structural data).
func (f *Fingerprint) Equal(other *Fingerprint) bool {
	if f.Version != other.Version {
		return false
	}
	if len(f.StructData) != len(other.StructData) {
		return false
	}
	for i := range f.StructData {
		if f.StructData[i] != other.StructData[i] {
			return false
		}
	}
	return *f.ContentHash == *other.ContentHash
}

// String returns a short human-readable summary, e.g.
// "fuzzyhash v1, struct_len=8, size=1036".
func (f *Fingerprint) String() string {
	return fmt.Sprintf("fuzzyhash v%d, struct_len=%d, size=%d",
		f.Version, len(f.StructData), f.Size())
}

// Compare scores the similarity between two fingerprints on a 0-100
// scale:
//
//	s = alpha*structuralSimilarity + (1-alpha)*contentSimilarity
//	score = floor(s * 100), clamped to [0, 100]
//
// alpha weights structural (entropy-shape) similarity against content
// (Bloom/Jaccard) similarity; the reference weighting is 0.3. alpha is
// clamped to [0, 1] on ingress, so callers passing an out-of-range
// weighting still get a well-defined mix rather than a negative or
// over-unity combination. floor is deliberate: a 99.6%-similar pair
// reports 99, not 100, so that only byte-identical structural and
// content data score a perfect 100.
func Compare(a, b *Fingerprint, alpha float64) uint8 {
	switch {
	case alpha < 0:
		alpha = 0
	case alpha > 1:
		alpha = 1
	}

	contentSim := a.ContentHash.Jaccard(b.ContentHash)
	structSim := float64(entropy.Similarity(a.StructData, b.StructData))

	combined := alpha*structSim + (1-alpha)*contentSim
	score := combined * 100

	if score < 0 {
		return 0
	}
	if score >= 100 {
		return 100
	}
	return uint8(score)
}
