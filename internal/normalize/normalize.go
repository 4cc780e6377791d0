// Package normalize implements the byte-level normalization used by the
// content-hash side of the fingerprint pipeline.
//
// Normalization is a pure, stateless, total function: it folds ASCII case
// and collapses the C0 control bytes so that small formatting differences
// (case changes, stray control characters) don't shift feature boundaries
// in the rolling hash. It is applied lazily, one byte at a time, as the
// rolling hash and feature window are updated — there is no batch
// normalized copy of the input.
//
// The structural (entropy) side of the pipeline deliberately does not use
// this package: it measures the shape of the raw byte distribution, and
// folding case or controls there would throw away signal.
package normalize

// Byte maps a single raw byte to its normalized form.
//
//   - 0x09 (tab), 0x0A (LF), 0x0D (CR) pass through unchanged.
//   - other bytes below 0x20 collapse to 0x20 (space).
//   - 'A'-'Z' fold to 'a'-'z'.
//   - everything else, including 0x7F and all bytes >= 0x80, passes through.
func Byte(b byte) byte {
	switch {
	case b == 0x09 || b == 0x0A || b == 0x0D:
		return b
	case b < 0x20:
		return 0x20
	case b >= 'A' && b <= 'Z':
		return b + 0x20
	default:
		return b
	}
}
