// Package huffman compresses byte streams with canonical Huffman codes.
//
// Encoding takes two passes over the input: BuildTable counts byte
// frequencies and derives a canonical code, then Table.Encode writes the
// header and the bit-packed payload.  Compress does both on an io.ReadSeeker.
// Decode reverses the process in a single pass.
//
// The encoded format is:
//
//	offset  size      content
//	0       256       code length in bits for each byte value (0 = absent)
//	256     8         number of encoded bytes, little-endian uint64
//	264     variable  codes, packed first bit in the least significant bit
//	                  of each byte, zero padded to a byte boundary
//
// Only the code lengths are stored.  Codes are assigned in order of
// increasing length and, within a length, increasing byte value, so the
// lengths determine the whole code.  An input made of a single distinct byte
// value codes it as the 1-bit code "0".
//
// References:
//
//	<https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.2.2
//
//	<https://en.wikipedia.org/wiki/Canonical_Huffman_code>
package huffman
