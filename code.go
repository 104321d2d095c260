package huffman

import (
	"fmt"
	mathbits "math/bits"
	"strconv"
	"strings"
)

// maxBitsPerCode is the longest code this package will assign or accept.
const maxBitsPerCode = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The least significant bit
	// of Bits is the first bit, i.e. the first one written to the stream and
	// the first one consumed when walking the tree from the root.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// MakeReversedCode constructs a Code from a sequence of bits that's in the
// wrong order, i.e. the least significant bit is the *last* bit in the
// sequence, instead of the first.
func MakeReversedCode(size byte, bits uint64) Code {
	return MakeCode(size, reverseBits(size, bits))
}

// Reversed returns the corresponding Code with the bits in reverse order.
func (hc Code) Reversed() Code {
	return MakeReversedCode(hc.Size, hc.Bits)
}

// Bit returns the i'th bit of the code, counting from the first.
func (hc Code) Bit(i byte) byte {
	return byte(hc.Bits>>i) & 1
}

// HasPrefix reports whether prefix is a prefix of hc.  Every code is a
// prefix of itself.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	if prefix.Size == 0 {
		return true
	}
	mask := uint64(1)<<prefix.Size - 1
	return hc.Bits&mask == prefix.Bits&mask
}

// String returns the string representation of this Code, with the bits in
// stream order.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := byte(0); i < hc.Size; i++ {
		sb.WriteByte('0' + hc.Bit(i))
	}
	return strconv.Quote(sb.String())
}

var _ fmt.Stringer = Code{}

func reverseBits(size byte, bits uint64) uint64 {
	return mathbits.Reverse64(bits) >> (64 - size)
}
