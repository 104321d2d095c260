package huffman

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// lengthTableSize is the size of the code length table: one byte per
	// possible byte value.
	lengthTableSize = NumSymbols

	// headerSize is the size of the full header: the code length table
	// followed by the little-endian uint64 symbol count.
	headerSize = lengthTableSize + 8
)

// Header is the fixed-size preamble of an encoded stream.
//
// On the wire it is 256 bytes of code lengths, indexed by byte value (0 for
// bytes that do not occur), followed by InputSize as a little-endian uint64.
type Header struct {
	Lengths   [NumSymbols]byte
	InputSize uint64
}

// WriteTo writes the encoded header to w.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	var buf [headerSize]byte
	copy(buf[:lengthTableSize], h.Lengths[:])
	binary.LittleEndian.PutUint64(buf[lengthTableSize:], h.InputSize)
	n, err := w.Write(buf[:])
	return int64(n), err
}

var _ io.WriterTo = Header{}

// ReadHeader reads and validates the header of an encoded stream.  A header
// that is cut short, or that fails Validate, yields an error wrapping
// ErrMalformedHeader.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if _, err := io.ReadFull(r, h.Lengths[:]); err != nil {
		return Header{}, headerReadError("code length table", err)
	}

	var count [8]byte
	if _, err := io.ReadFull(r, count[:]); err != nil {
		return Header{}, headerReadError("symbol count", err)
	}
	h.InputSize = binary.LittleEndian.Uint64(count[:])

	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

func headerReadError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: short %s", ErrMalformedHeader, what)
	}
	return fmt.Errorf("huffman: reading header: %w", err)
}

// Validate checks that the header describes a usable code: at least one
// symbol, a non-zero symbol count, no code longer than 64 bits, and code
// lengths that satisfy the Kraft equality.  The one permitted exception to
// the Kraft equality is a single symbol with a 1-bit code.
func (h Header) Validate() error {
	var countArray [maxBitsPerCode + 1]int
	var numSymbols int
	var maxSize byte
	for symbol, size := range h.Lengths {
		if size == 0 {
			continue
		}
		if size > maxBitsPerCode {
			return fmt.Errorf("%w: byte %#02x has bit length %d, max %d", ErrMalformedHeader, symbol, size, maxBitsPerCode)
		}
		countArray[size]++
		numSymbols++
		if maxSize < size {
			maxSize = size
		}
	}

	if numSymbols == 0 {
		return fmt.Errorf("%w: no symbols", ErrMalformedHeader)
	}
	if h.InputSize == 0 {
		return fmt.Errorf("%w: symbol count is zero", ErrMalformedHeader)
	}
	if numSymbols == 1 {
		if maxSize != 1 {
			return fmt.Errorf("%w: lone symbol must have bit length 1, got %d", ErrMalformedHeader, maxSize)
		}
		return nil
	}

	// Walk down the levels, tracking how many code slots are still free.
	// Every free slot must eventually hold at least one symbol, which keeps
	// free small enough to never overflow.
	free := 1
	remaining := numSymbols
	for size := 1; size <= int(maxSize); size++ {
		free = free*2 - countArray[size]
		remaining -= countArray[size]
		if free < 0 {
			return fmt.Errorf("%w: over-subscribed Huffman code at bit length %d", ErrMalformedHeader, size)
		}
		if free > remaining {
			return fmt.Errorf("%w: incomplete Huffman code at bit length %d", ErrMalformedHeader, size)
		}
	}
	return nil
}

// Tree rebuilds the canonical decoding tree described by the code lengths.
func (h Header) Tree() (*Tree[uint8], error) {
	return TreeFromLengths(h.Lengths)
}
