package huffman

import (
	"bufio"
	"io"
)

// maxBitsPerChunk bounds how many code bits are added to the accumulator at
// once, so that up to 7 pending bits plus one chunk fit in 64 bits.
const maxBitsPerChunk = 56

// bitWriter packs codes into bytes, first bit in the least significant
// position of each byte.
type bitWriter struct {
	w      *bufio.Writer
	bits   uint64
	bitLen byte
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: bufio.NewWriterSize(w, chunkSize)}
}

// WriteCode appends the bits of hc.
func (bw *bitWriter) WriteCode(hc Code) error {
	bits, size := hc.Bits, hc.Size
	for size != 0 {
		chunk := size
		if chunk > maxBitsPerChunk {
			chunk = maxBitsPerChunk
		}
		bw.bits |= (bits & (uint64(1)<<chunk - 1)) << bw.bitLen
		bw.bitLen += chunk
		bits >>= chunk
		size -= chunk

		for bw.bitLen >= 8 {
			if err := bw.w.WriteByte(byte(bw.bits)); err != nil {
				return err
			}
			bw.bits >>= 8
			bw.bitLen -= 8
		}
	}
	return nil
}

// Flush writes out the last partial byte, padded with zero bits, and
// flushes the underlying buffer.
func (bw *bitWriter) Flush() error {
	if bw.bitLen != 0 {
		if err := bw.w.WriteByte(byte(bw.bits)); err != nil {
			return err
		}
		bw.bits = 0
		bw.bitLen = 0
	}
	return bw.w.Flush()
}
