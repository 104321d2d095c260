package huffman

import (
	"fmt"
	"io"
)

// chunkSize is the size of the buffers used to stream input and output.
const chunkSize = 32 << 10

// Histogram holds the number of occurrences of each byte value.
type Histogram [NumSymbols]uint64

// CountFrequencies reads r to exhaustion and returns the number of times
// each byte value occurred.  It returns ErrEmptyInput if r yields no bytes.
func CountFrequencies(r io.Reader) (Histogram, error) {
	var h Histogram
	buf := make([]byte, chunkSize)
	var total uint64
	for {
		n, err := r.Read(buf)
		h.Add(buf[:n])
		total += uint64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Histogram{}, fmt.Errorf("huffman: counting frequencies: %w", err)
		}
	}
	if total == 0 {
		return Histogram{}, ErrEmptyInput
	}
	return h, nil
}

// Add counts the bytes of p in addition to those already counted.
func (h *Histogram) Add(p []byte) {
	for _, b := range p {
		h[b]++
	}
}

// Total returns the total number of bytes counted.
func (h *Histogram) Total() uint64 {
	var sum uint64
	for _, count := range h {
		sum += count
	}
	return sum
}

// Distinct returns the number of byte values with a non-zero count.
func (h *Histogram) Distinct() int {
	var n int
	for _, count := range h {
		if count != 0 {
			n++
		}
	}
	return n
}
