package huffman

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// Table is a canonical Huffman code for bytes, computed from the byte
// frequencies of one input stream.  A Table is immutable once built.
type Table struct {
	symbols    [NumSymbols]SymbolInfo
	numSymbols int
	minSize    byte
	maxSize    byte
	inputSize  uint64
}

// BuildTable reads r to exhaustion and returns the canonical Huffman code
// for its contents.  It returns ErrEmptyInput if r yields no bytes.
//
// Encoding needs a second pass over the same bytes: see Table.Encode and
// Compress.
func BuildTable(r io.Reader) (*Table, error) {
	h, err := CountFrequencies(r)
	if err != nil {
		return nil, err
	}
	return NewTable(h)
}

// NewTable returns the canonical Huffman code for the byte frequencies in h.
func NewTable(h Histogram) (*Table, error) {
	tree, err := TreeFromHistogram(h)
	if err != nil {
		return nil, err
	}
	return newTableFromTree(tree)
}

func newTableFromTree(tree *Tree[uint64]) (*Table, error) {
	// Step 1: flatten the tree into (symbol, depth, count) entries.

	entries := make(bySize, 0, NumSymbols)
	walkLeaves(tree, func(leaf *Tree[uint64], path Code) {
		entries = append(entries, symbolAndSize{leaf.Symbol, path.Size, leaf.Value})
	})

	// A lone symbol sits at depth 0.  Give it the 1-bit code "0" so that a
	// length of 0 in the header always means "absent".
	if len(entries) == 1 {
		entries[0].size = 1
	}

	// Step 2: sort by (size, symbol) ascending.

	entries.Sort()

	numSymbols := len(entries)
	minSize := entries[0].size
	maxSize := entries[numSymbols-1].size
	if maxSize > maxBitsPerCode {
		return nil, fmt.Errorf("%w: byte %#02x would need %d bits", ErrCodeTooLong, entries[numSymbols-1].symbol, maxSize)
	}

	t := &Table{
		numSymbols: numSymbols,
		minSize:    minSize,
		maxSize:    maxSize,
		inputSize:  tree.Value,
	}

	// Step 3: assign the codes sequentially, per
	// <https://en.wikipedia.org/wiki/Canonical_Huffman_code>.  The running
	// value has its first bit in the most significant position, so it gets
	// reversed before being stored.

	total := float64(t.inputSize)
	lastSize := minSize
	var code, nextCode uint64
	for _, item := range entries {
		if item.size > lastSize {
			nextCode <<= item.size - lastSize
			lastSize = item.size
		}
		code = nextCode
		nextCode++

		t.symbols[item.symbol] = SymbolInfo{
			Count:  item.count,
			Weight: float64(item.count) / total,
			Code:   MakeReversedCode(item.size, code),
		}
	}

	// The last code of a complete code is all ones.
	assert.Assertf(numSymbols == 1 || code == uint64(1)<<maxSize-1,
		"incomplete canonical code: last code %#x with %d bits", code, maxSize)

	return t, nil
}

// InputSize returns the number of bytes in the stream the Table was built
// from.
func (t *Table) InputSize() uint64 {
	return t.inputSize
}

// NumSymbols returns the number of distinct byte values with a code.
func (t *Table) NumSymbols() int {
	return t.numSymbols
}

// MinSize is the bit length of the shortest code.
func (t *Table) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *Table) MaxSize() byte {
	return t.maxSize
}

// Lookup returns the SymbolInfo for b, and false if b did not occur in the
// source.
func (t *Table) Lookup(b byte) (SymbolInfo, bool) {
	info := t.symbols[b]
	return info, info.Code.Size != 0
}

// SizeBySymbol returns the bit length of the code for each byte value, 0 for
// absent bytes.  This is all a decoder needs to rebuild the code.
func (t *Table) SizeBySymbol() [NumSymbols]byte {
	var out [NumSymbols]byte
	for symbol := range t.symbols {
		out[symbol] = t.symbols[symbol].Code.Size
	}
	return out
}

// Header returns the header that precedes the payload produced by Encode.
func (t *Table) Header() Header {
	return Header{Lengths: t.SizeBySymbol(), InputSize: t.inputSize}
}

// Entropy returns the Shannon entropy of the source, in bits per byte.
func (t *Table) Entropy() float64 {
	var sum float64
	for _, info := range t.symbols {
		if info.Count != 0 {
			sum -= info.Weight * math.Log2(info.Weight)
		}
	}
	return sum
}

// BareEncodedLen returns the size in bytes of the payload produced by
// Encode, not counting the header.
func (t *Table) BareEncodedLen() uint64 {
	var nbits uint64
	for _, info := range t.symbols {
		nbits += info.Count * uint64(info.Code.Size)
	}
	return (nbits + 7) / 8
}

// TotalEncodedLen returns the size in bytes of the output of Encode,
// including the header.
func (t *Table) TotalEncodedLen() uint64 {
	return t.BareEncodedLen() + headerSize
}

// Dump writes a programmer-readable debugging dump of the Table to the given
// writer.
func (t *Table) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Table{\n")
	fmt.Fprintf(&buf, "\tInputSize() = %d\n", t.inputSize)
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for symbol := range t.symbols {
		info := t.symbols[symbol]
		if info.Code.Size != 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, info.Code)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type symbolAndSize + type bySize {{{

type symbolAndSize struct {
	symbol byte
	size   byte
	count  uint64
}

type bySize []symbolAndSize

func (list bySize) Len() int {
	return len(list)
}

func (list bySize) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySize) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.size != b.size {
		return a.size < b.size
	}
	return a.symbol < b.symbol
}

func (list bySize) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = bySize(nil)

// }}}
