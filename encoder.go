package huffman

import (
	"fmt"
	"io"
)

// Encode writes the header followed by the Huffman-coded contents of r to w.
//
// r must yield exactly the bytes the Table was built from.  A byte without a
// code, or a different total length, fails with ErrInputMismatch; by then
// part of the output may already have been written.
func (t *Table) Encode(r io.Reader, w io.Writer) error {
	bw := newBitWriter(w)
	if _, err := t.Header().WriteTo(bw.w); err != nil {
		return fmt.Errorf("huffman: writing header: %w", err)
	}

	buf := make([]byte, chunkSize)
	var seen uint64
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			hc := t.symbols[b].Code
			if hc.Size == 0 {
				return fmt.Errorf("%w: byte %#02x has no code", ErrInputMismatch, b)
			}
			if werr := bw.WriteCode(hc); werr != nil {
				return fmt.Errorf("huffman: writing payload: %w", werr)
			}
		}
		seen += uint64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("huffman: reading input: %w", err)
		}
	}

	if seen != t.inputSize {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInputMismatch, t.inputSize, seen)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("huffman: writing payload: %w", err)
	}
	return nil
}

// Compress builds a Table from rs, rewinds rs to where it started, and
// encodes it to w.  It returns the Table for diagnostics.
func Compress(rs io.ReadSeeker, w io.Writer) (*Table, error) {
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("huffman: locating input: %w", err)
	}

	t, err := BuildTable(rs)
	if err != nil {
		return nil, err
	}

	if _, err := rs.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("huffman: rewinding input: %w", err)
	}
	if err := t.Encode(rs, w); err != nil {
		return nil, err
	}
	return t, nil
}
