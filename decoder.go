package huffman

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

var errNotInitialized = errors.New("huffman: Decoder used before Init")

// Decoder walks a canonical Huffman tree one bit at a time.
//
// The cursor starts at the root.  Each bit moves it to the left child (0) or
// the right child (1).  Reaching a leaf emits its byte, puts the cursor back
// at the root, and counts down the symbols still expected; at zero the
// Decoder is finished and ignores any further bits.
type Decoder struct {
	root      *Tree[uint8]
	cursor    *Tree[uint8]
	remaining uint64
}

// Init initializes this Decoder from a header.  The header is validated
// here even when it came from ReadHeader, since callers may also build one
// by hand.
func (d *Decoder) Init(h Header) error {
	if err := h.Validate(); err != nil {
		return err
	}
	root, err := h.Tree()
	if err != nil {
		return err
	}
	*d = Decoder{
		root:      root,
		cursor:    root,
		remaining: h.InputSize,
	}
	return nil
}

// Finished returns true once every symbol promised by the header has been
// decoded.
func (d *Decoder) Finished() bool {
	return d.remaining == 0
}

// Remaining returns the number of symbols still to be decoded.
func (d *Decoder) Remaining() uint64 {
	return d.remaining
}

// Decode consumes the bits of src, least significant bit of each byte
// first, and appends each decoded byte to dst.  It returns the extended dst
// and the number of bytes of src consumed.  Once the Decoder is finished it
// consumes nothing more, so the zero bits padding the last byte are never
// interpreted.
func (d *Decoder) Decode(dst, src []byte) ([]byte, int, error) {
	if d.root == nil {
		return dst, 0, errNotInitialized
	}

	for i, b := range src {
		if d.remaining == 0 {
			return dst, i, nil
		}
		for bit := 0; bit < 8; bit++ {
			next := d.cursor.Left
			if b&1 != 0 {
				next = d.cursor.Right
			}
			b >>= 1

			if next == nil {
				return dst, i, fmt.Errorf("%w: no code matches bit %d of byte %d", ErrCorruptPayload, bit, i)
			}
			if !next.IsLeaf() {
				d.cursor = next
				continue
			}

			dst = append(dst, next.Symbol)
			d.cursor = d.root
			d.remaining--
			if d.remaining == 0 {
				return dst, i + 1, nil
			}
		}
	}
	return dst, len(src), nil
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tRemaining() = %d\n", d.remaining)
	if d.root != nil {
		codes := d.root.Codes()
		for symbol, hc := range codes {
			if hc.Size != 0 {
				fmt.Fprintf(&buf, "\tDecode(%s) = %d\n", hc, symbol)
			}
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// Decode reads an encoded stream from r and writes the decoded bytes to w.
//
// It fails with ErrMalformedHeader if the header is short or invalid, and
// with ErrTruncatedPayload if r ends before every symbol has been decoded.
// Bytes after the end of the payload are left unread in r's buffer.
func Decode(r io.Reader, w io.Writer) error {
	br := bufio.NewReaderSize(r, chunkSize)
	h, err := ReadHeader(br)
	if err != nil {
		return err
	}

	var d Decoder
	if err := d.Init(h); err != nil {
		return err
	}

	bw := bufio.NewWriterSize(w, chunkSize)
	src := make([]byte, chunkSize)
	dst := make([]byte, 0, 8*chunkSize)
	for !d.Finished() {
		n, rerr := br.Read(src)

		var derr error
		dst, _, derr = d.Decode(dst[:0], src[:n])
		if _, err := bw.Write(dst); err != nil {
			return fmt.Errorf("huffman: writing output: %w", err)
		}
		if derr != nil {
			return derr
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("huffman: reading payload: %w", rerr)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("huffman: writing output: %w", err)
	}
	if !d.Finished() {
		return fmt.Errorf("%w: %d of %d symbols missing", ErrTruncatedPayload, d.Remaining(), h.InputSize)
	}
	return nil
}
