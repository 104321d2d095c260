package huffman

import (
	"errors"
)

// ErrEmptyInput is returned when a code table is requested for a stream
// that contains no bytes at all.
var ErrEmptyInput = errors.New("huffman: empty input")

// ErrMalformedHeader is returned when the 264-byte header of an encoded
// stream is short or describes an impossible code.
var ErrMalformedHeader = errors.New("huffman: malformed header")

// ErrTruncatedPayload is returned when the encoded payload ends before the
// number of symbols promised by the header has been decoded.
var ErrTruncatedPayload = errors.New("huffman: truncated payload")

// ErrCorruptPayload is returned when the payload contains a bit sequence
// that is not a code in the table.
var ErrCorruptPayload = errors.New("huffman: corrupt payload")

// ErrInputMismatch is returned by Encode when the stream being encoded is
// not the stream the Table was built from.
var ErrInputMismatch = errors.New("huffman: input does not match code table")

// ErrCodeTooLong is returned when a histogram is so skewed that some code
// would need more than 64 bits.
var ErrCodeTooLong = errors.New("huffman: code length exceeds 64 bits")
