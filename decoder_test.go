package huffman

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func makeTestHistogram() Histogram {
	var h Histogram
	copy(h[:], []uint64{5, 9, 12, 13, 16, 45})
	return h
}

func makeTestHeader() Header {
	var h Header
	copy(h.Lengths[:], []byte{4, 4, 3, 3, 3, 1})
	h.InputSize = 100
	return h
}

func makeTestDecoder() Decoder {
	var d Decoder
	err := d.Init(makeTestHeader())
	if err != nil {
		panic(err)
	}
	return d
}

func TestDecoder_Dump(t *testing.T) {
	d := makeTestDecoder()

	expectDump := strings.Join([]string{
		"Decoder{\n",
		"\tRemaining() = 100\n",
		"\tDecode(\"1110\") = 0\n",
		"\tDecode(\"1111\") = 1\n",
		"\tDecode(\"100\") = 2\n",
		"\tDecode(\"101\") = 3\n",
		"\tDecode(\"110\") = 4\n",
		"\tDecode(\"0\") = 5\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = d.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestDecoder_Decode(t *testing.T) {
	d := makeTestDecoder()

	// 5 "0", 2 "100", 0 "1110", 4 "110", packed from the low bit up:
	// 0 100 1110 110 -> bits 0,1,0,0,1,1,1,0 | 1,1,0,0,0,0,0,0
	// The five trailing zero bits decode as five more 5s.
	src := []byte{0x72, 0x03}
	dst, n, err := d.Decode(nil, src)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 bytes consumed, got %d", n)
	}
	expect := []byte{5, 2, 0, 4, 5, 5, 5, 5, 5}
	if !bytes.Equal(expect, dst) {
		t.Errorf("wrong output:\n\texpect: %v\n\tactual: %v", expect, dst)
	}
	if d.Remaining() != 91 {
		t.Errorf("expected 91 symbols remaining, got %d", d.Remaining())
	}
}

func TestDecoder_StopsWhenFinished(t *testing.T) {
	var h Header
	h.Lengths['a'] = 1
	h.Lengths['b'] = 1
	h.InputSize = 3

	var d Decoder
	if err := d.Init(h); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// "aab" followed by padding (all ones, to prove it is not read) and a
	// second byte that must not be consumed at all.
	src := []byte{0xfc, 0xff}
	dst, n, err := d.Decode(nil, src)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 byte consumed, got %d", n)
	}
	if string(dst) != "aab" {
		t.Errorf("expected %q, got %q", "aab", dst)
	}
	if !d.Finished() {
		t.Errorf("expected the decoder to be finished")
	}

	dst, n, err = d.Decode(dst, src[1:])
	if err != nil || n != 0 || string(dst) != "aab" {
		t.Errorf("finished decoder consumed input: n=%d, dst=%q, err=%v", n, dst, err)
	}
}

func TestDecoder_ByteAtATime(t *testing.T) {
	input := []byte("A_DEAD_DAD_CEDED_A_BAD_BABE_A_BEADED_ABACA_BED")
	encoded := mustEncode(t, input)

	h, err := ReadHeader(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	var d Decoder
	if err := d.Init(h); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	var dst []byte
	for _, b := range encoded[headerSize:] {
		var n int
		dst, n, err = d.Decode(dst, []byte{b})
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 byte consumed, got %d", n)
		}
	}
	if !bytes.Equal(input, dst) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", input, dst)
	}
}

func TestDecoder_SingleSymbolCorrupt(t *testing.T) {
	var h Header
	h.Lengths['a'] = 1
	h.InputSize = 4

	var d Decoder
	if err := d.Init(h); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	dst, _, err := d.Decode(nil, []byte{0x04})
	if !errors.Is(err, ErrCorruptPayload) {
		t.Errorf("expected ErrCorruptPayload, got %v", err)
	}
	if string(dst) != "aa" {
		t.Errorf("expected %q before the bad bit, got %q", "aa", dst)
	}
}

func TestDecoder_InitInvalid(t *testing.T) {
	var h Header
	h.Lengths[0] = 1
	h.Lengths[1] = 1
	h.Lengths[2] = 1
	h.InputSize = 3

	var d Decoder
	if err := d.Init(h); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
}

func TestDecoder_Uninitialized(t *testing.T) {
	var d Decoder
	if _, _, err := d.Decode(nil, []byte{0}); err == nil {
		t.Errorf("expected an error from an uninitialized Decoder")
	}
}

func TestDecode_Errors(t *testing.T) {
	encoded := mustEncode(t, []byte("abracadabra"))

	type testRow struct {
		name   string
		input  []byte
		expect error
	}
	testData := [...]testRow{
		{name: "empty", input: nil, expect: ErrMalformedHeader},
		{name: "short-lengths", input: encoded[:100], expect: ErrMalformedHeader},
		{name: "short-count", input: encoded[:lengthTableSize+3], expect: ErrMalformedHeader},
		{name: "header-only", input: encoded[:headerSize], expect: ErrTruncatedPayload},
		{name: "short-payload", input: encoded[:len(encoded)-1], expect: ErrTruncatedPayload},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			err := Decode(bytes.NewReader(row.input), &bytes.Buffer{})
			if !errors.Is(err, row.expect) {
				t.Errorf("expected %v, got %v", row.expect, err)
			}
		})
	}
}

func TestDecode_TrailingData(t *testing.T) {
	encoded := mustEncode(t, []byte("abracadabra"))
	encoded = append(encoded, "trailing garbage"...)

	var out bytes.Buffer
	if err := Decode(bytes.NewReader(encoded), &out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if out.String() != "abracadabra" {
		t.Errorf("wrong output: %q", out.String())
	}
}

func TestDecoder_LongCodes(t *testing.T) {
	table, err := NewTable(fibonacciHistogram(65))
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	if table.MaxSize() != 64 {
		t.Fatalf("expected a 64-bit code, got max %d", table.MaxSize())
	}

	symbols := []byte{0, 64, 30, 1, 63}
	var buf bytes.Buffer
	bw := newBitWriter(&buf)
	for _, symbol := range symbols {
		info, ok := table.Lookup(symbol)
		if !ok {
			t.Fatalf("symbol %d missing", symbol)
		}
		if err := bw.WriteCode(info.Code); err != nil {
			t.Fatal(err)
		}
	}
	if err := bw.Flush(); err != nil {
		t.Fatal(err)
	}

	h := table.Header()
	h.InputSize = uint64(len(symbols))
	var d Decoder
	if err := d.Init(h); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	dst, _, err := d.Decode(nil, buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(symbols, dst) {
		t.Errorf("wrong output:\n\texpect: %v\n\tactual: %v", symbols, dst)
	}
}

func mustEncode(t *testing.T, input []byte) []byte {
	t.Helper()
	table, err := BuildTable(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}
	var out bytes.Buffer
	if err := table.Encode(bytes.NewReader(input), &out); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return out.Bytes()
}

// fibonacciHistogram gives byte i the count F(i+1), which forces the
// deepest possible tree: n symbols, longest code n-1 bits.
func fibonacciHistogram(n int) Histogram {
	var h Histogram
	a, b := uint64(1), uint64(1)
	for i := 0; i < n; i++ {
		h[i] = a
		a, b = b, a+b
	}
	return h
}
