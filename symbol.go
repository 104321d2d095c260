package huffman

// NumSymbols is the size of the alphabet: every byte value is a symbol.
const NumSymbols = 256

// SymbolInfo describes how one byte value is coded by a Table.
type SymbolInfo struct {
	// Count is the number of times the byte occurred in the source.
	Count uint64

	// Weight is Count divided by the total number of bytes in the source.
	Weight float64

	// Code is the canonical code assigned to the byte.
	Code Code
}
