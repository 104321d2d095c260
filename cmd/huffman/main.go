// Command huffman compresses and decompresses files with canonical Huffman
// codes.
//
//	huffman FILE            encode FILE into FILE.huffman, or decode
//	                        FILE.huffman into FILE.huffman.decoded
//	huffman encode FILE     encode FILE
//	huffman decode FILE     decode FILE
//	huffman inspect FILE    print the code table and size estimates
//
// Existing files are never overwritten.
package main

import (
	"os"
)

func main() {
	a := newApp(os.Stderr)
	if err := a.rootCmd().Execute(); err != nil {
		a.log.Errorf("%v", err)
		os.Exit(1)
	}
}
