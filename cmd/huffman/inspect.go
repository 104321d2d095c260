package main

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/chronos-tachyon/huffstream"
)

func (a *app) inspectCmd() *cobra.Command {
	var codes bool
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the Huffman code for a file",
		Long:  "Show the entropy, predicted encoded size, and zstd size of a file, and optionally its code table.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspect(cmd, args[0], codes)
		},
	}
	cmd.Flags().BoolVarP(&codes, "codes", "c", false, "Print the code assigned to each byte")
	return cmd
}

func (a *app) inspect(cmd *cobra.Command, in string, codes bool) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := huffman.CountFrequencies(f)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", in, err)
	}
	a.log.Infof("%s: %d bytes, %d distinct", in, h.Total(), h.Distinct())

	table, err := huffman.NewTable(h)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", in, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	zstdLen, err := zstdSize(f)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", in, err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "File:         %s\n", in)
	fmt.Fprintf(w, "Input size:   %d\n", table.InputSize())
	fmt.Fprintf(w, "Symbols:      %d\n", table.NumSymbols())
	fmt.Fprintf(w, "Code lengths: %d .. %d bits\n", table.MinSize(), table.MaxSize())
	fmt.Fprintf(w, "Entropy:      %.6f bits/byte\n", table.Entropy())
	fmt.Fprintf(w, "Payload:      %d\n", table.BareEncodedLen())
	fmt.Fprintf(w, "Encoded size: %d\n", table.TotalEncodedLen())
	fmt.Fprintf(w, "Zstd size:    %d\n", zstdLen)
	if codes {
		if _, err := table.Dump(w); err != nil {
			return err
		}
	}
	return nil
}

// zstdSize returns the size of r compressed with zstd at the default level,
// as a baseline for the Huffman encoded size.
func zstdSize(r io.Reader) (int64, error) {
	var cw countingWriter
	enc, err := zstd.NewWriter(&cw)
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(enc, r); err != nil {
		enc.Close()
		return 0, err
	}
	if err := enc.Close(); err != nil {
		return 0, err
	}
	return cw.n, nil
}

type countingWriter struct {
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	cw.n += int64(len(p))
	return len(p), nil
}
