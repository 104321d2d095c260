package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chronos-tachyon/huffstream"
)

func (a *app) encodeCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a file",
		Long:  "Encode a file into FILE" + encodedSuffix + ", or into the path given with --output.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output
			if out == "" {
				out = args[0] + encodedSuffix
			}
			return a.encode(cmd, args[0], out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path of the encoded file")
	return cmd
}

func (a *app) encode(cmd *cobra.Command, in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	var table *huffman.Table
	err = createNew(out, func(w io.Writer) error {
		var err error
		table, err = huffman.Compress(f, w)
		return err
	})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", in, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Entropy: %v\n", table.Entropy())
	a.log.Debugf("encoded %s (%d bytes, %d symbols) into %s (%d bytes)",
		in, table.InputSize(), table.NumSymbols(), out, table.TotalEncodedLen())
	return nil
}
