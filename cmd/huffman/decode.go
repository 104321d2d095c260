package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chronos-tachyon/huffstream"
)

func (a *app) decodeCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a file",
		Long:  "Decode an encoded file into FILE" + decodedSuffix + ", or into the path given with --output.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output
			if out == "" {
				out = args[0] + decodedSuffix
			}
			return a.decode(cmd, args[0], out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path of the decoded file")
	return cmd
}

func (a *app) decode(cmd *cobra.Command, in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	err = createNew(out, func(w io.Writer) error {
		return huffman.Decode(f, w)
	})
	if err != nil {
		return fmt.Errorf("decoding %s: %w", in, err)
	}

	a.log.Debugf("decoded %s into %s", in, out)
	return nil
}
