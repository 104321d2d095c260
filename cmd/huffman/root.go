package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chronos-tachyon/huffstream/internal/logger"
)

const (
	encodedSuffix = ".huffman"
	decodedSuffix = ".decoded"
)

// app holds the state shared by all subcommands.
type app struct {
	logOut  io.Writer
	log     logger.Logger
	verbose bool
}

func newApp(logOut io.Writer) *app {
	return &app{logOut: logOut, log: logger.New(logOut, false)}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "huffman [file]",
		Short: "Compress files with canonical Huffman codes",
		Long: "Encode a file into FILE" + encodedSuffix + ", or decode a file whose name ends in " +
			encodedSuffix + " into FILE" + decodedSuffix + ".",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logger.New(a.logOut, a.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if strings.HasSuffix(name, encodedSuffix) {
				return a.decode(cmd, name, name+decodedSuffix)
			}
			return a.encode(cmd, name, name+encodedSuffix)
		},
	}
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debugging details")

	cmd.AddCommand(a.encodeCmd())
	cmd.AddCommand(a.decodeCmd())
	cmd.AddCommand(a.inspectCmd())
	return cmd
}
