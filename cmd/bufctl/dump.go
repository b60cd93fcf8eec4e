package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/printer"
)

var dumpIncludeAbsent bool

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpIncludeAbsent, "include-absent", false,
		"Render schema defaults for absent values instead of omitting them")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <buffer>",
		Short: "Render the whole buffer as JSON",
		Long: `The dump command walks the buffer's live value tree and prints it as
indented JSON. Sparse list gaps render as null; absent table columns are
omitted unless --include-absent is set.

Example:
  bufctl dump -s user.schema.json user.buf
  bufctl dump -s user.schema.json user.buf --include-absent`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	f, err := loadFactory(buffer.Addr16)
	if err != nil {
		return err
	}
	b, err := openBuffer(f, args[0])
	if err != nil {
		return err
	}

	out, err := printer.JSON(b, printer.Options{IncludeAbsent: dumpIncludeAbsent})
	if err != nil {
		return fmt.Errorf("failed to render buffer: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
