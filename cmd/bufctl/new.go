package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/bufkit/buffer"
)

var newAddr32 bool

func init() {
	cmd := newNewCmd()
	cmd.Flags().BoolVar(&newAddr32, "addr32", false, "Use 4-byte addresses (4 GiB ceiling) instead of 2-byte")
	rootCmd.AddCommand(cmd)
}

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <buffer>",
		Short: "Create an empty buffer file",
		Long: `The new command writes an empty buffer of the schema's type. The root
value starts absent; use set to fill it in.

Example:
  bufctl new -s user.schema.json user.buf
  bufctl new -s user.schema.json user.buf --addr32`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(args)
		},
	}
	return cmd
}

func runNew(args []string) error {
	width := buffer.Addr16
	if newAddr32 {
		width = buffer.Addr32
	}
	f, err := loadFactory(width)
	if err != nil {
		return err
	}

	b := f.NewBuffer()
	if err := saveBuffer(b, args[0]); err != nil {
		return err
	}
	printInfo("Created %s (%d bytes)\n", args[0], b.Len())
	return nil
}
