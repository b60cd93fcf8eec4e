package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/printer"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <buffer> <path>",
		Short: "Get the value at a path",
		Long: `The get command reads one value from the buffer and prints it as JSON.
An absent value prints null and exits cleanly.

Example:
  bufctl get -s user.schema.json user.buf name
  bufctl get -s user.schema.json user.buf tags.2
  bufctl get -s user.schema.json user.buf attrs.born`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	f, err := loadFactory(buffer.Addr16)
	if err != nil {
		return err
	}
	b, err := openBuffer(f, args[0])
	if err != nil {
		return err
	}

	v, found, err := printer.RenderPath(b, splitPath(args[1]), printer.Options{})
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}
	if !found {
		printVerbose("Path %q is absent\n", args[1])
		return printJSON(nil)
	}
	return printJSON(v)
}
