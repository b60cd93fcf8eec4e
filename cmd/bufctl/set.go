package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/codec"
)

func init() {
	rootCmd.AddCommand(newSetCmd())
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <buffer> <path> <value>",
		Short: "Set the value at a path",
		Long: `The set command writes one value into the buffer, creating missing
intermediate structure along the path. The value is parsed as JSON; anything
that does not parse is taken as a plain string.

Example:
  bufctl set -s user.schema.json user.buf name '"ada"'
  bufctl set -s user.schema.json user.buf age 36
  bufctl set -s user.schema.json user.buf tags.0 math`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

func runSet(args []string) error {
	f, err := loadFactory(buffer.Addr16)
	if err != nil {
		return err
	}
	b, err := openBuffer(f, args[0])
	if err != nil {
		return err
	}

	var value interface{}
	if err := json.Unmarshal([]byte(args[2]), &value); err != nil {
		// Bare words read as strings, so quoting is optional on the shell.
		value = args[2]
	}

	cur, _, err := b.Select(splitPath(args[1]), true)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if err := codec.SetAny(b, cur, value); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	if err := saveBuffer(b, args[0]); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":    args[0],
			"path":    args[1],
			"success": true,
		})
	}
	printInfo("Set %s in %s (%d bytes)\n", args[1], args[0], b.Len())
	return nil
}
