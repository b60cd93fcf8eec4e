package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/bufkit/buffer"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <buffer>",
		Short: "Validate a buffer header and report basic metadata",
		Long: `The info command validates an encoded buffer file against its schema
and displays the header fields, size, and how many bytes a compaction would
reclaim.

Example:
  bufctl info -s user.schema.json user.buf
  bufctl info -s user.schema.json user.buf --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	f, err := loadFactory(buffer.Addr16)
	if err != nil {
		return err
	}
	printVerbose("Opening buffer: %s\n", args[0])
	b, err := openBuffer(f, args[0])
	if err != nil {
		return err
	}

	s, err := b.Savings()
	if err != nil {
		return err
	}

	addrBits := 16
	if b.Width() == buffer.Addr32 {
		addrBits = 32
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":           args[0],
			"address_bits":   addrBits,
			"size":           s.CurrentSize,
			"compacted_size": s.CompactedSize,
			"wasted_bytes":   s.WastedBytes,
		})
	}

	printInfo("\nBuffer Information:\n")
	printInfo("  File: %s\n", args[0])
	printInfo("  Addresses: %d-bit\n", addrBits)
	printInfo("  Size: %d bytes\n", s.CurrentSize)
	printInfo("  Compacted size: %d bytes\n", s.CompactedSize)
	printInfo("  Reclaimable: %d bytes\n", s.WastedBytes)
	return nil
}
