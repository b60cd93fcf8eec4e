package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bufkit/buffer"
)

var (
	compactDryRun bool
	compactAddr32 bool
	compactAddr16 bool
)

func init() {
	cmd := newCompactCmd()
	cmd.Flags().BoolVar(&compactDryRun, "dry-run", false, "Report reclaimable bytes without rewriting the file")
	cmd.Flags().BoolVar(&compactAddr32, "addr32", false, "Rewrite with 4-byte addresses")
	cmd.Flags().BoolVar(&compactAddr16, "addr16", false, "Rewrite with 2-byte addresses")
	rootCmd.AddCommand(cmd)
}

func newCompactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compact <buffer>",
		Short: "Rewrite the buffer without its garbage bytes",
		Long: `The compact command rebuilds the buffer into a fresh arena, dropping
orphaned payloads and unlinked items, and rewrites the file. The address
width can change during the rewrite, which is also the only way to move a
buffer between 16-bit and 32-bit addressing.

Example:
  bufctl compact -s user.schema.json user.buf
  bufctl compact -s user.schema.json user.buf --dry-run
  bufctl compact -s user.schema.json user.buf --addr32`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompact(args)
		},
	}
	return cmd
}

func runCompact(args []string) error {
	if compactAddr32 && compactAddr16 {
		return fmt.Errorf("--addr16 and --addr32 are mutually exclusive")
	}
	f, err := loadFactory(buffer.Addr16)
	if err != nil {
		return err
	}
	b, err := openBuffer(f, args[0])
	if err != nil {
		return err
	}

	if compactDryRun {
		s, err := b.Savings()
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(map[string]interface{}{
				"size":           s.CurrentSize,
				"compacted_size": s.CompactedSize,
				"wasted_bytes":   s.WastedBytes,
			})
		}
		printInfo("Would reclaim %d of %d bytes\n", s.WastedBytes, s.CurrentSize)
		return nil
	}

	width := b.Width()
	switch {
	case compactAddr32:
		width = buffer.Addr32
	case compactAddr16:
		width = buffer.Addr16
	}

	before := b.Len()
	compacted, err := b.CompactWidth(width)
	if err != nil {
		return fmt.Errorf("failed to compact: %w", err)
	}
	if err := saveBuffer(compacted, args[0]); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":       args[0],
			"size":       compacted.Len(),
			"reclaimed":  before - compacted.Len(),
			"success":    true,
		})
	}
	printInfo("Compacted %s: %d -> %d bytes\n", args[0], before, compacted.Len())
	return nil
}
