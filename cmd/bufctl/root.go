package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bufkit/buffer"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	schemaPath string
)

var rootCmd = &cobra.Command{
	Use:   "bufctl",
	Short: "Inspect and manipulate schema-driven binary buffers",
	Long: `bufctl is a tool for creating, inspecting, and modifying encoded
buffer files. Every command takes the schema document describing the buffer's
type via --schema; paths into the buffer are dot-separated, with column names
for tables, keys for maps, and decimal indices for lists and tuples.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVarP(&schemaPath, "schema", "s", "", "Path to the schema document (required)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadFactory reads and parses the --schema document.
func loadFactory(width buffer.AddrWidth) (*buffer.Factory, error) {
	if schemaPath == "" {
		return nil, fmt.Errorf("--schema is required")
	}
	doc, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	f, err := buffer.NewFactory(doc, width)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return f, nil
}

// openBuffer reads a buffer file into an owned, mutable buffer.
func openBuffer(f *buffer.Factory, path string) (*buffer.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read buffer: %w", err)
	}
	b, err := f.OpenBuffer(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open buffer: %w", err)
	}
	return b, nil
}

// saveBuffer writes a buffer back to its file.
func saveBuffer(b *buffer.Buffer, path string) error {
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write buffer: %w", err)
	}
	return nil
}

// splitPath turns a dot-separated path argument into traversal steps. An
// empty argument addresses the root value.
func splitPath(arg string) []string {
	if arg == "" || arg == "." {
		return nil
	}
	return strings.Split(arg, ".")
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
