package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bufkit/schema"
)

func init() {
	rootCmd.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a schema document",
		Long: `The validate command parses the --schema document and reports whether
it is well-formed: known types, unique column names, resolvable portal
paths, encodable defaults, and sortable children under sorted tuples.

Example:
  bufctl validate -s user.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate()
		},
	}
	return cmd
}

func runValidate() error {
	if schemaPath == "" {
		return fmt.Errorf("--schema is required")
	}
	doc, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	sch, err := schema.Parse(doc)
	if err != nil {
		if jsonOut {
			return printJSON(map[string]interface{}{
				"schema": schemaPath,
				"valid":  false,
				"error":  err.Error(),
			})
		}
		return fmt.Errorf("schema is invalid: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"schema":    schemaPath,
			"valid":     true,
			"root_type": sch.Kind.String(),
		})
	}
	printInfo("Schema %s is valid (root type %s)\n", schemaPath, sch.Kind)
	return nil
}
