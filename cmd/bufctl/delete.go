package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/schema"
)

func init() {
	rootCmd.AddCommand(newDeleteCmd())
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <buffer> <path>",
		Short: "Delete the value at a path",
		Long: `The delete command removes one value from the buffer. The freed bytes
stay in the file until a compact; run info to see how much is reclaimable.

Example:
  bufctl delete -s user.schema.json user.buf attrs.born
  bufctl delete -s user.schema.json user.buf tags.2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args)
		},
	}
	return cmd
}

func runDelete(args []string) error {
	f, err := loadFactory(buffer.Addr16)
	if err != nil {
		return err
	}
	b, err := openBuffer(f, args[0])
	if err != nil {
		return err
	}

	path := splitPath(args[1])
	if len(path) == 0 {
		return fmt.Errorf("cannot delete the root value")
	}
	parent, last := path[:len(path)-1], path[len(path)-1]

	cur, ok, err := b.Select(parent, false)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if !ok {
		printInfo("Nothing at %s\n", args[1])
		return nil
	}

	var deleted bool
	switch cur.Node().Resolve().Kind {
	case schema.Table:
		deleted, err = b.TableDelete(cur, last)
	case schema.Map:
		deleted, err = b.MapDelete(cur, []byte(last))
	case schema.List:
		idx, perr := strconv.ParseUint(last, 10, 16)
		if perr != nil {
			return fmt.Errorf("%q is not a list index", last)
		}
		deleted, err = b.ListDelete(cur, uint16(idx))
	case schema.Tuple:
		idx, perr := strconv.ParseUint(last, 10, 16)
		if perr != nil {
			return fmt.Errorf("%q is not a tuple index", last)
		}
		deleted, err = b.TupleDelete(cur, int(idx))
	default:
		return fmt.Errorf("cannot delete from a %s", cur.Node().Resolve().Kind)
	}
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	if !deleted {
		printInfo("Nothing at %s\n", args[1])
		return nil
	}

	if err := saveBuffer(b, args[0]); err != nil {
		return err
	}
	printInfo("Deleted %s from %s\n", args[1], args[0])
	return nil
}
