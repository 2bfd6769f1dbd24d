package cmd

import (
	"fmt"

	"github.com/KostasZigo/gitlite/internal/objects"
	"github.com/spf13/cobra"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file (-p | -t | -s | -e) <object>",
	Short: "Provide content or type and size information for repository objects",
	Long: `Read an object from .gitlite/objects by its 40 character hash.

Exactly one mode flag is required:
  -p  pretty-print the object: blobs verbatim, trees one entry name per line
  -t  print the object type
  -s  print the content size in bytes
  -e  exit with status 0 if the object exists, 1 otherwise, printing nothing

Examples:
  gitlite cat-file -p e69de29bb2d1d6434b8b29ae775ad8c2e48c5391
  gitlite cat-file -t e69de29bb2d1d6434b8b29ae775ad8c2e48c5391`,
	SilenceUsage: true,
	Args:         exactArgs(1, "object"),
	RunE:         runCatFile,
}

var (
	prettyPrintFlag bool
	typeFlag        bool
	sizeFlag        bool
	existsFlag      bool
)

func init() {
	rootCmd.AddCommand(catFileCmd)

	flags := catFileCmd.Flags()
	flags.BoolVarP(&prettyPrintFlag, "pretty", "p", false, "Pretty-print the contents of <object> based on its type")
	flags.BoolVarP(&typeFlag, "type", "t", false, "Show the object type")
	flags.BoolVarP(&sizeFlag, "size", "s", false, "Show the object size")
	flags.BoolVarP(&existsFlag, "exists", "e", false, "Exit with zero status if <object> exists")

	catFileCmd.MarkFlagsMutuallyExclusive("pretty", "type", "size", "exists")
	catFileCmd.MarkFlagsOneRequired("pretty", "type", "size", "exists")
}

func runCatFile(cmd *cobra.Command, args []string) error {
	store, err := openObjectStore()
	if err != nil {
		return err
	}

	hash := args[0]

	if existsFlag {
		exists, err := store.Exists(hash)
		if err != nil {
			return err
		}
		if !exists {
			// Status only: the exit code carries the answer.
			cmd.SilenceErrors = true
			return fmt.Errorf("%w: %s", objects.ErrObjectNotFound, hash)
		}
		return nil
	}

	obj, err := store.Read(hash)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case typeFlag:
		fmt.Fprintln(out, obj.Type())
	case sizeFlag:
		fmt.Fprintln(out, obj.Size())
	default:
		if err := objects.Render(out, obj); err != nil {
			return fmt.Errorf("failed to print object %s: %w", obj.Hash(), err)
		}
	}

	return nil
}
