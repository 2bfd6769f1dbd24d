package cmd

import (
	"fmt"

	"github.com/KostasZigo/gitlite/internal/objects"
	"github.com/spf13/cobra"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <filepath>",
	Short: "Compute object hash and optionally create and store a blob from a file",
	Long: `Compute the object hash (SHA-1 hash) for a file's content.
Optionally write the resulting blob object into the objects folder.

Examples:
  # Compute hash without storing
  gitlite hash-object myfile.txt

  # Compute hash and store in .gitlite/objects
  gitlite hash-object -w myfile.txt`,
	SilenceUsage: true,
	Args:         exactArgs(1, "filepath"),
	RunE:         runHashObject,
}

var writeFlag bool

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the object into the objects folder")
}

// runHashObject prints the blob hash of a file and optionally stores the blob.
func runHashObject(cmd *cobra.Command, args []string) error {
	if !writeFlag {
		blob, err := objects.FromFile(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), blob.Hash())
		return nil
	}

	// Locate the repository first so nothing is hashed outside one.
	store, err := openObjectStore()
	if err != nil {
		return err
	}

	hash, err := store.HashAndStoreFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to store object: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
