package cmd

import (
	"fmt"

	"github.com/KostasZigo/gitlite/internal/constants"
	"github.com/KostasZigo/gitlite/internal/repository"
	"github.com/KostasZigo/gitlite/utils"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a new GitLite repository",
	Long: `The 'init' command sets up a new GitLite repository in the current directory.
It creates a .gitlite directory with objects/, refs/ and a HEAD file pointing at the master branch.
If a repository already exists, the command will not overwrite existing data.`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// runInit executes repository initialization at specified or current directory.
func runInit(cmd *cobra.Command, args []string) error {
	dirPath := "."
	if len(args) > 0 {
		dirPath = args[0]
	}

	if err := repository.InitLayout(dirPath); err != nil {
		return fmt.Errorf("failed to initialize repository - %w", err)
	}

	cmd.Printf("Initialized empty GitLite repository in %s\n", utils.BuildDirPath(dirPath, constants.RepoDir))
	return nil
}
