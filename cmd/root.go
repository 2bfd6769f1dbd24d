package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/KostasZigo/gitlite/internal/objects"
	"github.com/KostasZigo/gitlite/internal/repository"
	"github.com/spf13/cobra"
)

// rootCmd defines the base command for the gitlite CLI.
// All subcommands (init, hash-object, cat-file) register under this root.
var rootCmd = &cobra.Command{
	Use:   "gitlite",
	Short: "A minimal content-addressable object store in GO",
	Long: `GitLite is a minimal content-addressable object store modeled on Git's loose object database.
It can initialize a repository, hash and store files as blob objects, and read stored objects back.`,
	PersistentPreRunE: setupLogging,
}

var verboseFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging on stderr")
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging installs the default slog handler on the command's stderr.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if verboseFlag {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

// exactArgs validates command receives exactly n positional arguments.
// enables usage printing in case of error
func exactArgs(n int, argName string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command requires exactly %d argument (%s), received %d", cmd.Name(), n, argName, len(args))
		}
		return nil
	}
}

// maximumArgs validates command receives at most n positional arguments.
// Returns error with usage help if argument limit exceeded.
func maximumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command accepts at most %d arg(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// openObjectStore locates the enclosing repository and returns its object store.
func openObjectStore() (*objects.ObjectStore, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := repository.FindRoot(cwd)
	if err != nil {
		return nil, err
	}

	return objects.NewObjectStore(repository.ObjectsDir(root), objects.WithLogger(slog.Default())), nil
}
