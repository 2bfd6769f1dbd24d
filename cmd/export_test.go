package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/KostasZigo/gitlite/internal/constants"
	"github.com/KostasZigo/gitlite/internal/objects"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// createTestRootCmd creates fresh root command with the given subcommand.
// Package-level flag values and silence settings are reset so tests do not
// leak state into each other.
func createTestRootCmd(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = false

	testRootCmd := &cobra.Command{Use: "gitlite"}
	testRootCmd.AddCommand(cmd)
	return testRootCmd
}

// captureStdout returns command stdout output as string.
func captureStdout(cmd *cobra.Command) *bytes.Buffer {
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	return &stdout
}

// captureStderr returns command stderr output as string.
func captureStderr(cmd *cobra.Command) *bytes.Buffer {
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	return &stderr
}

// changeToRepoDir changes working directory to repo path and registers cleanup.
func changeToRepoDir(t *testing.T, repoPath string) {
	t.Helper()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	if err := os.Chdir(repoPath); err != nil {
		t.Fatalf("Failed to change to directory %s: %v", repoPath, err)
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
	})
}

// storeObject writes obj into the repository at repoPath and returns its hash.
func storeObject(t *testing.T, repoPath string, obj *objects.GitObject) string {
	t.Helper()

	store := objects.NewObjectStore(filepath.Join(repoPath, constants.RepoDir, constants.Objects))
	hash, err := store.Write(obj)
	if err != nil {
		t.Fatalf("Failed to store object: %v", err)
	}

	return hash
}

// executeCommand runs args against a fresh root holding cmd and returns stdout.
func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	testRootCmd := createTestRootCmd(cmd)
	stdout := captureStdout(testRootCmd)
	captureStderr(testRootCmd)

	testRootCmd.SetArgs(args)
	err := testRootCmd.Execute()
	return stdout.String(), err
}
