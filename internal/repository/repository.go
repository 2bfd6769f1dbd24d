package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gitlite/internal/constants"
)

// ErrNotARepository is returned by FindRoot when no marker directory is found.
var ErrNotARepository = errors.New(constants.RepoDir + " directory not found")

// InitLayout creates the repository layout under path:
//
//	.gitlite/
//	  objects/
//	  refs/heads/
//	  refs/tags/
//	  HEAD        "ref: refs/heads/master\n"
//
// An existing layout is never overwritten. A partially created layout is removed.
func InitLayout(path string) error {
	repoDir := filepath.Join(path, constants.RepoDir)

	if err := checkRepositoryDoesNotExist(repoDir); err != nil {
		return err
	}

	// Track if initialization of directories and files was successful.
	// If everything got created, initSuccess is true and the clean-up is skipped.
	var initSuccess bool
	defer func() {
		if !initSuccess {
			cleanupRepository(repoDir)
		}
	}()

	directories := []string{
		repoDir,
		filepath.Join(repoDir, constants.Objects),
		filepath.Join(repoDir, constants.Refs),
		filepath.Join(repoDir, constants.Refs, constants.Heads),
		filepath.Join(repoDir, constants.Refs, constants.Tags),
	}

	for _, directory := range directories {
		if err := os.MkdirAll(directory, constants.DirPerms); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	headFile := filepath.Join(repoDir, constants.Head)
	headContent := constants.DefaultRefPrefix + constants.DefaultBranch + "\n"

	if err := os.WriteFile(headFile, []byte(headContent), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to create %s file: %w", constants.Head, err)
	}

	initSuccess = true
	return nil
}

// ObjectsDir returns the objects root for the repository at root.
func ObjectsDir(root string) string {
	return filepath.Join(root, constants.RepoDir, constants.Objects)
}

// FindRoot locates the repository by walking up from start until a
// directory containing .gitlite is found.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	for {
		repoDir := filepath.Join(dir, constants.RepoDir)
		info, err := os.Stat(repoDir)
		if err == nil && info.IsDir() {
			return dir, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to check %s: %w", repoDir, err)
		}

		// Dir returns all but the last element of path
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotARepository
		}
		dir = parent
	}
}

func checkRepositoryDoesNotExist(path string) error {
	_, err := os.Stat(path)

	// If path doesn't exist there is no error
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	return fmt.Errorf("repository already exists at %s", path)
}

// Removes the entire .gitlite directory if it exists
func cleanupRepository(repoDir string) {
	if _, err := os.Stat(repoDir); err == nil {
		slog.Debug("Cleaning up partial repository initialization",
			"path", repoDir)

		if err := os.RemoveAll(repoDir); err != nil {
			slog.Warn("Failed to cleanup repository directory",
				"path", repoDir,
				"error", err)
		} else {
			slog.Debug("Successfully cleaned up repository directory",
				"path", repoDir)
		}
	}
}
