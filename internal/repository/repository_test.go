package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KostasZigo/gitlite/internal/constants"
	"github.com/KostasZigo/gitlite/internal/objects"
	"github.com/KostasZigo/gitlite/testutils"
	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/require"
)

// TestInitLayout verifies successful repository initialization.
func TestInitLayout(t *testing.T) {
	repoPath := t.TempDir()

	if err := InitLayout(repoPath); err != nil {
		t.Fatalf("InitLayout failed: %v", err)
	}

	testutils.AssertRepositoryStructure(t, repoPath)
}

// TestInitLayout_HeadContent pins the exact HEAD bytes.
func TestInitLayout_HeadContent(t *testing.T) {
	repoPath := t.TempDir()
	require.NoError(t, InitLayout(repoPath))

	content, err := os.ReadFile(filepath.Join(repoPath, constants.RepoDir, constants.Head))
	require.NoError(t, err)
	require.Equal(t, "ref: refs/heads/master\n", string(content))
}

// TestInitLayout_AlreadyExists verifies error when repository exists.
func TestInitLayout_AlreadyExists(t *testing.T) {
	repoPath := t.TempDir()

	if err := InitLayout(repoPath); err != nil {
		t.Fatalf("First initialization failed: %v", err)
	}

	// Try to initialize again - should fail and leave the first layout intact
	if err := InitLayout(repoPath); err == nil {
		t.Error("Expected error when repository already exists, but got nil")
	}

	testutils.AssertRepositoryStructure(t, repoPath)
}

// TestInitLayout_MkdirAllFailure verifies cleanup on directory creation failure.
func TestInitLayout_MkdirAllFailure(t *testing.T) {
	repoPath := t.TempDir()
	// Mock os.MkdirAll to fail after first call
	mockError := errors.New("mocked mkdir failure")
	callCount := 0
	patches := gomonkey.ApplyFunc(os.MkdirAll, func(path string, perm os.FileMode) error {
		callCount++
		if callCount > 1 {
			return mockError
		}
		// Let first call succeed (creates .gitlite directory)
		return os.Mkdir(path, perm)
	})
	defer patches.Reset()

	err := InitLayout(repoPath)
	if err == nil {
		t.Error("Expected error when os.MkdirAll fails, but got nil")
	}

	if !errors.Is(err, mockError) {
		t.Errorf("Expected error to wrap the mock error, but got: %v", err)
	}

	testutils.AssertFileNotExists(t, filepath.Join(repoPath, constants.RepoDir))
}

// TestInitLayout_HeadWriteFailure verifies cleanup when HEAD cannot be written.
func TestInitLayout_HeadWriteFailure(t *testing.T) {
	repoPath := t.TempDir()

	mockError := errors.New("mocked write failure")
	patches := gomonkey.ApplyFunc(os.WriteFile, func(_ string, _ []byte, _ os.FileMode) error {
		return mockError
	})
	defer patches.Reset()

	err := InitLayout(repoPath)
	require.ErrorIs(t, err, mockError)
	testutils.AssertFileNotExists(t, filepath.Join(repoPath, constants.RepoDir))
}

func TestFindRoot(t *testing.T) {
	repoPath := testutils.SetupTestRepoWithInit(t)
	nested := filepath.Join(repoPath, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, constants.DirPerms))

	for _, start := range []string{repoPath, nested} {
		root, err := FindRoot(start)
		require.NoError(t, err)

		// TempDir may sit behind a symlink; compare resolved paths.
		expected, _ := filepath.EvalSymlinks(repoPath)
		actual, _ := filepath.EvalSymlinks(root)
		require.Equal(t, expected, actual)
	}
}

func TestFindRoot_NotARepository(t *testing.T) {
	_, err := FindRoot(t.TempDir())
	require.ErrorIs(t, err, ErrNotARepository)
}

// TestFindRoot_IgnoresMarkerFile verifies a plain file named .gitlite is not a repository.
func TestFindRoot_IgnoresMarkerFile(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFile(t, dir, constants.RepoDir, []byte("not a directory"))

	_, err := FindRoot(dir)
	require.ErrorIs(t, err, ErrNotARepository)
}

// TestFindRoot_StatFailure verifies an unreadable marker stops the search
// instead of falling through to an enclosing repository.
func TestFindRoot_StatFailure(t *testing.T) {
	parent := testutils.SetupTestRepoWithInit(t)
	child := filepath.Join(parent, "child")
	require.NoError(t, os.MkdirAll(child, constants.DirPerms))

	// A self-referencing symlink fails os.Stat with ELOOP.
	marker := filepath.Join(child, constants.RepoDir)
	require.NoError(t, os.Symlink(marker, marker))

	root, err := FindRoot(child)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotARepository)
	require.Contains(t, err.Error(), marker)
	require.Empty(t, root)
}

// TestInitLayout_ObjectStoreRoundTrip verifies the layout serves an object store.
func TestInitLayout_ObjectStoreRoundTrip(t *testing.T) {
	repoPath := t.TempDir()
	require.NoError(t, InitLayout(repoPath))

	store := objects.NewObjectStore(ObjectsDir(repoPath))
	hash, err := store.Write(objects.NewBlob(nil))
	require.NoError(t, err)
	require.Equal(t, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", hash)

	testutils.AssertFileExists(t, filepath.Join(repoPath, constants.RepoDir, constants.Objects,
		"e6", "9de29bb2d1d6434b8b29ae775ad8c2e48c5391"))
}
