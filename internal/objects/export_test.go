package objects

import (
	"bytes"
	"compress/zlib"
	"os"
	"path/filepath"
	"testing"

	"github.com/KostasZigo/gitlite/internal/constants"
	"github.com/KostasZigo/gitlite/testutils"
)

// emptyBlobHash is the well-known hash of "blob 0\x00".
const emptyBlobHash = "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"

// assertBlobHash verifies blob hash matches expected value for given content.
func assertBlobHash(t *testing.T, blob *GitObject, content []byte) {
	t.Helper()

	expectedHash, err := ComputeHash(content, BlobObjectType)
	if err != nil {
		t.Fatalf("Hash computation failed: %v", err)
	}

	if blob.Hash() != expectedHash {
		t.Fatalf("Expected hash [%s], got [%s]", expectedHash, blob.Hash())
	}
}

// assertBlobContent verifies blob stores exact content and correct size.
func assertBlobContent(t *testing.T, blob *GitObject, expectedContent []byte) {
	t.Helper()

	if blob.Type() != BlobObjectType {
		t.Fatalf("Expected type %s, got %s", BlobObjectType, blob.Type())
	}

	if blob.Size() != len(expectedContent) {
		t.Fatalf("Expected size %d, got %d", len(expectedContent), blob.Size())
	}

	if !bytes.Equal(blob.Content(), expectedContent) {
		t.Fatalf("Expected content [%q], got [%q]", expectedContent, blob.Content())
	}
}

// newTestStore creates an object store over a fresh objects directory.
func newTestStore(t *testing.T) *ObjectStore {
	t.Helper()

	repoPath := testutils.SetupTestRepoWithObjectsDir(t)
	return NewObjectStore(filepath.Join(repoPath, constants.RepoDir, constants.Objects))
}

// createTreeEntry creates tree entry and fails test on error.
func createTreeEntry(t *testing.T, mode FileMode, name, hash string) TreeEntry {
	t.Helper()

	entry, err := NewTreeEntry(mode, name, hash)
	if err != nil {
		t.Fatalf("Failed to create tree entry: %v", err)
	}

	return *entry
}

// createTree creates tree from entries and fails test on error.
func createTree(t *testing.T, entries []TreeEntry) *GitObject {
	t.Helper()

	tree, err := NewTree(entries)
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	return tree
}

// createAndStoreTree creates tree from entries, stores it, and returns tree.
func createAndStoreTree(t *testing.T, store *ObjectStore, entries []TreeEntry) *GitObject {
	t.Helper()

	tree := createTree(t, entries)
	if _, err := store.Write(tree); err != nil {
		t.Fatalf("Failed to store tree: %v", err)
	}

	return tree
}

// assertTreeEntryEqual verifies two tree entries match.
func assertTreeEntryEqual(t *testing.T, actual, expected TreeEntry) {
	t.Helper()

	if actual.Name() != expected.Name() {
		t.Errorf("Entry name mismatch: expected %s, got %s", expected.Name(), actual.Name())
	}
	if actual.Hash() != expected.Hash() {
		t.Errorf("Entry hash mismatch: expected %s, got %s", expected.Hash(), actual.Hash())
	}
	if actual.Mode() != expected.Mode() {
		t.Errorf("Entry mode mismatch: expected %s, got %s", expected.Mode(), actual.Mode())
	}
}

// writeRawObject deflates data with the standard library and places it at the
// path for hash, bypassing the store's own encoder.
func writeRawObject(t *testing.T, store *ObjectStore, hash string, data []byte) string {
	t.Helper()

	objectFile, err := store.ObjectPath(hash)
	if err != nil {
		t.Fatalf("Failed to resolve object path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(objectFile), constants.DirPerms); err != nil {
		t.Fatalf("Failed to create shard directory: %v", err)
	}

	var buffer bytes.Buffer
	writer := zlib.NewWriter(&buffer)
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("Failed to compress object: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to flush compressed object: %v", err)
	}

	if err := os.WriteFile(objectFile, buffer.Bytes(), constants.FilePerms); err != nil {
		t.Fatalf("Failed to write object file: %v", err)
	}

	return objectFile
}
