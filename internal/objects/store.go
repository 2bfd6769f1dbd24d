package objects

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gitlite/internal/constants"
	"github.com/KostasZigo/gitlite/utils"
	"github.com/klauspost/compress/zlib"
)

// ObjectStore keeps zlib-compressed loose objects under
// <objectsDir>/<first 2 hex chars>/<remaining 38>.
type ObjectStore struct {
	objectsDir       string
	compressionLevel int
	dirPerms         fs.FileMode
	filePerms        fs.FileMode
	log              *slog.Logger
}

// Option configures an ObjectStore.
type Option func(*ObjectStore)

// WithCompressionLevel sets the zlib level used for new objects.
func WithCompressionLevel(level int) Option {
	return func(s *ObjectStore) {
		s.compressionLevel = level
	}
}

func WithDirPerms(perm fs.FileMode) Option {
	return func(s *ObjectStore) {
		s.dirPerms = perm
	}
}

func WithFilePerms(perm fs.FileMode) Option {
	return func(s *ObjectStore) {
		s.filePerms = perm
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *ObjectStore) {
		s.log = log
	}
}

// NewObjectStore returns a store rooted at objectsDir. The directory itself
// is expected to exist; shard subdirectories are created on demand.
func NewObjectStore(objectsDir string, opts ...Option) *ObjectStore {
	store := &ObjectStore{
		objectsDir:       objectsDir,
		compressionLevel: zlib.DefaultCompression,
		dirPerms:         constants.DirPerms,
		filePerms:        constants.ObjectPerms,
		log:              slog.Default(),
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (store *ObjectStore) ObjectsDir() string {
	return store.objectsDir
}

// ObjectPath maps a hash to objects/ab/cdef123...
func (store *ObjectStore) ObjectPath(hash string) (string, error) {
	normalized, ok := utils.NormalizeHash(hash)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidHash, hash)
	}

	return filepath.Join(store.objectsDir,
		normalized[:constants.HashDirPrefixLength],
		normalized[constants.HashDirPrefixLength:]), nil
}

// Exists checks if an object exists in storage. Only a regular file at the
// object path counts as a stored object.
func (store *ObjectStore) Exists(hash string) (bool, error) {
	objectFile, err := store.ObjectPath(hash)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(objectFile)
	switch {
	case err == nil:
		return info.Mode().IsRegular(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, ioError("failed to stat object file", err)
	}
}

// Write stores obj and returns its hash. An object that is already present is
// left untouched.
func (store *ObjectStore) Write(obj *GitObject) (string, error) {
	hash := obj.Hash()

	objectFile, err := store.ObjectPath(hash)
	if err != nil {
		return "", err
	}

	exists, err := store.Exists(hash)
	if err != nil {
		return "", err
	}
	if exists {
		store.log.Debug("Object with this hash already exists",
			"hash", hash)
		return hash, nil
	}

	// MkdirAll succeeds when another writer created the shard first.
	objectDir := filepath.Dir(objectFile)
	if err := os.MkdirAll(objectDir, store.dirPerms); err != nil {
		return "", ioError("failed to create object directory", err)
	}

	if err := store.writeCompressed(objectDir, objectFile, obj); err != nil {
		return "", err
	}

	store.log.Debug("Stored object",
		"hash", hash,
		"type", obj.Type(),
		"size", obj.Size())

	return hash, nil
}

// writeCompressed deflates obj into a temporary file in objectDir and renames
// it to objectFile, so readers never observe a partially written object.
func (store *ObjectStore) writeCompressed(objectDir, objectFile string, obj *GitObject) (err error) {
	tmp, err := os.CreateTemp(objectDir, "tmp_obj_*")
	if err != nil {
		return ioError("failed to create temporary object file", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			if removeErr := os.Remove(tmpPath); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
				store.log.Warn("Failed to remove temporary object file",
					"path", tmpPath,
					"error", removeErr)
			}
		}
	}()

	writer, err := zlib.NewWriterLevel(tmp, store.compressionLevel)
	if err != nil {
		return fmt.Errorf("failed to create zlib writer: %w", err)
	}

	if _, err = io.WriteString(writer, obj.Header()); err != nil {
		return ioError("failed to write object header", err)
	}
	if _, err = writer.Write(obj.Content()); err != nil {
		return ioError("failed to write object content", err)
	}

	// Close flushes the remaining compressed data and the adler32 trailer.
	if err = writer.Close(); err != nil {
		return ioError("failed to flush compressed object", err)
	}
	if err = tmp.Close(); err != nil {
		return ioError("failed to close object file", err)
	}
	if err = os.Chmod(tmpPath, store.filePerms); err != nil {
		return ioError("failed to set object file permissions", err)
	}
	if err = os.Rename(tmpPath, objectFile); err != nil {
		return ioError("failed to move object into place", err)
	}

	return nil
}

// Read loads and decodes the object stored under hash. The decoded object
// must hash back to the requested hash and match its declared length.
func (store *ObjectStore) Read(hash string) (*GitObject, error) {
	objectFile, err := store.ObjectPath(hash)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(objectFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, hash)
	}
	if err != nil {
		return nil, ioError(fmt.Sprintf("failed to open object file %s", hash), err)
	}
	defer file.Close()

	reader, err := zlib.NewReader(bufio.NewReader(file))
	if err != nil {
		return nil, ioError(fmt.Sprintf("failed to decompress object %s", hash), err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, ioError(fmt.Sprintf("failed to read decompressed object %s", hash), err)
	}

	obj, err := DecodeStrict(data)
	if err != nil {
		return nil, err
	}

	if expected, _ := utils.NormalizeHash(hash); obj.Hash() != expected {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, expected, obj.Hash())
	}

	return obj, nil
}

// HashAndStoreFile wraps a file as a blob, stores it and returns its hash.
func (store *ObjectStore) HashAndStoreFile(path string) (string, error) {
	blob, err := FromFile(path)
	if err != nil {
		return "", err
	}
	return store.Write(blob)
}
