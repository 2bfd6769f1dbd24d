package objects

import (
	"errors"
	"fmt"
)

// Error kinds returned by the codec, the renderer and the store.
// Callers match them with errors.Is; the wrapped message carries the detail.
var (
	// ErrIO reports a failed filesystem operation. The underlying
	// *fs.PathError stays in the chain.
	ErrIO = errors.New("object store i/o failure")

	// ErrObjectNotFound means no loose object file exists for a hash.
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvalidHash rejects hashes that are not 40 hex characters.
	ErrInvalidHash = errors.New("invalid object hash")

	// ErrFraming means the decompressed bytes have no NUL header terminator.
	ErrFraming = errors.New("malformed object framing")

	// ErrHeader covers a bad token count, an unknown type tag or a bad length.
	ErrHeader = errors.New("malformed object header")

	// ErrLengthMismatch means the declared length differs from the content length.
	ErrLengthMismatch = errors.New("object length mismatch")

	// ErrHashMismatch means a stored object does not hash to its file name.
	ErrHashMismatch = errors.New("object hash mismatch")

	// ErrEncoding means a blob cannot be pretty-printed as UTF-8 text.
	ErrEncoding = errors.New("blob content is not valid UTF-8")

	// ErrTruncatedTree means tree content ends in the middle of an entry.
	ErrTruncatedTree = errors.New("truncated tree entry")

	// ErrUnsupportedType is returned when rendering commit or tag objects.
	ErrUnsupportedType = errors.New("unsupported object type")
)

// ioError tags a filesystem failure with ErrIO while keeping the cause inspectable.
func ioError(action string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, action, err)
}
