package objects

import (
	"fmt"
	"os"
)

// NewBlob wraps raw bytes as a blob object.
func NewBlob(content []byte) *GitObject {
	// BlobObjectType is always valid, so NewObject cannot fail here.
	blob, _ := NewObject(BlobObjectType, content)
	return blob
}

// FromFile reads a file and wraps its bytes as a blob. Nothing is written to the store.
func FromFile(filepath string) (*GitObject, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, ioError(fmt.Sprintf("failed to read file %s", filepath), err)
	}
	return NewBlob(content), nil
}
