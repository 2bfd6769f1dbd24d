package objects

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

// Render writes a human readable form of obj to w.
// Blobs are written verbatim; trees list one entry name per line.
func Render(w io.Writer, obj *GitObject) error {
	switch obj.Type() {
	case BlobObjectType:
		return renderBlob(w, obj)
	case TreeObjectType:
		return renderTree(w, obj.Content())
	default:
		return fmt.Errorf("%w: cannot render %s object %s", ErrUnsupportedType, obj.Type(), obj.Hash())
	}
}

func renderBlob(w io.Writer, obj *GitObject) error {
	if !utf8.Valid(obj.Content()) {
		return fmt.Errorf("%w: blob %s", ErrEncoding, obj.Hash())
	}

	if _, err := w.Write(obj.Content()); err != nil {
		return fmt.Errorf("failed to write blob content: %w", err)
	}
	return nil
}

// renderTree parses the whole tree before writing so a truncated tree
// produces no partial listing.
func renderTree(w io.Writer, content []byte) error {
	entries, err := ParseTree(content)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, entry := range entries {
		fmt.Fprintln(bw, entry.Name())
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write tree entries: %w", err)
	}
	return nil
}
