package objects

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/KostasZigo/gitlite/internal/constants"
)

type FileMode string

const (
	ModeRegularFile FileMode = "100644" // Regular non-executable file
	ModeExecutable  FileMode = "100755" // Executable file
	ModeSymlink     FileMode = "120000" // Symbolic link
	ModeDirectory   FileMode = "40000"  // Directory (tree), written without a leading zero
	ModeSubmodule   FileMode = "160000" // Submodule commit
)

func (m FileMode) IsValid() bool {
	switch m {
	case ModeRegularFile, ModeExecutable, ModeSymlink, ModeDirectory, ModeSubmodule:
		return true
	default:
		return false
	}
}

// TreeEntry is a single record in a tree object.
type TreeEntry struct {
	mode FileMode
	name string
	hash string // hex form; stored as 20 raw bytes in the tree content
}

func NewTreeEntry(mode FileMode, name string, hash string) (*TreeEntry, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid file mode: %s", mode)
	}
	if name == "" || strings.ContainsAny(name, "/\x00") {
		return nil, fmt.Errorf("invalid entry name: %q", name)
	}
	hashBytes, err := hex.DecodeString(hash)
	if err != nil || len(hashBytes) != constants.HashByteLength {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHash, hash)
	}
	return &TreeEntry{
		mode: mode,
		name: name,
		hash: strings.ToLower(hash),
	}, nil
}

func (e *TreeEntry) Mode() FileMode {
	return e.mode
}

func (e *TreeEntry) Name() string {
	return e.name
}

func (e *TreeEntry) Hash() string {
	return e.hash
}

func (e *TreeEntry) IsDirectory() bool {
	return e.mode == ModeDirectory
}

// NewTree builds a tree object from entries, sorted the way Git sorts them.
func NewTree(treeEntries []TreeEntry) (*GitObject, error) {
	entries := make([]TreeEntry, len(treeEntries))
	copy(entries, treeEntries)

	slices.SortStableFunc(entries, compareTreeEntries)

	for i := 1; i < len(entries); i++ {
		if entries[i].name == entries[i-1].name {
			return nil, fmt.Errorf("duplicate tree entry: %s", entries[i].name)
		}
	}

	return NewObject(TreeObjectType, buildTreeContent(entries))
}

// compareTreeEntries orders by name, treating directory names as if they had
// a trailing "/".
func compareTreeEntries(a, b TreeEntry) int {
	return strings.Compare(sortableName(a), sortableName(b))
}

func sortableName(entry TreeEntry) string {
	if entry.IsDirectory() {
		return entry.name + "/"
	}
	return entry.name
}

// buildTreeContent writes each entry as <mode> <name>\0<20-byte binary SHA>, ex:
// 100644 README.md\0[binary SHA for README blob]
// 40000 src\0[binary SHA for src/ tree]
func buildTreeContent(entries []TreeEntry) []byte {
	var buf bytes.Buffer

	for _, entry := range entries {
		buf.WriteString(string(entry.mode))
		buf.WriteByte(constants.HeaderSeparator)
		buf.WriteString(entry.name)
		buf.WriteByte(constants.NullByte)

		// Entries are validated in NewTreeEntry, the hash always decodes.
		hashBytes, _ := hex.DecodeString(entry.hash)
		buf.Write(hashBytes)
	}

	return buf.Bytes()
}

// ParseTree decodes every entry of a tree object's content.
func ParseTree(content []byte) ([]TreeEntry, error) {
	scanner := newTreeScanner(content)

	var entries []TreeEntry
	for {
		entry, err := scanner.next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}

// FindEntry looks up an entry by name in parsed tree entries.
func FindEntry(entries []TreeEntry, name string) (*TreeEntry, bool) {
	for i := range entries {
		if entries[i].name == name {
			return &entries[i], true
		}
	}
	return nil, false
}

type treeScanState int

const (
	scanningMode treeScanState = iota
	scanningName
	skippingHash
)

func (s treeScanState) String() string {
	switch s {
	case scanningMode:
		return "ScanningMode"
	case scanningName:
		return "ScanningName"
	case skippingHash:
		return "SkippingHash"
	default:
		return fmt.Sprintf("treeScanState(%d)", int(s))
	}
}

// treeScanner walks tree content one entry at a time. Records have no count
// or length prefix: the mode ends at a space, the name at NUL, and the hash
// is always HashByteLength raw bytes.
type treeScanner struct {
	content []byte
	pos     int
	state   treeScanState
}

func newTreeScanner(content []byte) *treeScanner {
	return &treeScanner{content: content, state: scanningMode}
}

// next returns the following entry, or io.EOF once content is exhausted at a record boundary.
func (s *treeScanner) next() (TreeEntry, error) {
	if s.state == scanningMode && s.pos >= len(s.content) {
		return TreeEntry{}, io.EOF
	}

	var entry TreeEntry
	for {
		rest := s.content[s.pos:]

		switch s.state {
		case scanningMode:
			end := bytes.IndexByte(rest, constants.HeaderSeparator)
			if end == -1 {
				return TreeEntry{}, fmt.Errorf("%w: mode at offset %d has no terminating space", ErrTruncatedTree, s.pos)
			}
			entry.mode = FileMode(rest[:end])
			s.pos += end + 1
			s.state = scanningName

		case scanningName:
			end := bytes.IndexByte(rest, constants.NullByte)
			if end == -1 {
				return TreeEntry{}, fmt.Errorf("%w: name at offset %d has no terminating null byte", ErrTruncatedTree, s.pos)
			}
			entry.name = string(rest[:end])
			s.pos += end + 1
			s.state = skippingHash

		case skippingHash:
			if len(rest) < constants.HashByteLength {
				return TreeEntry{}, fmt.Errorf("%w: entry %q needs %d hash bytes, %d remain",
					ErrTruncatedTree, entry.name, constants.HashByteLength, len(rest))
			}
			entry.hash = hex.EncodeToString(rest[:constants.HashByteLength])
			s.pos += constants.HashByteLength
			s.state = scanningMode
			return entry, nil
		}
	}
}
