package utils

import (
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/KostasZigo/gitlite/internal/constants"
)

// NormalizeHash lowercases a hex object hash and reports whether it is a full
// 40 character SHA-1.
func NormalizeHash(hash string) (string, bool) {
	if len(hash) != constants.HashStringLength {
		return "", false
	}

	hash = strings.ToLower(hash)
	if _, err := hex.DecodeString(hash); err != nil {
		return "", false
	}
	return hash, true
}

// BuildDirPath constructs os-agnostic display directory path with trailing separator preserving all components.
// Unlike filepath.Join, does not normalize "." or remove redundant separators.
func BuildDirPath(dirs ...string) string {
	return strings.Join(dirs, string(filepath.Separator)) + string(filepath.Separator)
}
