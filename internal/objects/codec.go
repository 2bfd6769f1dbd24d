package objects

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/KostasZigo/gitlite/internal/constants"
)

// header formats "<type> <size>\0".
func header(objectType ObjectType, size int) string {
	return fmt.Sprintf("%s%c%d%c", objectType, constants.HeaderSeparator, size, constants.NullByte)
}

// Encode produces the loose object framing: type tag, space, decimal length, NUL, content.
func Encode(obj *GitObject) []byte {
	hdr := obj.Header()
	data := make([]byte, 0, len(hdr)+len(obj.content))
	data = append(data, hdr...)
	return append(data, obj.content...)
}

// ComputeHash calculates the SHA-1 of the framed object without building the framed buffer.
func ComputeHash(content []byte, objectType ObjectType) (string, error) {
	if !objectType.IsValid() {
		return "", fmt.Errorf("invalid object type: %s - hash not computed", objectType)
	}

	hasher := sha1.New()
	hasher.Write([]byte(header(objectType, len(content))))
	hasher.Write(content)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Decode splits framed bytes at the first NUL and validates the header.
// The declared length is not compared with the content; see DecodeStrict.
func Decode(data []byte) (*GitObject, error) {
	obj, _, err := decode(data)
	return obj, err
}

// DecodeStrict is Decode plus a check that the declared length matches the content.
func DecodeStrict(data []byte) (*GitObject, error) {
	obj, declared, err := decode(data)
	if err != nil {
		return nil, err
	}

	if declared != obj.Size() {
		return nil, fmt.Errorf("%w: header declares %d bytes, content has %d", ErrLengthMismatch, declared, obj.Size())
	}

	return obj, nil
}

func decode(data []byte) (*GitObject, int, error) {
	nullByteIndex := bytes.IndexByte(data, constants.NullByte)
	if nullByteIndex == -1 {
		return nil, 0, fmt.Errorf("%w: no null byte found in %d bytes", ErrFraming, len(data))
	}

	objectType, declared, err := parseHeader(data[:nullByteIndex])
	if err != nil {
		return nil, 0, err
	}

	obj, err := NewObject(objectType, bytes.Clone(data[nullByteIndex+1:]))
	if err != nil {
		return nil, 0, err
	}

	return obj, declared, nil
}

// parseHeader splits "<type> <size>" into exactly two tokens.
func parseHeader(hdr []byte) (ObjectType, int, error) {
	parts := strings.Split(string(hdr), string(constants.HeaderSeparator))
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("%w: expected \"<type> <size>\", got %q", ErrHeader, hdr)
	}

	objectType, err := ParseObjectType(parts[0])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrHeader, err)
	}

	// ParseUint rejects signs, so "+5" and "-1" both fail here.
	size, err := strconv.ParseUint(parts[1], 10, strconv.IntSize-1)
	if err != nil {
		return "", 0, fmt.Errorf("%w: invalid object size %q", ErrHeader, parts[1])
	}

	return objectType, int(size), nil
}
