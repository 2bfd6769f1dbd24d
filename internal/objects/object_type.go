package objects

import "fmt"

// ObjectType is the type tag written in every loose object header.
type ObjectType string

const (
	BlobObjectType   ObjectType = "blob"
	CommitObjectType ObjectType = "commit"
	TagObjectType    ObjectType = "tag"
	TreeObjectType   ObjectType = "tree"
)

func (ot ObjectType) IsValid() bool {
	switch ot {
	case BlobObjectType, CommitObjectType, TagObjectType, TreeObjectType:
		return true
	default:
		return false
	}
}

func (ot ObjectType) String() string {
	return string(ot)
}

// ParseObjectType maps a header tag to its ObjectType.
// Tags are case sensitive: "Blob" is not a valid tag.
func ParseObjectType(tag string) (ObjectType, error) {
	objectType := ObjectType(tag)
	if !objectType.IsValid() {
		return "", fmt.Errorf("invalid object type: %q", tag)
	}
	return objectType, nil
}
