package objects

import "fmt"

// GitObject is a typed payload as it lives in the object database.
// Its identity is the SHA-1 of the framed bytes "<type> <size>\0<content>".
type GitObject struct {
	objectType ObjectType
	content    []byte
	hash       string
}

// NewObject wraps content as an object of the given type and computes its hash.
func NewObject(objectType ObjectType, content []byte) (*GitObject, error) {
	hash, err := ComputeHash(content, objectType)
	if err != nil {
		return nil, err
	}

	if content == nil {
		content = []byte{}
	}

	return &GitObject{
		objectType: objectType,
		content:    content,
		hash:       hash,
	}, nil
}

func (o *GitObject) Type() ObjectType {
	return o.objectType
}

// Content returns the payload without the header.
func (o *GitObject) Content() []byte {
	return o.content
}

func (o *GitObject) Size() int {
	return len(o.content)
}

// Hash returns the 40 character lowercase hex SHA-1 of the object.
func (o *GitObject) Hash() string {
	return o.hash
}

// Header returns "<type> <size>\0".
func (o *GitObject) Header() string {
	return header(o.objectType, len(o.content))
}

// Data returns the complete framed object, header included.
func (o *GitObject) Data() []byte {
	return Encode(o)
}

func (o *GitObject) String() string {
	return fmt.Sprintf("%s{hash: %s, size: %d bytes}", o.objectType, o.hash, o.Size())
}
