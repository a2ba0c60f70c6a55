package object

import "github.com/bromaniac/baby-git/ginternals"

// Blob represents a blob object: an opaque byte sequence, usually a
// file's contents
type Blob struct {
	rawObject *Object
}

// NewBlob returns a new Blob object from a raw Object
func NewBlob(o *Object) *Blob {
	return &Blob{
		rawObject: o,
	}
}

// NewBlobFromContent returns a new Blob wrapping the given bytes
func NewBlobFromContent(data []byte) *Blob {
	return NewBlob(New(TypeBlob, data))
}

// ID returns the blob's ID
func (b *Blob) ID() ginternals.Oid {
	return b.rawObject.ID()
}

// Bytes returns the blob's contents
func (b *Blob) Bytes() []byte {
	return b.rawObject.content
}

// Size returns the size of the blob
func (b *Blob) Size() int {
	return len(b.rawObject.content)
}

// ToObject returns the Blob's underlying Object
func (b *Blob) ToObject() *Object {
	return b.rawObject
}
