// Package object contains methods and objects to work with the three
// object kinds stored in the object database
package object

import (
	"bytes"
	"compress/zlib"
	"errors"
	"strconv"
	"sync"

	"github.com/bromaniac/baby-git/ginternals"
	"golang.org/x/xerrors"
)

var (
	// ErrObjectUnknown represents an error thrown when encountering an
	// unknown object type
	ErrObjectUnknown = errors.New("invalid object type")

	// ErrObjectInvalid represents an error thrown when an object contains
	// unexpected data or when the wrong object is provided to a method
	ErrObjectInvalid = errors.New("invalid object")

	// ErrTreeInvalid represents an error thrown when parsing an invalid
	// tree object
	ErrTreeInvalid = errors.New("invalid tree")

	// ErrCommitInvalid represents an error thrown when parsing an invalid
	// commit object
	ErrCommitInvalid = errors.New("invalid commit")
)

// Type represents the type of an object
type Type int8

// List of all the possible object types
const (
	TypeCommit Type = 1
	TypeTree   Type = 2
	TypeBlob   Type = 3
)

// TypeMaxLen is the longest decodable length of an ascii-encoded type
const TypeMaxLen = 10

func (t Type) String() string {
	switch t {
	case TypeCommit:
		return "commit"
	case TypeTree:
		return "tree"
	case TypeBlob:
		return "blob"
	default:
		return "unknown"
	}
}

// IsValid checks if the object type is an existing type
func (t Type) IsValid() bool {
	switch t {
	case TypeCommit, TypeTree, TypeBlob:
		return true
	default:
		return false
	}
}

// NewTypeFromString returns a Type from its string representation
func NewTypeFromString(t string) (Type, error) {
	switch t {
	case "commit":
		return TypeCommit, nil
	case "tree":
		return TypeTree, nil
	case "blob":
		return TypeBlob, nil
	default:
		return 0, ErrObjectUnknown
	}
}

// Object represents an immutable record of the object database. An
// object can be of multiple types but they all share similarities
// (same storage system, same framing, etc.).
//
// The on-disk form is the zlib-deflated framed stream, and the object
// is addressed by the SHA1 of those deflated bytes. That's a defining
// property of this storage format: the id changes if the compression
// does.
type Object struct {
	id         ginternals.Oid
	typ        Type
	content    []byte
	compressed []byte

	encodeOnce sync.Once
	encodeErr  error
}

// New creates a new object of the given type
func New(typ Type, content []byte) *Object {
	return &Object{
		typ:     typ,
		content: content,
	}
}

// ID returns the ID of the object: the SHA1 of its compressed form
func (o *Object) ID() ginternals.Oid {
	o.encode()
	return o.id
}

// Size returns the size of the object's content
func (o *Object) Size() int {
	return len(o.content)
}

// Type returns the Type for this object
func (o *Object) Type() Type {
	return o.typ
}

// Bytes returns the object's contents
func (o *Object) Bytes() []byte {
	return o.content
}

// frame returns the raw stream that gets compressed and stored:
// [type] [size][NULL][content]
// The type in ascii, followed by a space, followed by the size in
// ascii, followed by a null character (0), followed by the object data
func (o *Object) frame() []byte {
	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	w := new(bytes.Buffer)
	w.WriteString(o.typ.String())
	w.WriteRune(' ')
	w.WriteString(strconv.Itoa(o.Size()))
	w.WriteByte(0)
	w.Write(o.content)
	return w.Bytes()
}

// Compress returns the object's on-disk form, alongside its oid.
// The deflate level is fixed at maximum compression; two objects with
// the same framed stream always share the same compressed bytes and
// therefore the same id.
func (o *Object) Compress() (data []byte, oid ginternals.Oid, err error) {
	o.encode()
	if o.encodeErr != nil {
		return nil, ginternals.NullOid, o.encodeErr
	}
	return o.compressed, o.id, nil
}

func (o *Object) encode() {
	o.encodeOnce.Do(func() {
		o.encodeErr = func() (err error) {
			buf := new(bytes.Buffer)
			zw, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
			if err != nil {
				return xerrors.Errorf("could not create the zlib writer: %w", err)
			}

			if _, err = zw.Write(o.frame()); err != nil {
				return xerrors.Errorf("could not zlib the object: %w", err)
			}
			if err = zw.Close(); err != nil {
				return xerrors.Errorf("could not finish the zlib stream: %w", err)
			}
			o.compressed = buf.Bytes()
			o.id = ginternals.NewOidFromContent(o.compressed)
			return nil
		}()
	})
}

// AsBlob parses the object as Blob
func (o *Object) AsBlob() (*Blob, error) {
	if o.typ != TypeBlob {
		return nil, xerrors.Errorf("type %s is not a blob: %w", o.typ, ErrObjectInvalid)
	}
	return NewBlob(o), nil
}

// AsTree parses the object as Tree
func (o *Object) AsTree() (*Tree, error) {
	return NewTreeFromObject(o)
}

// AsCommit parses the object as Commit
func (o *Object) AsCommit() (*Commit, error) {
	return NewCommitFromObject(o)
}
