package fsbackend

import (
	"compress/zlib"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bromaniac/baby-git/ginternals"
	"github.com/bromaniac/baby-git/ginternals/object"
	"github.com/bromaniac/baby-git/internal/errutil"
	"github.com/bromaniac/baby-git/internal/readutil"
	"golang.org/x/xerrors"
)

// ObjectPath returns the path of an object inside the store:
// root/first_2_chars_of_sha/remaining_chars_of_sha
// Ex. path of fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3 is:
// root/fc/fe68a0e44e04bd7fd564fc0b75f1ae457e18b3
func (b *Backend) ObjectPath(oid ginternals.Oid) string {
	sha := oid.String()
	return filepath.Join(b.root, sha[:2], sha[2:])
}

// HasObject returns whether an object exists in the store, by checking
// for a readable file at its derived path
func (b *Backend) HasObject(oid ginternals.Oid) bool {
	f, err := b.fs.Open(b.ObjectPath(oid))
	if err != nil {
		return false
	}
	f.Close() //nolint:errcheck // nothing was written
	return true
}

// WriteObject adds an object to the store and returns its id.
//
// The object file is created with exclusive-create semantics and a
// single write: two writers racing on the same id are benign, since
// the loser observes the file and returns success. An object that
// already exists is never rewritten.
// This method can be called concurrently.
func (b *Backend) WriteObject(o *object.Object) (ginternals.Oid, error) {
	data, oid, err := o.Compress()
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not compress object: %w", err)
	}

	b.objectMu.Lock(oid.Bytes())
	defer b.objectMu.Unlock(oid.Bytes())

	p := b.ObjectPath(oid)
	f, err := b.fs.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
	if err != nil {
		if os.IsExist(err) {
			return oid, nil
		}
		return ginternals.NullOid, xerrors.Errorf("could not create the object at %s: %w", p, err)
	}

	if _, err = f.Write(data); err != nil {
		f.Close() //nolint:errcheck // the write already failed
		return ginternals.NullOid, xerrors.Errorf("could not persist object %s: %w", oid.String(), err)
	}
	if err = f.Close(); err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not close object %s: %w", oid.String(), err)
	}

	b.cache.Add(oid, o)
	return oid, nil
}

// Object returns the object that has the given oid.
// This method can be called concurrently.
func (b *Backend) Object(oid ginternals.Oid) (*object.Object, error) {
	if cachedO, found := b.cache.Get(oid); found {
		if o, valid := cachedO.(*object.Object); valid {
			return o, nil
		}
	}

	o, err := b.readObject(oid)
	if err != nil {
		return nil, err
	}
	b.cache.Add(oid, o)
	return o, nil
}

// readObject reads an object file from disk and decodes it.
// The on-disk form is the zlib-deflated framing: an ascii type, an
// ascii space, the ascii length of the content, a null character, then
// the content itself.
func (b *Backend) readObject(oid ginternals.Oid) (o *object.Object, err error) {
	strOid := oid.String()
	p := b.ObjectPath(oid)

	f, err := b.fs.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, xerrors.Errorf("object %s: %w", strOid, ginternals.ErrObjectNotFound)
		}
		return nil, xerrors.Errorf("could not open object %s at path %s: %w", strOid, p, err)
	}
	defer errutil.Close(f, &err)

	// Objects are zlib encoded
	zlibReader, err := zlib.NewReader(f)
	if err != nil {
		return nil, xerrors.Errorf("could not decompress parts of object %s at path %s: %w", strOid, p, err)
	}
	defer errutil.Close(zlibReader, &err)

	// We directly read the entire file since most of it is the content
	// we need, this allows us to be able to easily store the object's
	// content
	buff, err := io.ReadAll(zlibReader)
	if err != nil {
		return nil, xerrors.Errorf("could not read object %s at path %s: %w", strOid, p, err)
	}

	// we keep track of where we're at in the buffer
	pointerPos := 0

	// the type of the object starts at offset 0 and ends at the first
	// space character that we'll need to trim
	typ := readutil.ReadTo(buff, ' ')
	if typ == nil || len(typ) > object.TypeMaxLen {
		return nil, xerrors.Errorf("could not find object type for %s at path %s: %w", strOid, p, object.ErrObjectInvalid)
	}

	oType, err := object.NewTypeFromString(string(typ))
	if err != nil {
		return nil, xerrors.Errorf("unsupported type %s for object %s at path %s: %w", string(typ), strOid, p, err)
	}
	pointerPos += len(typ)
	pointerPos++ // one more for the space

	// The size of the object starts after the space and ends at a NULL
	// char that we'll need to trim
	size := readutil.ReadTo(buff[pointerPos:], 0)
	if size == nil {
		return nil, xerrors.Errorf("could not find object size for %s at path %s: %w", strOid, p, object.ErrObjectInvalid)
	}
	oSize, err := strconv.Atoi(string(size))
	if err != nil {
		return nil, xerrors.Errorf("invalid size %s for object %s at path %s: %w", size, strOid, p, err)
	}
	pointerPos += len(size)
	pointerPos++                  // one more for the NULL char
	oContent := buff[pointerPos:] // sugar

	if len(oContent) != oSize {
		return nil, xerrors.Errorf("object marked as size %d, but has %d at path %s: %w", oSize, len(oContent), p, object.ErrObjectInvalid)
	}

	return object.New(oType, oContent), nil
}
