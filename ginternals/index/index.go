// Package index implements the directory cache: an ordered set of
// cache entries persisted as the binary .dircache/index file.
//
// The on-disk format is a 32 byte header (signature, version, entry
// count, and a SHA1 over everything but itself) followed by the
// entries in strict name order, each padded to a multiple of 8 bytes.
// Integers are written in the host's native byte order; the file is a
// cache, not an interchange format.
package index

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"os"

	"github.com/bromaniac/baby-git/ginternals"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Signature is the magic opening the index header: the bytes "DIRC"
// read as a big-endian 32 bit word. It is written in native byte
// order, so a little-endian host stores it as the bytes "CRID".
const Signature uint32 = 0x44495243

// Version is the only index version this format knows about
const Version uint32 = 1

// headerSize is the on-disk size of the header: signature, version,
// entry count, and the 20 byte integrity digest
const headerSize = 12 + ginternals.OidSize

var (
	// ErrCorrupt is returned when the index file exists but its
	// signature, version, or embedded digest don't check out
	ErrCorrupt = errors.New("corrupt index file")

	// ErrLockHeld is returned when the index lock file already exists,
	// meaning another writer is active (or has crashed; recovery is
	// manual)
	ErrLockHeld = errors.New("index lock held")
)

// Index is the in-memory form of the directory cache: an ordered
// sequence of entries, sorted by name
type Index struct {
	entries []Entry
}

// New returns an empty index
func New() *Index {
	return &Index{}
}

// Len returns the number of entries in the index
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Entries returns a copy of the index's entries, in order
func (idx *Index) Entries() []Entry {
	out := make([]Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Pos finds the position of the entry with the given name.
// A match is encoded as -pos-1; otherwise the returned value is the
// position the name would be inserted at.
func (idx *Index) Pos(name string) int {
	first, last := 0, len(idx.entries)
	for last > first {
		next := (first + last) / 2
		cmp := compareNames(name, idx.entries[next].Name)
		if cmp == 0 {
			return -next - 1
		}
		if cmp < 0 {
			last = next
			continue
		}
		first = next + 1
	}
	return first
}

// Get returns the entry with the given name
func (idx *Index) Get(name string) (Entry, bool) {
	pos := idx.Pos(name)
	if pos >= 0 {
		return Entry{}, false
	}
	return idx.entries[-pos-1], true
}

// Add inserts the entry at its ordered position, replacing any
// existing entry with the same name
func (idx *Index) Add(e Entry) {
	pos := idx.Pos(e.Name)
	if pos < 0 {
		idx.entries[-pos-1] = e
		return
	}

	if len(idx.entries) == cap(idx.entries) {
		// same growth schedule as the original cache
		grown := make([]Entry, len(idx.entries), (cap(idx.entries)+16)*3/2)
		copy(grown, idx.entries)
		idx.entries = grown
	}
	idx.entries = append(idx.entries, Entry{})
	copy(idx.entries[pos+1:], idx.entries[pos:])
	idx.entries[pos] = e
}

// Remove drops the entry with the given name. Removing a name that
// isn't in the index is a no-op.
func (idx *Index) Remove(name string) {
	pos := idx.Pos(name)
	if pos < 0 {
		pos = -pos - 1
		idx.entries = append(idx.entries[:pos], idx.entries[pos+1:]...)
	}
}

// Load reads the index file at path.
// A missing file isn't an error: it loads as an empty index. Any
// mismatch in size, signature, version, or digest is reported as
// ErrCorrupt.
func Load(fs afero.Fs, path string) (idx *Index, err error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, xerrors.Errorf("could not read the index at %s: %w", path, err)
	}

	if len(data) < headerSize {
		return nil, xerrors.Errorf("file has %d bytes, the header needs %d: %w",
			len(data), headerSize, ErrCorrupt)
	}
	if binary.NativeEndian.Uint32(data[0:4]) != Signature {
		return nil, xerrors.Errorf("bad signature: %w", ErrCorrupt)
	}
	if binary.NativeEndian.Uint32(data[4:8]) != Version {
		return nil, xerrors.Errorf("bad version: %w", ErrCorrupt)
	}
	count := binary.NativeEndian.Uint32(data[8:12])

	h := sha1.New()
	h.Write(data[:12])
	h.Write(data[headerSize:])
	if !bytes.Equal(h.Sum(nil), data[12:headerSize]) {
		return nil, xerrors.Errorf("bad header sha1: %w", ErrCorrupt)
	}

	idx = &Index{
		entries: make([]Entry, 0, count),
	}
	rest := data[headerSize:]
	for i := uint32(0); i < count; i++ {
		e, size, err := decodeEntry(rest)
		if err != nil {
			return nil, xerrors.Errorf("could not decode entry %d: %w", i, err)
		}
		idx.entries = append(idx.entries, e)
		rest = rest[size:]
	}
	return idx, nil
}

// encode serializes the header and entries, computing the embedded
// digest over everything but the digest field itself
func (idx *Index) encode() []byte {
	body := new(bytes.Buffer)
	for i := range idx.entries {
		idx.entries[i].encode(body)
	}

	var hdr [12]byte
	binary.NativeEndian.PutUint32(hdr[0:4], Signature)
	binary.NativeEndian.PutUint32(hdr[4:8], Version)
	binary.NativeEndian.PutUint32(hdr[8:12], uint32(len(idx.entries)))

	h := sha1.New()
	h.Write(hdr[:])
	h.Write(body.Bytes())

	out := new(bytes.Buffer)
	out.Grow(headerSize + body.Len())
	out.Write(hdr[:])
	out.Write(h.Sum(nil))
	out.Write(body.Bytes())
	return out.Bytes()
}

// Lock holds the exclusive right to rewrite the index: it exists iff
// the lock file does. A Lock must end in exactly one of Commit or
// Rollback.
type Lock struct {
	fs       afero.Fs
	f        afero.File
	path     string
	lockPath string
	done     bool
}

// NewLock takes the index lock by creating lockPath with
// exclusive-create semantics. An existing lock file means another
// writer is active (or has crashed, in which case recovery is manual)
// and the call fails with ErrLockHeld.
func NewLock(fs afero.Fs, path, lockPath string) (*Lock, error) {
	f, err := fs.OpenFile(lockPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil, xerrors.Errorf("%s exists: %w", lockPath, ErrLockHeld)
		}
		return nil, xerrors.Errorf("could not create the lock file: %w", err)
	}
	return &Lock{
		fs:       fs,
		f:        f,
		path:     path,
		lockPath: lockPath,
	}, nil
}

// Commit streams the index into the lock file and renames it over the
// index, making the swap atomic for readers. On failure the lock file
// is removed, leaving the previous index untouched.
func (l *Lock) Commit(idx *Index) (err error) {
	if l.done {
		return xerrors.New("index lock already released")
	}
	defer func() {
		if err != nil {
			l.discard()
		}
	}()

	if _, err = l.f.Write(idx.encode()); err != nil {
		return xerrors.Errorf("could not write the index: %w", err)
	}
	if err = l.f.Close(); err != nil {
		return xerrors.Errorf("could not close the lock file: %w", err)
	}
	if err = l.fs.Rename(l.lockPath, l.path); err != nil {
		return xerrors.Errorf("could not swap the index in: %w", err)
	}
	l.done = true
	return nil
}

// Rollback abandons the rewrite and removes the lock file. Calling it
// after a Commit is a no-op, so it can be deferred unconditionally.
func (l *Lock) Rollback() {
	if l.done {
		return
	}
	l.discard()
}

func (l *Lock) discard() {
	l.f.Close()             //nolint:errcheck // nothing was swapped in
	l.fs.Remove(l.lockPath) //nolint:errcheck // nothing left to do about it
	l.done = true
}

// Save atomically rewrites the index at path: it takes the lock,
// writes, and swaps in one motion. Use NewLock directly to hold the
// lock across a longer update.
func Save(fs afero.Fs, path, lockPath string, idx *Index) error {
	lock, err := NewLock(fs, path, lockPath)
	if err != nil {
		return err
	}
	return lock.Commit(idx)
}
