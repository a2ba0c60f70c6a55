package index

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"

	"github.com/bromaniac/baby-git/ginternals"
	"golang.org/x/xerrors"
)

// entryFixedSize is the on-disk size of every field of an entry up to,
// but excluding, the name: ctime + mtime (16), six stat words (24),
// the oid (20), and the 16 bit name length (2)
const entryFixedSize = 16 + 24 + ginternals.OidSize + 2

// Entry represents one record of the index, describing one staged
// working file.
//
// All the integers mirror the raw stat fields of the file at staging
// time, and are persisted in the host's native byte order. The entry's
// oid references the deflated blob holding the file's contents.
type Entry struct {
	Name string

	CTimeSec  uint32
	CTimeNsec uint32
	MTimeSec  uint32
	MTimeNsec uint32

	Dev  uint32
	Ino  uint32
	Mode uint32
	UID  uint32
	GID  uint32
	Size uint32

	ID ginternals.Oid
}

// Changed is a bitmask describing which stat fields differ between an
// entry and a fresh stat of the working file
type Changed uint32

// List of the possible change bits
const (
	MTimeChanged Changed = 1 << iota
	CTimeChanged
	OwnerChanged
	ModeChanged
	InodeChanged
	DataChanged
)

// NameLen returns the entry's name length as persisted: clamped to
// what the 16 bit field can carry. Longer paths are not representable.
func (e *Entry) NameLen() uint16 {
	if len(e.Name) > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(len(e.Name))
}

// size returns the entry's on-disk size: the fixed fields, the name,
// at least one null terminator, rounded up to a multiple of 8
func (e *Entry) size() int {
	return (entryFixedSize + int(e.NameLen()) + 8) &^ 7
}

// encode appends the entry's canonical on-disk bytes to buf
func (e *Entry) encode(buf *bytes.Buffer) {
	var word [4]byte
	writeWord := func(v uint32) {
		binary.NativeEndian.PutUint32(word[:], v)
		buf.Write(word[:])
	}

	writeWord(e.CTimeSec)
	writeWord(e.CTimeNsec)
	writeWord(e.MTimeSec)
	writeWord(e.MTimeNsec)
	writeWord(e.Dev)
	writeWord(e.Ino)
	writeWord(e.Mode)
	writeWord(e.UID)
	writeWord(e.GID)
	writeWord(e.Size)
	buf.Write(e.ID.Bytes())

	namelen := e.NameLen()
	binary.NativeEndian.PutUint16(word[:2], namelen)
	buf.Write(word[:2])

	buf.WriteString(e.Name[:namelen])
	for pad := e.size() - entryFixedSize - int(namelen); pad > 0; pad-- {
		buf.WriteByte(0)
	}
}

// decodeEntry decodes one entry from the start of data and returns it
// along with its on-disk size. The returned entry owns its memory, it
// does not alias data.
func decodeEntry(data []byte) (e Entry, size int, err error) {
	if len(data) < entryFixedSize {
		return e, 0, xerrors.Errorf("%d bytes left for a %d byte entry header: %w",
			len(data), entryFixedSize, ErrCorrupt)
	}

	offset := 0
	readWord := func() uint32 {
		v := binary.NativeEndian.Uint32(data[offset:])
		offset += 4
		return v
	}

	e.CTimeSec = readWord()
	e.CTimeNsec = readWord()
	e.MTimeSec = readWord()
	e.MTimeNsec = readWord()
	e.Dev = readWord()
	e.Ino = readWord()
	e.Mode = readWord()
	e.UID = readWord()
	e.GID = readWord()
	e.Size = readWord()

	e.ID, err = ginternals.NewOidFromBytes(data[offset : offset+ginternals.OidSize])
	if err != nil {
		return e, 0, err
	}
	offset += ginternals.OidSize

	namelen := int(binary.NativeEndian.Uint16(data[offset:]))
	offset += 2

	size = (entryFixedSize + namelen + 8) &^ 7
	if len(data) < size {
		return e, 0, xerrors.Errorf("%d bytes left for a %d byte entry: %w",
			len(data), size, ErrCorrupt)
	}
	e.Name = string(data[offset : offset+namelen])
	return e, size, nil
}

// MatchStat compares the entry against a freshly built entry for the
// same working file and returns the set of changed fields.
//
// The inode and device numbers are only compared on platforms that
// expose stable values for them; elsewhere both sides stat to zero and
// the check is compiled out.
func (e *Entry) MatchStat(cur *Entry) Changed {
	var changed Changed

	if e.MTimeSec != cur.MTimeSec || e.MTimeNsec != cur.MTimeNsec {
		changed |= MTimeChanged
	}
	if e.CTimeSec != cur.CTimeSec || e.CTimeNsec != cur.CTimeNsec {
		changed |= CTimeChanged
	}
	if e.UID != cur.UID || e.GID != cur.GID {
		changed |= OwnerChanged
	}
	if e.Mode != cur.Mode {
		changed |= ModeChanged
	}
	if statHasInodes && (e.Dev != cur.Dev || e.Ino != cur.Ino) {
		changed |= InodeChanged
	}
	if e.Size != cur.Size {
		changed |= DataChanged
	}
	return changed
}

// compareNames orders two entry names: byte-wise comparison, with a
// shorter name sorting before a longer one sharing the same prefix
func compareNames(name1, name2 string) int {
	len1, len2 := len(name1), len(name2)
	l := len1
	if len2 < l {
		l = len2
	}
	if cmp := strings.Compare(name1[:l], name2[:l]); cmp != 0 {
		return cmp
	}
	switch {
	case len1 < len2:
		return -1
	case len1 > len2:
		return 1
	default:
		return 0
	}
}
