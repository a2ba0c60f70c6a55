package index

import (
	"os"
)

// NewEntryFromFileInfo builds an entry for a working file from its
// stat result. The id is left zero; it's the caller's job to persist
// the blob and fill it in.
//
// Fields the platform's stat doesn't expose (see entry_stat_*.go) are
// left zero, and the matching comparison bits are skipped.
func NewEntryFromFileInfo(name string, fi os.FileInfo) Entry {
	mtime := fi.ModTime()
	e := Entry{
		Name:      name,
		MTimeSec:  uint32(mtime.Unix()),
		MTimeNsec: uint32(mtime.Nanosecond()),
		Mode:      uint32(fi.Mode()),
		Size:      uint32(fi.Size()),
	}
	fillSysStat(&e, fi)
	return e
}
