//go:build !linux && !darwin

package index

import "os"

// statHasInodes reports whether this platform exposes stable device
// and inode numbers
const statHasInodes = false

func fillSysStat(e *Entry, fi os.FileInfo) {}
