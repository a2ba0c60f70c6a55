// Package fsbackend contains the filesystem implementation of the
// object database
package fsbackend

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bromaniac/baby-git/internal/cache"
	"github.com/bromaniac/baby-git/internal/syncutil"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// cachedObjects is the number of decoded objects kept in memory
const cachedObjects = 100

// Backend is an object database backed by a directory tree: one
// deflate-compressed file per object, fanned out over 256
// subdirectories keyed by the first two hex chars of the id
type Backend struct {
	fs   afero.Fs
	root string

	cache    *cache.LRU
	objectMu *syncutil.NamedMutex
}

// New returns a new Backend storing its objects under root
func New(fs afero.Fs, root string) *Backend {
	return &Backend{
		fs:       fs,
		root:     root,
		cache:    cache.NewLRU(cachedObjects),
		objectMu: syncutil.NewNamedMutex(101),
	}
}

// Root returns the path of the object store
func (b *Backend) Root() string {
	return b.root
}

// Init creates the object store: the root directory and the 00..ff
// fan-out underneath it, all mode 0700. Directories that already
// exist are left alone.
func (b *Backend) Init() error {
	if err := b.fs.MkdirAll(b.root, 0o700); err != nil {
		return xerrors.Errorf("could not create the object store at %s: %w", b.root, err)
	}
	for i := 0; i <= 0xff; i++ {
		p := filepath.Join(b.root, fmt.Sprintf("%02x", i))
		if err := b.fs.Mkdir(p, 0o700); err != nil && !os.IsExist(err) {
			return xerrors.Errorf("could not create the object directory %s: %w", p, err)
		}
	}
	return nil
}
