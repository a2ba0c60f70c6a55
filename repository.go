// Package babygit implements a minimal content-addressed version
// control core: a compressed object database, a flat staging index,
// and the builders gluing the two together
package babygit

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/bromaniac/baby-git/backend/fsbackend"
	"github.com/bromaniac/baby-git/ginternals"
	"github.com/bromaniac/baby-git/ginternals/config"
	"github.com/bromaniac/baby-git/ginternals/index"
	"github.com/bromaniac/baby-git/ginternals/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// List of errors returned by the Repository struct
var (
	// ErrEmptyIndex is returned when an operation needs at least one
	// staged file and the index has none
	ErrEmptyIndex = errors.New("the index is empty")

	// ErrBlobMissing is returned when an index entry references a blob
	// that isn't in the object store
	ErrBlobMissing = errors.New("indexed blob missing from the object store")
)

// Repository glues the object store and the index together. It's the
// explicit context value every command threads around; nothing in the
// package keeps process-wide state.
type Repository struct {
	cfg     *config.Config
	backend *fsbackend.Backend
}

// InitRepository creates the on-disk layout (.dircache plus the object
// store fan-out) and returns a Repository on top of it
func InitRepository(cfg *config.Config) (*Repository, error) {
	r := NewRepository(cfg)

	if err := cfg.Fs().MkdirAll(cfg.DotDirPath, 0o700); err != nil {
		return nil, xerrors.Errorf("could not create %s: %w", cfg.DotDirPath, err)
	}
	if err := r.backend.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewRepository returns a Repository for an already-initialized
// working directory.
// The object store directories aren't checked: a missing store simply
// surfaces as missing objects.
func NewRepository(cfg *config.Config) *Repository {
	return &Repository{
		cfg:     cfg,
		backend: fsbackend.New(cfg.Fs(), cfg.ObjectDirPath),
	}
}

// Config returns the repository's resolved configuration
func (r *Repository) Config() *config.Config {
	return r.cfg
}

// GetObject returns the object matching the given id
func (r *Repository) GetObject(oid ginternals.Oid) (*object.Object, error) {
	return r.backend.Object(oid)
}

// WriteObject persists an object and returns its id
func (r *Repository) WriteObject(o *object.Object) (ginternals.Oid, error) {
	return r.backend.WriteObject(o)
}

// HasObject returns whether the store holds the given id
func (r *Repository) HasObject(oid ginternals.Oid) bool {
	return r.backend.HasObject(oid)
}

// LoadIndex reads the current index. A repository that was never
// staged into loads as an empty index.
func (r *Repository) LoadIndex() (*index.Index, error) {
	return index.Load(r.cfg.Fs(), r.cfg.IndexPath)
}

// SaveIndex atomically rewrites the index through the lock file
func (r *Repository) SaveIndex(idx *index.Index) error {
	return index.Save(r.cfg.Fs(), r.cfg.IndexPath, r.cfg.IndexLockPath, idx)
}

// LockIndex takes the index lock, reserving the right to rewrite the
// index until the lock is committed or rolled back
func (r *Repository) LockIndex() (*index.Lock, error) {
	return index.NewLock(r.cfg.Fs(), r.cfg.IndexPath, r.cfg.IndexLockPath)
}

// StageFile stages the working file at path into idx: its contents
// are persisted as a blob and its stat captured as a cache entry.
//
// A path that has vanished from the working directory is removed from
// the index instead; that's a success, not an error.
func (r *Repository) StageFile(idx *index.Index, path string) error {
	fullPath := filepath.Join(r.cfg.WorkingDirectory, path)

	fi, err := r.cfg.Fs().Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			idx.Remove(path)
			return nil
		}
		return xerrors.Errorf("could not stat %s: %w", path, err)
	}

	data, err := afero.ReadFile(r.cfg.Fs(), fullPath)
	if err != nil {
		return xerrors.Errorf("could not read %s: %w", path, err)
	}

	oid, err := r.WriteObject(object.New(object.TypeBlob, data))
	if err != nil {
		return xerrors.Errorf("could not write the blob for %s: %w", path, err)
	}

	e := index.NewEntryFromFileInfo(path, fi)
	e.ID = oid
	idx.Add(e)
	return nil
}

// WriteTree builds a flat tree from the current index and persists it.
//
// Every entry's blob must still be present in the store; a missing one
// fails the whole operation before anything is written.
func (r *Repository) WriteTree() (ginternals.Oid, error) {
	idx, err := r.LoadIndex()
	if err != nil {
		return ginternals.NullOid, err
	}
	if idx.Len() == 0 {
		return ginternals.NullOid, ErrEmptyIndex
	}

	entries := make([]object.TreeEntry, 0, idx.Len())
	for _, e := range idx.Entries() {
		if !r.HasObject(e.ID) {
			return ginternals.NullOid, xerrors.Errorf("%s (%s): %w", e.Name, e.ID.String(), ErrBlobMissing)
		}
		entries = append(entries, object.TreeEntry{
			Mode: e.Mode,
			Name: e.Name,
			ID:   e.ID,
		})
	}

	return r.WriteObject(object.NewTree(entries).ToObject())
}

// CommitTree builds a commit referencing the given tree and parents,
// persists it, and returns its id
func (r *Repository) CommitTree(treeID ginternals.Oid, parents []ginternals.Oid, author object.Signature, message string) (ginternals.Oid, error) {
	ci, err := object.NewCommit(treeID, author, &object.CommitOptions{
		Message:   message,
		ParentIDs: parents,
	})
	if err != nil {
		return ginternals.NullOid, err
	}
	return r.WriteObject(ci.ToObject())
}
