package main

import (
	"fmt"
	"io"

	"github.com/bromaniac/baby-git/internal/pathutil"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newUpdateCacheCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-cache <path>...",
		Short: "stage working files into the index",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return updateCacheCmd(cmd.ErrOrStderr(), cfg, args)
	}

	return cmd
}

func updateCacheCmd(errOut io.Writer, cfg *globalFlags, paths []string) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	idx, err := r.LoadIndex()
	if err != nil {
		return xerrors.Errorf("cache corrupted: %w", err)
	}

	// The lock is taken before any staging starts: holding the lock
	// file is the sole right to rewrite the index, and everything
	// staged below either lands atomically or not at all.
	lock, err := r.LockIndex()
	if err != nil {
		return xerrors.Errorf("unable to create new cachefile: %w", err)
	}
	defer lock.Rollback()

	for _, path := range paths {
		if !pathutil.IsValid(path) {
			fmt.Fprintf(errOut, "Ignoring path %s\n", path)
			continue
		}
		if err := r.StageFile(idx, path); err != nil {
			fmt.Fprintf(errOut, "Unable to add %s to database\n", path)
			return err
		}
	}

	return lock.Commit(idx)
}
