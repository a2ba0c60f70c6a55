package main

import (
	"fmt"
	"io"

	"github.com/bromaniac/baby-git/ginternals"
	"github.com/bromaniac/baby-git/ginternals/object"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newCommitTreeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit-tree <tree-sha1> [-p <parent-sha1>]...",
		Short: "create a commit object from a tree, reading the message on stdin",
		Args:  cobra.ExactArgs(1),
	}

	parents := cmd.Flags().StringArrayP("parent", "p", nil, "id of a parent commit object; may be repeated, the order is preserved")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return commitTreeCmd(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), cfg, args[0], *parents)
	}

	return cmd
}

func commitTreeCmd(out, errOut io.Writer, in io.Reader, cfg *globalFlags, treeHex string, parentHexes []string) error {
	treeID, err := ginternals.NewOidFromStr(treeHex)
	if err != nil {
		return xerrors.Errorf("tree %s: %w", treeHex, err)
	}

	if len(parentHexes) > object.MaxParents {
		return xerrors.Errorf("%d parents given: %w", len(parentHexes), object.ErrTooManyParents)
	}
	parents := make([]ginternals.Oid, 0, len(parentHexes))
	for _, h := range parentHexes {
		oid, err := ginternals.NewOidFromStr(h)
		if err != nil {
			return xerrors.Errorf("parent %s: %w", h, err)
		}
		parents = append(parents, oid)
	}

	if len(parents) == 0 {
		fmt.Fprintf(errOut, "Committing initial tree %s\n", treeHex)
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	author, err := r.Config().Identity()
	if err != nil {
		return err
	}

	message, err := io.ReadAll(in)
	if err != nil {
		return xerrors.Errorf("could not read the commit message: %w", err)
	}

	commitID, err := r.CommitTree(treeID, parents, author, string(message))
	if err != nil {
		return err
	}

	fmt.Fprintln(out, commitID.String())
	return nil
}
