package main

import (
	"fmt"
	"io"

	"github.com/bromaniac/baby-git/ginternals"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newReadTreeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read-tree <tree-sha1>",
		Short: "list the entries of a tree object",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return readTreeCmd(cmd.OutOrStdout(), cfg, args[0])
	}

	return cmd
}

func readTreeCmd(out io.Writer, cfg *globalFlags, treeHex string) error {
	oid, err := ginternals.NewOidFromStr(treeHex)
	if err != nil {
		return xerrors.Errorf("tree %s: %w", treeHex, err)
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	o, err := r.GetObject(oid)
	if err != nil {
		return err
	}
	tree, err := o.AsTree()
	if err != nil {
		return err
	}

	for _, e := range tree.Entries() {
		fmt.Fprintf(out, "%o %s (%s)\n", e.Mode, e.Name, e.ID.String())
	}
	return nil
}
