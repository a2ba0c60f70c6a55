package main

import (
	"errors"
	"fmt"
	"io"

	babygit "github.com/bromaniac/baby-git"
	"github.com/spf13/cobra"
)

func newWriteTreeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write-tree",
		Short: "persist the index as a tree object",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return writeTreeCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func writeTreeCmd(out io.Writer, cfg *globalFlags) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	treeID, err := r.WriteTree()
	if err != nil {
		if errors.Is(err, babygit.ErrEmptyIndex) {
			return errors.New("No file-cache to create a tree of")
		}
		return err
	}

	fmt.Fprintln(out, treeID.String())
	return nil
}
