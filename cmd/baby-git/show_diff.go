package main

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/bromaniac/baby-git/ginternals/index"
	"github.com/spf13/cobra"
)

func newShowDiffCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-diff",
		Short: "compare the working files against the index",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return showDiffCmd(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
	}

	return cmd
}

func showDiffCmd(out, errOut io.Writer, cfg *globalFlags) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	idx, err := r.LoadIndex()
	if err != nil {
		return err
	}

	wd := r.Config().WorkingDirectory
	for _, e := range idx.Entries() {
		fi, err := r.Config().Fs().Stat(filepath.Join(wd, e.Name))
		if err != nil {
			fmt.Fprintf(out, "%s: %s\n", e.Name, err)
			continue
		}

		cur := index.NewEntryFromFileInfo(e.Name, fi)
		if e.MatchStat(&cur) == 0 {
			fmt.Fprintf(out, "%s: ok\n", e.Name)
			continue
		}

		fmt.Fprintf(out, "%s:  %s\n", e.Name, e.ID.String())

		o, err := r.GetObject(e.ID)
		if err != nil {
			fmt.Fprintln(errOut, err)
			continue
		}
		runDiff(out, errOut, wd, e.Name, o.Bytes())
	}
	return nil
}

// runDiff pipes the stored payload into the external diff utility, so
// the rendering of the differences stays out of this program.
// diff exits 1 when the files differ; only a failure to run it at all
// is worth reporting.
func runDiff(out, errOut io.Writer, dir, name string, old []byte) {
	cmd := exec.Command("diff", "--strip-trailing-cr", "-u", "-", name)
	cmd.Dir = dir
	cmd.Stdin = bytes.NewReader(old)
	cmd.Stdout = out
	cmd.Stderr = errOut

	if err := cmd.Run(); err != nil {
		if _, differs := err.(*exec.ExitError); differs {
			return
		}
		fmt.Fprintln(errOut, err)
	}
}
