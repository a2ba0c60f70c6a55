package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/bromaniac/baby-git/ginternals"
	"github.com/bromaniac/baby-git/internal/errutil"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newCatFileCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat-file <sha1>",
		Short: "dump an object's payload into a temporary file",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return catFileCmd(cmd.OutOrStdout(), cfg, args[0])
	}

	return cmd
}

func catFileCmd(out io.Writer, cfg *globalFlags, objHex string) (err error) {
	oid, err := ginternals.NewOidFromStr(objHex)
	if err != nil {
		return xerrors.Errorf("object %s: %w", objHex, err)
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	o, err := r.GetObject(oid)
	if err != nil {
		return err
	}

	f, err := afero.TempFile(r.Config().Fs(), r.Config().WorkingDirectory, "temp_git_file_*")
	if err != nil {
		return xerrors.Errorf("unable to create tempfile: %w", err)
	}
	defer errutil.Close(f, &err)

	typ := o.Type().String()
	n, err := f.Write(o.Bytes())
	if err != nil || n != o.Size() {
		// the payload didn't make it out whole; flag the file rather
		// than failing after it was created
		typ = "bad"
		err = nil
	}

	fmt.Fprintf(out, "%s: %s\n", filepath.Base(f.Name()), typ)
	return nil
}
