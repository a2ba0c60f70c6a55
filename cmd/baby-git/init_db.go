package main

import (
	"fmt"
	"io"

	babygit "github.com/bromaniac/baby-git"
	"github.com/bromaniac/baby-git/internal/dcpath"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newInitDBCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "create an empty object database",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return initDBCmd(cmd.ErrOrStderr(), cfg)
	}

	return cmd
}

func initDBCmd(errOut io.Writer, cfg *globalFlags) error {
	p, err := loadConfig(cfg)
	if err != nil {
		return err
	}

	// An environment override pointing at a usable directory means the
	// database already exists; nothing to create.
	if envDir := cfg.env.Get(dcpath.DBEnvironment); envDir != "" {
		if p.ObjectDirFromEnv {
			return xerrors.Errorf("object database %s already exists", envDir)
		}
		fmt.Fprintf(errOut, "%s set to bad directory %s: ", dcpath.DBEnvironment, envDir)
		fmt.Fprintln(errOut, "defaulting to private storage area")
	}

	_, err = babygit.InitRepository(p)
	return err
}
