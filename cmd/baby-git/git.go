package main

import (
	"github.com/bromaniac/baby-git/internal/env"
	"github.com/spf13/cobra"
)

// globalFlags represents the flags shared by every subcommand
type globalFlags struct {
	// C works like git's -C: run as if started in the provided path
	C string

	env *env.Env
}

func newRootCmd(e *env.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "baby-git",
		Short:         "a minimal content-addressed version control core",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cfg := &globalFlags{
		env: e,
	}
	cmd.PersistentFlags().StringVarP(&cfg.C, "C", "C", "", "Run as if baby-git was started in the provided path instead of the current working directory.")

	cmd.AddCommand(newInitDBCmd(cfg))
	cmd.AddCommand(newUpdateCacheCmd(cfg))
	cmd.AddCommand(newWriteTreeCmd(cfg))
	cmd.AddCommand(newCommitTreeCmd(cfg))
	cmd.AddCommand(newReadTreeCmd(cfg))
	cmd.AddCommand(newCatFileCmd(cfg))
	cmd.AddCommand(newShowDiffCmd(cfg))

	return cmd
}
