package main

import (
	babygit "github.com/bromaniac/baby-git"
	"github.com/bromaniac/baby-git/ginternals/config"
	"golang.org/x/xerrors"
)

func loadConfig(cfg *globalFlags) (*config.Config, error) {
	p, err := config.LoadConfig(cfg.env, config.LoadConfigOptions{
		WorkingDirectory: cfg.C,
	})
	if err != nil {
		return nil, xerrors.Errorf("could not resolve the configuration: %w", err)
	}
	return p, nil
}

func loadRepository(cfg *globalFlags) (*babygit.Repository, error) {
	p, err := loadConfig(cfg)
	if err != nil {
		return nil, err
	}
	return babygit.NewRepository(p), nil
}
