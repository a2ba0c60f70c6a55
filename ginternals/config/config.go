// Package config resolves the process-wide paths once, so commands
// can share a single explicit value instead of reading globals at
// random call sites. The commit identity is resolved from that value
// on each call to Identity.
package config

import (
	"os"
	"path/filepath"

	"github.com/bromaniac/baby-git/internal/dcpath"
	"github.com/bromaniac/baby-git/internal/env"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	ini "gopkg.in/ini.v1"
)

// Config represents the resolved environment of a command: every path
// derives from the working directory exactly once, at load time
type Config struct {
	fs  afero.Fs
	env *env.Env

	// WorkingDirectory is the directory the command runs against
	WorkingDirectory string

	// DotDirPath is the path to the .dircache directory
	DotDirPath string

	// ObjectDirPath is the root of the object store.
	// Resolution order: SHA1_FILE_DIRECTORY (if it names an existing
	// directory), the optional config file, then
	// WorkingDirectory/.dircache/objects
	ObjectDirPath string

	// ObjectDirFromEnv reports whether ObjectDirPath was taken from
	// the environment override
	ObjectDirFromEnv bool

	// IndexPath is the path to the binary index file
	IndexPath string

	// IndexLockPath is the path to the index lock file
	IndexLockPath string

	// LocalConfig holds the values of the optional .dircache/config
	// file. Empty when the file doesn't exist.
	LocalConfig FileConfig
}

// FileConfig represents the supported keys of the optional
// .dircache/config INI file
type FileConfig struct {
	// ObjectDir is [core] objects: an alternate object store root
	ObjectDir string
	// UserName is [user] name
	UserName string
	// UserEmail is [user] email
	UserEmail string
}

// LoadConfigOptions represents the options of LoadConfig
type LoadConfigOptions struct {
	// WorkingDirectory overrides the process working directory
	WorkingDirectory string
	// Fs overrides the filesystem implementation, defaults to the OS
	Fs afero.Fs
}

// LoadConfig resolves a Config for the given environment
func LoadConfig(e *env.Env, opts LoadConfigOptions) (*Config, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	wd := opts.WorkingDirectory
	if wd == "" {
		var err error
		wd, err = os.Getwd()
		if err != nil {
			return nil, xerrors.Errorf("could not get the working directory: %w", err)
		}
	}

	cfg := &Config{
		fs:               fs,
		env:              e,
		WorkingDirectory: wd,
		DotDirPath:       dcpath.DotDir(wd),
		IndexPath:        dcpath.Index(wd),
		IndexLockPath:    dcpath.IndexLock(wd),
	}

	if err := cfg.loadFileConfig(); err != nil {
		return nil, err
	}
	cfg.resolveObjectDir()
	return cfg, nil
}

// Fs returns the filesystem implementation every component should use
func (cfg *Config) Fs() afero.Fs {
	return cfg.fs
}

// Env returns the environment snapshot the config was resolved from
func (cfg *Config) Env() *env.Env {
	return cfg.env
}

// loadFileConfig reads the optional .dircache/config file. A missing
// file is fine; an unparseable one is not.
func (cfg *Config) loadFileConfig() error {
	p := dcpath.ConfigFile(cfg.WorkingDirectory)
	data, err := afero.ReadFile(cfg.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return xerrors.Errorf("could not read the config file at %s: %w", p, err)
	}

	f, err := ini.Load(data)
	if err != nil {
		return xerrors.Errorf("could not parse the config file at %s: %w", p, err)
	}

	cfg.LocalConfig = FileConfig{
		ObjectDir: f.Section("core").Key("objects").String(),
		UserName:  f.Section("user").Key("name").String(),
		UserEmail: f.Section("user").Key("email").String(),
	}
	return nil
}

// resolveObjectDir picks the object store root, honoring the
// environment override only when it names an existing directory
func (cfg *Config) resolveObjectDir() {
	if p := cfg.env.Get(dcpath.DBEnvironment); p != "" {
		if ok, _ := afero.DirExists(cfg.fs, p); ok {
			cfg.ObjectDirPath = p
			cfg.ObjectDirFromEnv = true
			return
		}
	}

	if p := cfg.LocalConfig.ObjectDir; p != "" {
		if !filepath.IsAbs(p) {
			p = filepath.Join(cfg.WorkingDirectory, p)
		}
		cfg.ObjectDirPath = p
		return
	}

	cfg.ObjectDirPath = dcpath.DefaultObjectsDir(cfg.WorkingDirectory)
}
