package config

import (
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/bromaniac/baby-git/ginternals/object"
	"github.com/pkg/errors"
)

// Environment variables overriding the commit identity
const (
	CommitterNameEnv  = "COMMITTER_NAME"
	CommitterEmailEnv = "COMMITTER_EMAIL"
	CommitterDateEnv  = "COMMITTER_DATE"
)

// Identity resolves the signature used for both the author and the
// committer of a commit.
//
// Each field resolves independently: the COMMITTER_* environment
// variables win, then the [user] section of the config file, then the
// OS account (full name or login name, login@hostname, and the current
// local time). The structural delimiters are stripped after the
// overrides are applied.
func (cfg *Config) Identity() (object.Signature, error) {
	name := cfg.env.Get(CommitterNameEnv)
	if name == "" {
		name = cfg.LocalConfig.UserName
	}
	email := cfg.env.Get(CommitterEmailEnv)
	if email == "" {
		email = cfg.LocalConfig.UserEmail
	}

	if name == "" || email == "" {
		u, err := user.Current()
		if err != nil {
			return object.Signature{}, errors.Wrap(err, "could not look up the current user")
		}
		if name == "" {
			// the full name can legitimately be empty, the login can't
			name = u.Name
			if name == "" {
				name = u.Username
			}
		}
		if email == "" {
			hostname, err := os.Hostname()
			if err != nil {
				return object.Signature{}, errors.Wrap(err, "could not look up the hostname")
			}
			email = u.Username + "@" + hostname
		}
	}

	date := cfg.env.Get(CommitterDateEnv)
	if date == "" {
		date = time.Now().Format(time.ANSIC)
	}

	sig := object.Signature{
		Name:  strings.TrimSpace(name),
		Email: email,
		Date:  date,
	}
	return sig.Sanitize(), nil
}
