package config

import (
	"time"

	"github.com/arthur-debert/livelink/pkg/errors"
)

// Options is the intake configuration for one link run, before repository
// resolution. A nil AbortOnCloneFailure means true: a failed clone ends the
// run unless a caller opts out.
type Options struct {
	Cwd                 string        `koanf:"cwd"`
	Dest                string        `koanf:"dest"`
	ID                  string        `koanf:"id"`
	Manifest            string        `koanf:"manifest"`
	Dir                 string        `koanf:"dir"`
	Repo                string        `koanf:"repo"`
	PackageManager      string        `koanf:"package_manager"`
	AbortOnCloneFailure *bool         `koanf:"abort_on_clone_failure"`
	Timeout             time.Duration `koanf:"timeout"`
	DryRun              bool          `koanf:"dry_run"`
}

// Keys lists every recognized configuration key
var Keys = []string{
	"cwd",
	"dest",
	"id",
	"manifest",
	"dir",
	"repo",
	"package_manager",
	"abort_on_clone_failure",
	"timeout",
	"dry_run",
}

// ToMap renders the options with the same keys the config files use
func (o *Options) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"cwd":                    o.Cwd,
		"dest":                   o.Dest,
		"id":                     o.ID,
		"manifest":               o.Manifest,
		"dir":                    o.Dir,
		"repo":                   o.Repo,
		"package_manager":        o.PackageManager,
		"abort_on_clone_failure": o.AbortsOnCloneFailure(),
		"timeout":                o.Timeout.String(),
		"dry_run":                o.DryRun,
	}
}

// AbortsOnCloneFailure reports the effective clone failure policy
func (o *Options) AbortsOnCloneFailure() bool {
	return o.AbortOnCloneFailure == nil || *o.AbortOnCloneFailure
}

// Validate checks the options that cannot be defaulted
func (o *Options) Validate() error {
	if o.Dest == "" {
		return errors.New(errors.ErrConfigValid, "dest is required").WithDetail("key", "dest")
	}
	if o.ID == "" {
		return errors.New(errors.ErrConfigValid, "id is required").WithDetail("key", "id")
	}
	if o.PackageManager == "" {
		return errors.New(errors.ErrConfigValid, "package_manager must not be empty").
			WithDetail("key", "package_manager")
	}
	if o.Timeout < 0 {
		return errors.Newf(errors.ErrConfigValid, "timeout must not be negative, got %s", o.Timeout).
			WithDetail("key", "timeout")
	}
	return nil
}
