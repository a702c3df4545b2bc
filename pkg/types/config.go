package types

import "time"

// ResolvedConfig is the fully materialized configuration for one link run.
// It is built once from intake options, enriched by repository resolution,
// and read-only afterwards.
type ResolvedConfig struct {
	// Cwd is the consuming project; link-back runs here
	Cwd string `json:"cwd" yaml:"cwd" toml:"cwd"`

	// Dest is the root directory clones are placed under
	Dest string `json:"dest" yaml:"dest" toml:"dest"`

	// ID is the package identifier as it appears under node_modules
	ID string `json:"id" yaml:"id" toml:"id"`

	// Manifest is the manifest filename inside the installed package
	Manifest string `json:"manifest" yaml:"manifest" toml:"manifest"`

	// Repo is the normalized, fetchable repository URL
	Repo string `json:"repo" yaml:"repo" toml:"repo"`

	// Dir is the clone's directory name within Dest
	Dir string `json:"dir" yaml:"dir" toml:"dir"`

	// CloneDir is always filepath.Join(Dest, Dir)
	CloneDir string `json:"clone_dir" yaml:"clone_dir" toml:"clone_dir"`

	// PackageManager is the command used for install and link
	PackageManager string `json:"package_manager" yaml:"package_manager" toml:"package_manager"`

	AbortOnCloneFailure bool          `json:"abort_on_clone_failure" yaml:"abort_on_clone_failure" toml:"abort_on_clone_failure"`
	DryRun              bool          `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	Timeout             time.Duration `json:"timeout" yaml:"timeout" toml:"timeout"`
}
