package core

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/livelink/pkg/config"
	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/filesystem"
	"github.com/arthur-debert/livelink/pkg/logging"
	"github.com/arthur-debert/livelink/pkg/manifest"
	"github.com/arthur-debert/livelink/pkg/repository"
	"github.com/arthur-debert/livelink/pkg/types"
)

// Resolve builds the ResolvedConfig for opts. fsys is used to read the
// installed manifest and defaults to the OS filesystem.
func Resolve(opts *config.Options, fsys types.FS) (*types.ResolvedConfig, error) {
	logger := logging.GetLogger("core.resolve")

	if opts == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no options given")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	cwd := opts.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to determine working directory")
		}
		cwd = wd
	}

	manifestFile := opts.Manifest
	if manifestFile == "" {
		manifestFile = manifest.DefaultFile
	}

	var repo string
	if opts.Repo != "" {
		repo = repository.Normalize(opts.Repo)
		logger.Debug().
			Str("declared", opts.Repo).
			Str("repo", repo).
			Msg("Using explicit repository")
	} else {
		extracted, err := manifest.NewExtractor(fsys).Extract(cwd, opts.ID, manifestFile)
		if err != nil {
			return nil, err
		}
		repo = extracted
	}

	if err := repository.Validate(repo); err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		dir = repository.DirName(repo)
	}
	if dir == "" || dir == "." || dir == ".." {
		return nil, errors.Newf(errors.ErrInvalidRepository,
			"cannot derive a clone directory from %s", repo).
			WithDetail("repo", repo)
	}

	cfg := &types.ResolvedConfig{
		Cwd:                 cwd,
		Dest:                opts.Dest,
		ID:                  opts.ID,
		Manifest:            manifestFile,
		Repo:                repo,
		Dir:                 dir,
		CloneDir:            filepath.Join(opts.Dest, dir),
		PackageManager:      opts.PackageManager,
		AbortOnCloneFailure: opts.AbortsOnCloneFailure(),
		DryRun:              opts.DryRun,
		Timeout:             opts.Timeout,
	}

	logger.Info().
		Str("id", cfg.ID).
		Str("repo", cfg.Repo).
		Str("cloneDir", cfg.CloneDir).
		Msg("Resolved configuration")
	return cfg, nil
}
