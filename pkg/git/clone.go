// Package git clones package repositories with go-git.
package git

import (
	"context"

	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/logging"
	gogit "github.com/go-git/go-git/v5"
	"github.com/rs/zerolog"
)

// Cloner clones a repository into a directory
type Cloner interface {
	Clone(ctx context.Context, url, dir string) error
}

// Options configures a GoGitCloner
type Options struct {
	// Progress receives remote progress output line by line
	Progress func(line string)

	// Logger defaults to the package component logger
	Logger *zerolog.Logger
}

// GoGitCloner is a Cloner backed by go-git; no git binary is required
type GoGitCloner struct {
	progress func(line string)
	logger   zerolog.Logger
}

// NewCloner creates a GoGitCloner
func NewCloner(opts Options) *GoGitCloner {
	logger := logging.GetLogger("git")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	c := &GoGitCloner{progress: opts.Progress, logger: logger}
	if c.progress == nil {
		c.progress = func(line string) {
			c.logger.Info().Msg(line)
		}
	}
	return c
}

// Clone clones url into dir. go-git removes a directory it created itself
// when the clone fails.
func (c *GoGitCloner) Clone(ctx context.Context, url, dir string) error {
	done := logging.LogOperationStart(c.logger, "clone")
	defer done()

	progress := logging.NewLineWriter(c.progress)
	_, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:      url,
		Progress: progress,
	})
	progress.Flush()

	if err != nil {
		return errors.Wrapf(err, errors.ErrClone, "failed to clone %s into %s", url, dir).
			WithDetail("repo", url).
			WithDetail("dir", dir)
	}
	return nil
}
