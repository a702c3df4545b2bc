package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/livelink/pkg/config"
	"github.com/arthur-debert/livelink/pkg/git"
	"github.com/arthur-debert/livelink/pkg/logging"
	"github.com/arthur-debert/livelink/pkg/pipeline"
	"github.com/arthur-debert/livelink/pkg/runner"
	"github.com/arthur-debert/livelink/pkg/types"
)

// LinkOptions contains everything one link run needs. Runner, Cloner and
// FileSystem are optional and default to the real implementations.
type LinkOptions struct {
	Options    *config.Options
	FileSystem types.FS
	Runner     runner.Runner
	Cloner     git.Cloner

	// Stdout and Stderr receive child process output and clone progress
	Stdout io.Writer
	Stderr io.Writer
}

// Link resolves the configuration and runs the pipeline. When resolution
// fails the result is nil and nothing has been executed.
func Link(ctx context.Context, opts LinkOptions) (*types.PipelineResult, error) {
	logger := logging.GetLogger("core.link")

	cfg, err := Resolve(opts.Options, opts.FileSystem)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve configuration")
		return nil, err
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	r := opts.Runner
	if r == nil {
		r = runner.New(runner.Options{
			Timeout: cfg.Timeout,
			Stdout:  stdout,
			Stderr:  stderr,
		})
	}

	c := opts.Cloner
	if c == nil {
		c = git.NewCloner(git.Options{
			Progress: func(line string) {
				fmt.Fprintln(stderr, line)
			},
		})
	}

	return pipeline.New(pipeline.Options{Runner: r, Cloner: c}).Run(ctx, cfg)
}
