// Package pipeline runs the link pipeline: clone the package repository,
// install its dependencies, register it as globally linkable and link it
// back into the consuming project.
//
// Steps run strictly in order and each one depends on the filesystem state
// left by the previous one. The first failing step ends the run; later steps
// are recorded as skipped and never invoked. Nothing is retried or rolled
// back.
//
// A failed clone is the one configurable exception. With
// AbortOnCloneFailure set (the default) it ends the run like any other
// failure. Without it the failure is reported and the remaining steps still
// run, which lets an existing checkout be relinked.
package pipeline

import (
	"context"
	"time"

	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/git"
	"github.com/arthur-debert/livelink/pkg/logging"
	"github.com/arthur-debert/livelink/pkg/runner"
	"github.com/arthur-debert/livelink/pkg/types"
	"github.com/rs/zerolog"
)

// Options contains configuration for the orchestrator
type Options struct {
	Runner runner.Runner
	Cloner git.Cloner
	// Logger defaults to the package component logger
	Logger *zerolog.Logger
}

// Orchestrator sequences the pipeline steps
type Orchestrator struct {
	runner runner.Runner
	cloner git.Cloner
	logger zerolog.Logger
}

// New creates an orchestrator
func New(opts Options) *Orchestrator {
	logger := logging.GetLogger("pipeline")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Orchestrator{
		runner: opts.Runner,
		cloner: opts.Cloner,
		logger: logger,
	}
}

type step struct {
	name        types.StepName
	description string
	run         func(ctx context.Context) error
}

func (o *Orchestrator) steps(cfg *types.ResolvedConfig) []step {
	pm := cfg.PackageManager
	return []step{
		{
			name:        types.StepClone,
			description: "Cloning " + cfg.Repo + " into " + cfg.CloneDir,
			run: func(ctx context.Context) error {
				return o.cloner.Clone(ctx, cfg.Repo, cfg.CloneDir)
			},
		},
		{
			name:        types.StepInstall,
			description: "Installing using " + pm + " in " + cfg.CloneDir,
			run: func(ctx context.Context) error {
				return o.runner.Run(ctx, runner.Command{Dir: cfg.CloneDir, Name: pm, Args: []string{"install"}})
			},
		},
		{
			name:        types.StepLink,
			description: "Linking using " + pm + " in " + cfg.CloneDir,
			run: func(ctx context.Context) error {
				return o.runner.Run(ctx, runner.Command{Dir: cfg.CloneDir, Name: pm, Args: []string{"link"}})
			},
		},
		{
			name:        types.StepLinkBack,
			description: "Linking " + cfg.ID + " in " + cfg.Cwd + " to " + cfg.CloneDir,
			run: func(ctx context.Context) error {
				return o.runner.Run(ctx, runner.Command{Dir: cfg.Cwd, Name: pm, Args: []string{"link", cfg.ID}})
			},
		},
	}
}

// Run executes the pipeline for cfg. The returned result always lists every
// step; the error is the one that ended the run, if any.
func (o *Orchestrator) Run(ctx context.Context, cfg *types.ResolvedConfig) (*types.PipelineResult, error) {
	result := &types.PipelineResult{Config: cfg, DryRun: cfg.DryRun}

	o.logger.Info().
		Str("repo", cfg.Repo).
		Str("cloneDir", cfg.CloneDir).
		Str("id", cfg.ID).
		Bool("dryRun", cfg.DryRun).
		Msg("Starting link pipeline")

	var failure error
	for _, s := range o.steps(cfg) {
		if failure != nil {
			result.Steps = append(result.Steps, types.StepResult{
				Step:    s.name,
				Status:  types.StepSkipped,
				Message: "not run after earlier failure",
			})
			continue
		}

		if err := ctx.Err(); err != nil {
			failure = err
			result.Steps = append(result.Steps, types.StepResult{Step: s.name, Status: types.StepSkipped, Error: err})
			continue
		}

		res := o.runStep(ctx, s, cfg.DryRun)
		result.Steps = append(result.Steps, res)
		if res.Status != types.StepFailed {
			continue
		}

		if s.name == types.StepClone && !cfg.AbortOnCloneFailure {
			o.logger.Warn().
				Err(res.Error).
				Str("repo", cfg.Repo).
				Msg("Clone failed, continuing with existing directory")
			continue
		}
		failure = res.Error
	}

	if failure != nil {
		return result, failure
	}
	o.logger.Info().Str("id", cfg.ID).Msg("Link pipeline completed")
	return result, nil
}

func (o *Orchestrator) runStep(ctx context.Context, s step, dryRun bool) types.StepResult {
	start := time.Now()

	o.logger.Info().
		Str("step", string(s.name)).
		Bool("dry_run", dryRun).
		Msg(s.description)

	if dryRun {
		return types.StepResult{
			Step:     s.name,
			Status:   types.StepSkipped,
			Message:  "Dry run - " + s.description,
			Duration: time.Since(start),
		}
	}

	if err := s.run(ctx); err != nil {
		o.logger.Error().
			Err(err).
			Str("step", string(s.name)).
			Str("code", string(errors.GetErrorCode(err))).
			Msg("Step failed")

		return types.StepResult{
			Step:     s.name,
			Status:   types.StepFailed,
			Error:    err,
			Message:  s.description,
			Duration: time.Since(start),
		}
	}

	return types.StepResult{
		Step:     s.name,
		Status:   types.StepSuccess,
		Message:  s.description,
		Duration: time.Since(start),
	}
}
