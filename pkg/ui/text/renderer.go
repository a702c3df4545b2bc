// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders one "step: status" line per step
func (r *Renderer) RenderResult(result *types.PipelineResult) error {
	var b strings.Builder

	if cfg := result.Config; cfg != nil {
		prefix := ""
		if result.DryRun {
			prefix = "[dry run] "
		}
		fmt.Fprintf(&b, "%slinking %s: %s -> %s\n", prefix, cfg.ID, cfg.Repo, cfg.CloneDir)
	}

	for _, s := range result.Steps {
		fmt.Fprintf(&b, "%s: %s", s.Step, s.Status)
		if s.Message != "" {
			fmt.Fprintf(&b, " (%s)", s.Message)
		}
		b.WriteString("\n")
		if s.Status == types.StepFailed && s.Error != nil {
			fmt.Fprintf(&b, "  error: %s\n", s.Error)
		}
	}

	switch {
	case result.DryRun:
		b.WriteString("dry run complete\n")
	case result.Succeeded():
		b.WriteString("linked\n")
	default:
		b.WriteString("link failed\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderConfig renders the resolved configuration as key=value lines
func (r *Renderer) RenderConfig(cfg *types.ResolvedConfig) error {
	_, err := fmt.Fprintf(r.output,
		"id=%s\nrepo=%s\ncwd=%s\ndest=%s\ndir=%s\nclone_dir=%s\nmanifest=%s\npackage_manager=%s\nabort_on_clone_failure=%t\ntimeout=%s\ndry_run=%t\n",
		cfg.ID, cfg.Repo, cfg.Cwd, cfg.Dest, cfg.Dir, cfg.CloneDir, cfg.Manifest,
		cfg.PackageManager, cfg.AbortOnCloneFailure, cfg.Timeout, cfg.DryRun)
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", err)

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %v\n", k, details[k])
	}

	_, werr := io.WriteString(r.output, b.String())
	return werr
}
