// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/style"
	"github.com/arthur-debert/livelink/pkg/types"
	"github.com/pterm/pterm"
)

// Renderer writes styled output to a terminal
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders one line per step followed by a summary line
func (r *Renderer) RenderResult(result *types.PipelineResult) error {
	var b strings.Builder

	if cfg := result.Config; cfg != nil {
		title := "Linking " + cfg.ID
		if result.DryRun {
			title = "Dry run: linking " + cfg.ID
		}
		b.WriteString(style.TitleStyle.Render(title) + "\n")
		b.WriteString(fmt.Sprintf("  %s %s %s\n\n",
			style.URLStyle.Render(cfg.Repo),
			style.MutedStyle.Render("→"),
			style.PathStyle.Render(cfg.CloneDir)))
	}

	for _, s := range result.Steps {
		line := fmt.Sprintf("%s %s %s", style.Indicator(s.Status), style.Badge(s.Status), style.StepName(s.Step))
		if s.Message != "" {
			line += " " + s.Message
		}
		if s.Duration > 0 {
			line += " " + style.MutedStyle.Render("("+s.Duration.Round(time.Millisecond).String()+")")
		}
		b.WriteString(line + "\n")

		if s.Status == types.StepFailed && s.Error != nil {
			b.WriteString(style.DetailBoxStyle.Render(style.ErrorStyle.Render(s.Error.Error())) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case result.DryRun:
		b.WriteString(style.WarningStyle.Render("Dry run complete, nothing was executed") + "\n")
	case result.Succeeded():
		msg := "Linked"
		if result.Config != nil {
			msg = fmt.Sprintf("Linked %s into %s", result.Config.ID, result.Config.Cwd)
		}
		b.WriteString(style.SuccessIndicator + " " + style.SuccessStyle.Render(msg) + "\n")
	default:
		b.WriteString(style.ErrorIndicator + " " + style.ErrorStyle.Render("Link failed") + "\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderConfig renders the resolved configuration as aligned key/value lines
func (r *Renderer) RenderConfig(cfg *types.ResolvedConfig) error {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("Resolved configuration for "+cfg.ID) + "\n")
	for _, kv := range configRows(cfg) {
		b.WriteString(fmt.Sprintf("  %s %s\n", style.Bold(fmt.Sprintf("%-22s", kv[0])), kv[1]))
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder

	code := errors.GetErrorCode(err)
	if code != errors.ErrUnknown {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint("["+string(code)+"]"),
			errorMessage(err)))
	} else {
		b.WriteString(fmt.Sprintf("%s %s\n", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error())))
	}

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(style.Indent(style.MutedStyle.Render(fmt.Sprintf("%s: %v", k, details[k])), 1) + "\n")
	}

	_, werr := io.WriteString(r.output, b.String())
	return werr
}

// errorMessage is the error text without the code prefix LinkError carries
func errorMessage(err error) string {
	var le *errors.LinkError
	if !stderrors.As(err, &le) {
		return err.Error()
	}
	if le.Wrapped != nil {
		return le.Message + ": " + le.Wrapped.Error()
	}
	return le.Message
}

func configRows(cfg *types.ResolvedConfig) [][2]string {
	return [][2]string{
		{"id", cfg.ID},
		{"repo", style.URLStyle.Render(cfg.Repo)},
		{"cwd", style.PathStyle.Render(cfg.Cwd)},
		{"dest", style.PathStyle.Render(cfg.Dest)},
		{"dir", cfg.Dir},
		{"clone_dir", style.PathStyle.Render(cfg.CloneDir)},
		{"manifest", cfg.Manifest},
		{"package_manager", cfg.PackageManager},
		{"abort_on_clone_failure", fmt.Sprint(cfg.AbortOnCloneFailure)},
		{"timeout", cfg.Timeout.String()},
		{"dry_run", fmt.Sprint(cfg.DryRun)},
	}
}
