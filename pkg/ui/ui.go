// Package ui renders link results in terminal, text and JSON formats.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/livelink/pkg/types"
	"github.com/arthur-debert/livelink/pkg/ui/json"
	"github.com/arthur-debert/livelink/pkg/ui/terminal"
	"github.com/arthur-debert/livelink/pkg/ui/text"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders the outcome of a pipeline run
	RenderResult(result *types.PipelineResult) error

	// RenderConfig renders a resolved configuration without running anything
	RenderConfig(cfg *types.ResolvedConfig) error

	// RenderError renders a failure that ended a command
	RenderError(err error) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output when
// it is a file and falls back to text otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
