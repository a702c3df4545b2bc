// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/types"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

type resultDoc struct {
	*types.PipelineResult
	Succeeded bool `json:"succeeded"`
}

// RenderResult renders the pipeline result with a top-level succeeded flag
func (r *Renderer) RenderResult(result *types.PipelineResult) error {
	return r.encoder.Encode(resultDoc{PipelineResult: result, Succeeded: result.Succeeded()})
}

// RenderConfig renders the resolved configuration
func (r *Renderer) RenderConfig(cfg *types.ResolvedConfig) error {
	return r.encoder.Encode(cfg)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]interface{}{
		"error": err.Error(),
		"code":  errors.GetErrorCode(err),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		errorObj["details"] = details
	}
	return r.encoder.Encode(errorObj)
}
