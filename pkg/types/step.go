package types

import (
	"encoding/json"
	"time"
)

// StepName identifies a pipeline stage
type StepName string

const (
	StepClone    StepName = "clone"
	StepInstall  StepName = "install"
	StepLink     StepName = "link"
	StepLinkBack StepName = "link-back"
)

// Steps lists the pipeline stages in execution order
var Steps = []StepName{StepClone, StepInstall, StepLink, StepLinkBack}

// StepStatus is the terminal outcome of a step
type StepStatus string

const (
	StepSuccess StepStatus = "success"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

// StepResult represents the outcome of executing a pipeline step
type StepResult struct {
	Step StepName

	Status StepStatus

	// Error contains any error that occurred during execution
	Error error

	// Message provides additional information about the result
	Message string

	// Duration is how long the step took to execute
	Duration time.Duration
}

// MarshalJSON renders the error as its message and the duration in
// milliseconds
func (s StepResult) MarshalJSON() ([]byte, error) {
	out := struct {
		Step       StepName   `json:"step"`
		Status     StepStatus `json:"status"`
		Message    string     `json:"message,omitempty"`
		Error      string     `json:"error,omitempty"`
		DurationMS int64      `json:"duration_ms"`
	}{
		Step:       s.Step,
		Status:     s.Status,
		Message:    s.Message,
		DurationMS: s.Duration.Milliseconds(),
	}
	if s.Error != nil {
		out.Error = s.Error.Error()
	}
	return json.Marshal(out)
}

// PipelineResult collects step results in execution order
type PipelineResult struct {
	Config *ResolvedConfig `json:"config"`
	Steps  []StepResult    `json:"steps"`
	DryRun bool            `json:"dry_run"`
}

// Result returns the result for the named step, if it was recorded
func (r *PipelineResult) Result(name StepName) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Step == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// Succeeded reports whether every step that ran completed successfully.
// A failed clone that was allowed to continue still counts as a failure.
func (r *PipelineResult) Succeeded() bool {
	for _, s := range r.Steps {
		if s.Status == StepFailed {
			return false
		}
	}
	return true
}
