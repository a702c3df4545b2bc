package ui_test

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/types"
	"github.com/arthur-debert/livelink/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() *types.ResolvedConfig {
	return &types.ResolvedConfig{
		Cwd:                 "/work/app",
		Dest:                "/tmp/out",
		ID:                  "widget",
		Manifest:            "package.json",
		Repo:                "https://github.com/acme/widget.git",
		Dir:                 "widget",
		CloneDir:            "/tmp/out/widget",
		PackageManager:      "npm",
		AbortOnCloneFailure: true,
		Timeout:             time.Minute,
	}
}

func failedResult() *types.PipelineResult {
	return &types.PipelineResult{
		Config: sampleConfig(),
		Steps: []types.StepResult{
			{Step: types.StepClone, Status: types.StepSuccess, Message: "Cloning", Duration: time.Second},
			{Step: types.StepInstall, Status: types.StepFailed, Message: "Installing",
				Error: stderrors.New("abnormal exit from npm install with code 1")},
			{Step: types.StepLink, Status: types.StepSkipped},
			{Step: types.StepLinkBack, Status: types.StepSkipped},
		},
	}
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name    string
		format  ui.Format
		wantErr bool
	}{
		{"terminal", ui.FormatTerminal, false},
		{"text", ui.FormatText, false},
		{"json", ui.FormatJSON, false},
		{"auto with buffer", ui.FormatAuto, false},
		{"invalid", ui.Format(999), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ui.NewRenderer(tt.format, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}
}

func TestTextRenderResult(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(failedResult()))
	out := buf.String()

	assert.Contains(t, out, "linking widget: https://github.com/acme/widget.git -> /tmp/out/widget")
	assert.Contains(t, out, "clone: success (Cloning)")
	assert.Contains(t, out, "install: failed (Installing)")
	assert.Contains(t, out, "  error: abnormal exit from npm install with code 1")
	assert.Contains(t, out, "link-back: skipped")
	assert.Contains(t, out, "link failed")
}

func TestTextRenderDryRun(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(&types.PipelineResult{
		Config: sampleConfig(),
		DryRun: true,
		Steps:  []types.StepResult{{Step: types.StepClone, Status: types.StepSkipped}},
	}))
	assert.Contains(t, buf.String(), "[dry run] linking widget")
	assert.Contains(t, buf.String(), "dry run complete")
}

func TestTextRenderConfigAndError(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderConfig(sampleConfig()))
	assert.Contains(t, buf.String(), "clone_dir=/tmp/out/widget\n")
	assert.Contains(t, buf.String(), "timeout=1m0s\n")

	buf.Reset()
	linkErr := errors.New(errors.ErrMissingRepository, "no repository declared").
		WithDetail("path", "/work/app/node_modules/widget/package.json")
	require.NoError(t, r.RenderError(linkErr))
	assert.Contains(t, buf.String(), "Error: [MISSING_REPOSITORY] no repository declared")
	assert.Contains(t, buf.String(), "  path: /work/app/node_modules/widget/package.json")
}

func TestJSONRenderResult(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(failedResult()))

	var doc struct {
		Succeeded bool `json:"succeeded"`
		DryRun    bool `json:"dry_run"`
		Config    struct {
			CloneDir string `json:"clone_dir"`
		} `json:"config"`
		Steps []struct {
			Step   string `json:"step"`
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.False(t, doc.Succeeded)
	assert.Equal(t, "/tmp/out/widget", doc.Config.CloneDir)
	require.Len(t, doc.Steps, 4)
	assert.Equal(t, "install", doc.Steps[1].Step)
	assert.Equal(t, "failed", doc.Steps[1].Status)
	assert.Equal(t, "abnormal exit from npm install with code 1", doc.Steps[1].Error)
}

func TestJSONRenderError(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderError(errors.New(errors.ErrClone, "clone failed").WithDetail("dir", "/tmp/out/widget")))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "CLONE", doc["code"])
	assert.Equal(t, "/tmp/out/widget", doc["details"].(map[string]interface{})["dir"])
}

func TestTerminalRenderResult(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(failedResult()))
	out := buf.String()

	assert.Contains(t, out, "Linking widget")
	assert.Contains(t, out, "/tmp/out/widget")
	assert.Contains(t, out, "install")
	assert.Contains(t, out, "abnormal exit from npm install with code 1")
	assert.Contains(t, out, "Link failed")

	buf.Reset()
	result := failedResult()
	result.Steps[1].Status = types.StepSuccess
	result.Steps[1].Error = nil
	require.NoError(t, r.RenderResult(result))
	assert.Contains(t, buf.String(), "Linked widget into /work/app")
}

func TestTerminalRenderError(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)

	cause := stderrors.New("repository already exists")
	require.NoError(t, r.RenderError(errors.Wrap(cause, errors.ErrClone, "clone failed").WithDetail("dir", "/tmp/out/widget")))
	out := buf.String()

	assert.Equal(t, 1, strings.Count(out, "[CLONE]"), "output: %s", out)
	assert.Contains(t, out, "[CLONE] clone failed: repository already exists")
	assert.Contains(t, out, "dir: /tmp/out/widget")

	buf.Reset()
	require.NoError(t, r.RenderError(stderrors.New("boom")))
	assert.Contains(t, buf.String(), "boom")
	assert.NotContains(t, buf.String(), "[")
}
