package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolated(t *testing.T) LoadOptions {
	t.Helper()
	return LoadOptions{
		WorkingDir:     t.TempDir(),
		UserConfigFile: filepath.Join(t.TempDir(), "missing.toml"),
		Environ:        []string{},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	opts := isolated(t)

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, opts.WorkingDir, cfg.Cwd)
	assert.Equal(t, "package.json", cfg.Manifest)
	assert.Equal(t, "npm", cfg.PackageManager)
	assert.True(t, cfg.AbortsOnCloneFailure())
	assert.False(t, cfg.DryRun)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Empty(t, cfg.Dest)
	assert.Empty(t, cfg.ID)
	assert.Empty(t, cfg.Repo)
	assert.Empty(t, cfg.Dir)
}

func TestLoad_Precedence(t *testing.T) {
	opts := isolated(t)

	writeFile(t, opts.UserConfigFile, `
dest = "/from/user"
package_manager = "yarn"
timeout = "1m"
`)
	writeFile(t, filepath.Join(opts.WorkingDir, ProjectConfigFile), `
dest = "/from/project"
id = "widget"
`)
	opts.Environ = []string{
		"LIVELINK_PACKAGE_MANAGER=pnpm",
		"LIVELINK_DRY_RUN=true",
		"UNRELATED=1",
	}
	opts.Flags = map[string]interface{}{
		"id": "gadget",
	}

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "/from/project", cfg.Dest, "project config overrides user config")
	assert.Equal(t, "gadget", cfg.ID, "flags override project config")
	assert.Equal(t, "pnpm", cfg.PackageManager, "env overrides user config")
	assert.True(t, cfg.DryRun)
	assert.Equal(t, time.Minute, cfg.Timeout)
}

func TestLoad_CloneFailurePolicy(t *testing.T) {
	opts := isolated(t)
	opts.Flags = map[string]interface{}{"abort_on_clone_failure": "false"}

	cfg, err := Load(opts)
	require.NoError(t, err)
	require.NotNil(t, cfg.AbortOnCloneFailure)
	assert.False(t, cfg.AbortsOnCloneFailure())
	assert.Equal(t, false, cfg.ToMap()["abort_on_clone_failure"])

	var unset Options
	assert.True(t, unset.AbortsOnCloneFailure(), "unset policy aborts")
}

func TestLoad_ProjectConfigFollowsCwdFlag(t *testing.T) {
	opts := isolated(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectConfigFile), `dest = "/from/project"`)
	opts.Flags = map[string]interface{}{"cwd": project}

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, project, cfg.Cwd)
	assert.Equal(t, "/from/project", cfg.Dest)
}

func TestLoad_Interpolation(t *testing.T) {
	opts := isolated(t)
	opts.Flags = map[string]interface{}{
		"id":   "widget",
		"dest": "${pwd}/linked",
		"dir":  "${id}-src",
	}

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, opts.WorkingDir+"/linked", cfg.Dest)
	assert.Equal(t, "widget-src", cfg.Dir)
}

func TestLoad_UnknownPlaceholder(t *testing.T) {
	opts := isolated(t)
	opts.Flags = map[string]interface{}{"dest": "${nope}/x"}

	_, err := Load(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	assert.Equal(t, "dest", errors.GetErrorDetails(err)["key"])
}

func TestLoad_BadUserConfig(t *testing.T) {
	opts := isolated(t)
	writeFile(t, opts.UserConfigFile, "dest = [unterminated")

	_, err := Load(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_BadTimeout(t *testing.T) {
	opts := isolated(t)
	opts.Environ = []string{"LIVELINK_TIMEOUT=soon"}

	_, err := Load(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestOptions_Validate(t *testing.T) {
	valid := func() Options {
		return Options{Dest: "/tmp/out", ID: "widget", PackageManager: "npm"}
	}

	tests := []struct {
		name   string
		mutate func(*Options)
		key    string
	}{
		{"valid", func(*Options) {}, ""},
		{"missing dest", func(o *Options) { o.Dest = "" }, "dest"},
		{"missing id", func(o *Options) { o.ID = "" }, "id"},
		{"empty package manager", func(o *Options) { o.PackageManager = "" }, "package_manager"},
		{"negative timeout", func(o *Options) { o.Timeout = -time.Second }, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid()
			tt.mutate(&o)
			err := o.Validate()
			if tt.key == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
			assert.Equal(t, tt.key, errors.GetErrorDetails(err)["key"])
		})
	}
}

func TestOptions_ToMap(t *testing.T) {
	o := Options{ID: "widget", Timeout: 90 * time.Second}
	m := o.ToMap()

	assert.Len(t, m, len(Keys))
	for _, k := range Keys {
		assert.Contains(t, m, k)
	}
	assert.Equal(t, "widget", m["id"])
	assert.Equal(t, "1m30s", m["timeout"])
	assert.Equal(t, true, m["abort_on_clone_failure"])
}

func TestInterpolate(t *testing.T) {
	vars := map[string]string{"pwd": "/work", "id": "widget"}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "plain", false},
		{"${pwd}", "/work", false},
		{"${pwd}/${id}", "/work/widget", false},
		{"${ id }", "widget", false},
		{"$pwd", "$pwd", false},
		{"${unknown}", "", true},
		{"${}", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Interpolate(tt.in, vars)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpolate_SinglePass(t *testing.T) {
	vars := map[string]string{"id": "${pwd}", "pwd": "/work"}

	got, err := Interpolate("${id}", vars)
	require.NoError(t, err)
	assert.Equal(t, "${pwd}", got)
}

func TestDefaultConfigContent(t *testing.T) {
	content := DefaultConfigContent()
	for _, k := range Keys {
		assert.Contains(t, content, k+" =")
	}
}

func TestLoad_ExpandsHomeInPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	opts := isolated(t)
	opts.Flags = map[string]interface{}{"dest": "~/src", "dir": "~/kept"}

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "src"), cfg.Dest)
	assert.Equal(t, "~/kept", cfg.Dir, "only path options are expanded")
}
