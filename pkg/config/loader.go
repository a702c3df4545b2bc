package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// ProjectConfigFile is looked up in the consuming project
	ProjectConfigFile = paths.ProjectConfigFile

	// EnvPrefix prefixes environment overrides
	EnvPrefix = "LIVELINK_"
)

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// WorkingDir is the process working directory; it backs ${pwd} and is
	// where the project config is searched unless cwd is overridden
	WorkingDir string

	// UserConfigFile overrides the XDG user config location
	UserConfigFile string

	// Flags holds explicitly set command-line values keyed by config key
	Flags map[string]interface{}

	// Environ overrides os.Environ, mainly for tests
	Environ []string
}

// UserConfigPath returns the default user config file location
func UserConfigPath() string {
	return paths.UserConfigFile()
}

// Load merges every configuration source into Options and expands
// placeholders
func Load(opts LoadOptions) (*Options, error) {
	if opts.WorkingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to determine working directory")
		}
		opts.WorkingDir = wd
	}
	if opts.UserConfigFile == "" {
		opts.UserConfigFile = UserConfigPath()
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config
	if err := loadFileIfExists(k, opts.UserConfigFile); err != nil {
		return nil, err
	}

	// Environment and flags are read before the project config only to find
	// which directory the project config lives in.
	envK := koanf.New(".")
	if err := envK.Load(envProvider(opts.Environ), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	vars := Variables(opts.WorkingDir)
	projectDir := opts.WorkingDir
	for _, src := range []interface{}{envK.Get("cwd"), opts.Flags["cwd"]} {
		if s, ok := src.(string); ok && s != "" {
			projectDir = s
		}
	}
	projectDir, err := Interpolate(projectDir, vars)
	if err != nil {
		return nil, err
	}
	if projectDir, err = paths.ExpandHome(projectDir); err != nil {
		return nil, err
	}

	// 3. Project config
	if err := loadFileIfExists(k, filepath.Join(projectDir, ProjectConfigFile)); err != nil {
		return nil, err
	}

	// 4. Environment
	if err := k.Merge(envK); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to merge env vars")
	}

	// 5. Flags
	if len(opts.Flags) > 0 {
		if err := k.Load(confmap.Provider(opts.Flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flags")
		}
	}

	var cfg Options
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to unmarshal configuration")
	}

	if err := interpolateOptions(&cfg, vars); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Variables returns the placeholder values available to string options
func Variables(pwd string) map[string]string {
	home, err := paths.GetHomeDirectory()
	if err != nil {
		home = xdg.Home
	}
	return map[string]string{
		VarPwd:        pwd,
		VarHome:       home,
		VarConfigHome: xdg.ConfigHome,
		VarDataHome:   xdg.DataHome,
		VarCacheHome:  xdg.CacheHome,
	}
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config %s", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

func envProvider(environ []string) koanf.Provider {
	if environ == nil {
		return env.Provider(EnvPrefix, ".", envKey)
	}
	m := make(map[string]interface{})
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		m[envKey(name)] = value
	}
	return confmap.Provider(m, ".")
}

func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// Describe is a one-line summary used in debug logs
func (o *Options) Describe() string {
	return fmt.Sprintf("id=%s repo=%s dest=%s dir=%s pm=%s", o.ID, o.Repo, o.Dest, o.Dir, o.PackageManager)
}
