package config

import (
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/paths"
)

// Placeholder names that may appear as ${name} in string options. Nothing
// else is expanded and no expression is ever evaluated.
const (
	VarPwd        = "pwd"
	VarHome       = "home"
	VarConfigHome = "config_home"
	VarDataHome   = "data_home"
	VarCacheHome  = "cache_home"
	VarID         = "id"
)

var placeholderPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

// Interpolate replaces ${name} placeholders in s with values from vars in a
// single pass. Unknown names are an error.
func Interpolate(s string, vars map[string]string) (string, error) {
	if !strings.Contains(s, "${") {
		return s, nil
	}

	var unknown []string
	out := placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-1])
		value, ok := vars[name]
		if !ok {
			unknown = append(unknown, name)
			return match
		}
		return value
	})

	if len(unknown) > 0 {
		known := make([]string, 0, len(vars))
		for k := range vars {
			known = append(known, k)
		}
		sort.Strings(known)
		return s, errors.Newf(errors.ErrConfigValid,
			"unknown placeholder ${%s} in %q", unknown[0], s).
			WithDetail("known", known)
	}
	return out, nil
}

// interpolateOptions expands placeholders in every string option and a
// leading "~" in the path options. The id is taken verbatim so other options
// can refer to it.
func interpolateOptions(o *Options, vars map[string]string) error {
	vars[VarID] = o.ID

	fields := []struct {
		key  string
		ptr  *string
		path bool
	}{
		{"cwd", &o.Cwd, true},
		{"dest", &o.Dest, true},
		{"manifest", &o.Manifest, false},
		{"dir", &o.Dir, false},
		{"repo", &o.Repo, false},
		{"package_manager", &o.PackageManager, false},
	}
	for _, f := range fields {
		v, err := Interpolate(*f.ptr, vars)
		if err != nil {
			if le, ok := err.(*errors.LinkError); ok {
				le.WithDetail("key", f.key)
			}
			return err
		}
		if f.path {
			if v, err = paths.ExpandHome(v); err != nil {
				return err
			}
		}
		*f.ptr = v
	}
	return nil
}
