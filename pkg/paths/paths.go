// Package paths provides the XDG locations livelink reads and writes, and
// home directory expansion for user-supplied paths.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/livelink/pkg/errors"
)

const (
	// AppName is the directory name used under each XDG base directory
	AppName = "livelink"

	// ConfigFileName is the user config file inside the config directory
	ConfigFileName = "config.toml"

	// ProjectConfigFile is looked up in the consuming project
	ProjectConfigFile = ".livelink.toml"

	// LogFileName is the name of the log file
	LogFileName = "livelink.log"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// ConfigDir returns $XDG_CONFIG_HOME/livelink
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// StateDir returns $XDG_STATE_HOME/livelink
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// UserConfigFile returns the user config file location
func UserConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LogFile returns the log file location
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrap(err, errors.ErrConfigValid, "failed to get home directory")
	}
	return homeDir, nil
}

// ExpandHome expands a leading "~" or "~/" to the home directory. Other
// paths, including "~user", are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		return path, nil
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	if len(path) == 1 {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[2:]), nil
}
