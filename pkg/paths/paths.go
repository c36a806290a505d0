package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for filemap
	EnvConfigDir = "FILEMAP_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for filemap
	EnvStateDir = "FILEMAP_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "filemap"

	// UserConfigFile is the name of the user configuration file
	UserConfigFile = "config.toml"

	// ProjectConfigFile is the name of the per-project configuration file
	ProjectConfigFile = ".filemap.toml"

	// LogFileName is the name of the log file
	LogFileName = "filemap.log"
)

// ConfigDir returns the directory holding the user configuration
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// UserConfigPath returns the full path of the user configuration file
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), UserConfigFile)
}

// ProjectConfigPath returns the project configuration file inside dir
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigFile)
}

// StateDir returns the directory holding runtime state such as logs
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the full path of the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
