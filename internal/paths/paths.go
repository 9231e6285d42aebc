// Package paths resolves where weekly keeps its files.
package paths

import (
	"os"
	"path/filepath"
)

const (
	AppName = "weekly"

	// LocalDir is the per-project directory searched before the user config dir.
	LocalDir = ".weekly"

	ConfigFileName = "config.yaml"
	DBFileName     = "weekly.db"
)

// UserConfigDir returns ~/.config/weekly, or "" when the home dir is unknown.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// LocalConfigPath is the project-local config file path.
func LocalConfigPath() string {
	return filepath.Join(LocalDir, ConfigFileName)
}

// UserConfigPath is the per-user config file path, or "".
func UserConfigPath() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName)
}

// DefaultDBPath places the sqlite file next to the user config.
func DefaultDBPath() string {
	dir := UserConfigDir()
	if dir == "" {
		return filepath.Join(LocalDir, DBFileName)
	}
	return filepath.Join(dir, DBFileName)
}

// DefaultTracesFilePath is where the file trace exporter writes.
func DefaultTracesFilePath() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// ResolveConfigPath picks the config file to use: explicit when set, then the
// project-local file if it exists, then the user file.
func ResolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(LocalConfigPath()); err == nil {
		return LocalConfigPath()
	}
	if p := UserConfigPath(); p != "" {
		return p
	}
	return LocalConfigPath()
}

// Expand replaces a leading "~/" with the home directory.
func Expand(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
