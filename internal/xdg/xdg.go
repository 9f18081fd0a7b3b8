// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

// Package xdg provides XDG Base Directory paths for Shadowtrack.
package xdg

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
)

const appName = "shadowtrack"

// ConfigDir returns the XDG config directory for shadowtrack.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	return dir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the XDG data directory for shadowtrack.
// Checks XDG_DATA_HOME first, falls back to ~/.local/share.
func DataDir() string {
	return dir("XDG_DATA_HOME", ".local", "share")
}

// StateDir returns the XDG state directory for shadowtrack.
// Checks XDG_STATE_HOME first, falls back to ~/.local/state.
func StateDir() string {
	return dir("XDG_STATE_HOME", ".local", "state")
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ArchiveFile returns the default turn archive database path.
func ArchiveFile() string {
	return filepath.Join(DataDir(), "archive.db")
}

// LogFile returns the default log file for interactive sessions.
func LogFile() string {
	return filepath.Join(StateDir(), "shadowtrack.log")
}

func dir(env string, fallback ...string) string {
	base := os.Getenv(env)
	if base == "" {
		base = filepath.Join(append([]string{os.Getenv("HOME")}, fallback...)...)
	}
	return filepath.Join(base, appName)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
// Directories are created with 0700 permissions.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return oops.Code("DIR_CREATE_FAILED").With("path", path).Wrapf(err, "create directory")
	}
	return nil
}
