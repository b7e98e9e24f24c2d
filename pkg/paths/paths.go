package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/srcbundle/pkg/errors"
)

const (
	// AppName names the per-application XDG directories
	AppName = "srcbundle"

	// EnvConfigDir overrides the configuration directory
	EnvConfigDir = "SRCBUNDLE_CONFIG_DIR"

	// ConfigFileName is the user configuration file inside ConfigDir
	ConfigFileName = "config.toml"

	// ProjectConfigFileName is looked up in the source directory
	ProjectConfigFileName = ".srcbundle.toml"
)

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv("HOME")
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrNotFound, "unable to determine home directory")
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) (string, error) {
	if path == "~" {
		return GetHomeDirectory()
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := GetHomeDirectory()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInvalidInput, "cannot expand ~")
		}
		return filepath.Join(homeDir, path[2:]), nil
	}

	return path, nil
}

// Resolve expands ~ and makes a user-supplied path absolute
func Resolve(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}
	if strings.Contains(path, "\x00") {
		return "", errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", path)
	}
	return abs, nil
}

// ConfigDir returns the directory holding the user configuration file
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// UserConfigFile returns the path of the user configuration file
func UserConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// SafeJoin joins a "/"-separated relative path under root and refuses any
// result outside root.
func SafeJoin(root, rel string) (string, error) {
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", errors.Newf(errors.ErrUnsafePath, "absolute path %q in bundle", rel).
			WithDetail("path", rel)
	}

	cleanRoot := filepath.Clean(root)
	target := filepath.Join(cleanRoot, filepath.FromSlash(rel))

	r, err := filepath.Rel(cleanRoot, target)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrUnsafePath, "cannot place %q under %s", rel, root).
			WithDetail("path", rel)
	}
	r = filepath.ToSlash(r)
	if r == "." || r == ".." || strings.HasPrefix(r, "../") {
		return "", errors.Newf(errors.ErrUnsafePath, "path %q escapes the destination", rel).
			WithDetail("path", rel)
	}
	return target, nil
}
