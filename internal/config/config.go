// Package config loads the installer configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/faas-installer/internal/platform"
	"github.com/donaldgifford/faas-installer/internal/release"
)

// FileName is the config file name inside DefaultConfigDir.
const FileName = "config.yaml"

// Config represents the user's installer configuration file.
type Config struct {
	// BaseName is the artifact base name, "faas-cli" unless installing a fork.
	BaseName string `yaml:"base_name"`
	// Repo is the GitHub "owner/name" publishing the releases.
	Repo string `yaml:"repo"`
	// Version is "latest" or an exact release tag.
	Version string `yaml:"version"`
	// InstallDir holds the bin/ directory. Empty means next to the installer.
	InstallDir string `yaml:"install_dir"`
	APIURL     string `yaml:"api_url"`
	WebURL     string `yaml:"web_url"`
	// Timeout bounds a whole install. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`
	// RemovePartial deletes the destination when a download fails midway.
	RemovePartial bool `yaml:"remove_partial"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		BaseName: platform.DefaultBaseName,
		Repo:     release.DefaultRepo,
		Version:  release.Latest,
		APIURL:   release.DefaultAPIURL,
		WebURL:   release.DefaultWebURL,
	}
}

// DefaultConfigDir returns the default configuration directory, respecting XDG_CONFIG_HOME.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "faas-installer")
	}

	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".config", "faas-installer")
	}

	return filepath.Join(home, ".config", "faas-installer")
}

// DefaultConfigPath returns DefaultConfigDir()/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), FileName)
}

// Load reads the config from the given path on top of Defaults.
// If the file doesn't exist, it returns the defaults (no error).
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// ResolveInstallDir returns the absolute install directory. An explicit
// InstallDir may start with "~". Otherwise it is the directory holding the
// running executable, so bin/ sits next to the installer.
func (c *Config) ResolveInstallDir() (string, error) {
	if c.InstallDir != "" {
		expanded, err := homedir.Expand(c.InstallDir)
		if err != nil {
			return "", fmt.Errorf("expanding install_dir %s: %w", c.InstallDir, err)
		}

		return filepath.Abs(expanded)
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating installer executable: %w", err)
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe), nil
}
