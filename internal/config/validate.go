package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/donaldgifford/faas-installer/internal/release"
)

// Validate checks a Config for required fields and valid values.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.BaseName) == "" {
		return fmt.Errorf("base_name is required")
	}

	if strings.ContainsAny(cfg.BaseName, `/\`) {
		return fmt.Errorf("base_name %q must not contain path separators", cfg.BaseName)
	}

	owner, name, ok := strings.Cut(cfg.Repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("repo %q must be of the form owner/name", cfg.Repo)
	}

	if _, err := release.ParseSpec(cfg.Version); err != nil {
		return fmt.Errorf("version: %w", err)
	}

	if err := validateURL("api_url", cfg.APIURL); err != nil {
		return err
	}

	if err := validateURL("web_url", cfg.WebURL); err != nil {
		return err
	}

	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}

	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s %q: %w", field, raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s %q must use http or https", field, raw)
	}

	if u.Host == "" {
		return fmt.Errorf("%s %q has no host", field, raw)
	}

	return nil
}
