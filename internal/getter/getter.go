// Package getter wraps hashicorp/go-getter for streaming release artifacts to disk.
package getter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	getter "github.com/hashicorp/go-getter/v2"
)

var (
	// ErrNetwork is returned when the transfer itself fails.
	ErrNetwork = errors.New("network error")
	// ErrFilesystem is returned when the destination cannot be prepared.
	ErrFilesystem = errors.New("filesystem error")
)

// Getter wraps go-getter to fetch a single file over HTTP(S).
type Getter struct {
	client *getter.Client
	logger *slog.Logger
}

// New creates a Getter with default configuration. Transfers have no read
// timeout of their own; only the context passed to Download bounds them.
func New(logger *slog.Logger) *Getter {
	return newGetter(logger, &getter.HttpGetter{
		Netrc:                 true,
		XTerraformGetDisabled: true,
		HeadFirstTimeout:      10 * time.Second,
	})
}

func newGetter(logger *slog.Logger, httpGetter *getter.HttpGetter) *Getter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Getter{
		client: &getter.Client{
			Getters:         []getter.Getter{httpGetter},
			DisableSymlinks: true,
		},
		logger: logger,
	}
}

// Download streams src into dest. The parent directory is created if needed
// and any existing content at dest is truncated first. On error dest may hold
// a partial file; callers must not treat it as usable.
func (g *Getter) Download(ctx context.Context, src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrFilesystem, filepath.Dir(dest), err)
	}

	// go-getter resumes into an existing file when the server accepts ranges,
	// so start from an empty one.
	f, err := os.Create(filepath.Clean(dest))
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", ErrFilesystem, dest, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: opening %s: %w", ErrFilesystem, dest, err)
	}

	g.logger.Debug("fetching file", "src", src, "dest", dest)

	req := &getter.Request{
		Src:             src,
		Dst:             dest,
		GetMode:         getter.ModeFile,
		DisableSymlinks: true,
	}

	if _, err := g.client.Get(ctx, req); err != nil {
		return fmt.Errorf("%w: fetching %s: %w", ErrNetwork, src, err)
	}

	return nil
}
