// Package installer downloads the platform's release artifact into
// <install-dir>/bin and makes it executable.
//
// An Installer walks a fixed sequence of states:
//
//	Idle → ResolvingPlatform → LocatingRelease → Downloading → FixingPermissions → Done
//
// Any step may move to Failed instead. Every step checks the state it starts
// from, so the order is enforced rather than assumed. Nothing is retried.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/donaldgifford/faas-installer/internal/platform"
	"github.com/donaldgifford/faas-installer/internal/release"
)

// BinDir is the directory under the install dir that receives the artifact.
const BinDir = "bin"

// Downloader streams a URL to a local path.
type Downloader interface {
	Download(ctx context.Context, src, dest string) error
}

// Options configures an Installer.
type Options struct {
	// Platform is the target host, usually platform.Detect().
	Platform platform.Key
	// BaseName defaults to platform.DefaultBaseName.
	BaseName string
	// InstallDir is the parent of bin/. Required.
	InstallDir string
	Locator    release.Locator
	Downloader Downloader
	// RemovePartial deletes the destination when the download fails.
	RemovePartial bool
	Logger        *slog.Logger
}

// Result describes a finished install.
type Result struct {
	Artifact string
	URL      string
	Path     string
	Mode     fs.FileMode
}

// Installer installs one artifact to one destination. It may be reused for
// another Install once the previous call has returned.
type Installer struct {
	opts   Options
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	running bool

	artifact string
	dest     string
	url      string
}

// New validates opts and returns an idle Installer.
func New(opts Options) (*Installer, error) {
	if opts.InstallDir == "" {
		return nil, errors.New("install dir is required")
	}

	if opts.Locator == nil {
		return nil, errors.New("release locator is required")
	}

	if opts.Downloader == nil {
		return nil, errors.New("downloader is required")
	}

	if opts.BaseName == "" {
		opts.BaseName = platform.DefaultBaseName
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Installer{opts: opts, logger: logger}, nil
}

// State returns the current state.
func (i *Installer) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.state
}

// Install runs every step in order and returns the installed artifact, or a
// *StageError naming the step that failed.
func (i *Installer) Install(ctx context.Context) (*Result, error) {
	if err := i.begin(); err != nil {
		return nil, err
	}
	defer i.end()

	if err := i.resolvePlatform(); err != nil {
		return nil, i.fail(ResolvingPlatform, err)
	}

	if err := i.locateRelease(ctx); err != nil {
		return nil, i.fail(LocatingRelease, err)
	}

	if err := i.download(ctx); err != nil {
		return nil, i.fail(Downloading, err)
	}

	mode, err := i.fixPermissions()
	if err != nil {
		return nil, i.fail(FixingPermissions, err)
	}

	if err := i.transition(FixingPermissions, Done); err != nil {
		return nil, i.fail(FixingPermissions, err)
	}

	i.logger.Info("download complete", "path", i.dest)

	return &Result{
		Artifact: i.artifact,
		URL:      i.url,
		Path:     i.dest,
		Mode:     mode,
	}, nil
}

// begin resets a finished Installer to Idle. It refuses to interrupt a call
// that is still running.
func (i *Installer) begin() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.running {
		return ErrInstallInProgress
	}

	i.running = true
	i.state = Idle
	i.artifact, i.dest, i.url = "", "", ""

	return nil
}

func (i *Installer) end() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.running = false
}

func (i *Installer) transition(from, to State) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != from {
		return fmt.Errorf("%w: %s → %s from %s", ErrInvalidTransition, from, to, i.state)
	}

	i.state = to

	return nil
}

func (i *Installer) fail(stage State, err error) error {
	i.mu.Lock()
	i.state = Failed
	i.mu.Unlock()

	i.logger.Debug("install failed", "stage", stage.String(), "err", err)

	return &StageError{Stage: stage, Err: err}
}

func (i *Installer) resolvePlatform() error {
	if err := i.transition(Idle, ResolvingPlatform); err != nil {
		return err
	}

	name, err := i.opts.Platform.ArtifactName(i.opts.BaseName)
	if err != nil {
		return err
	}

	i.artifact = name
	i.dest = filepath.Join(i.opts.InstallDir, BinDir, name)

	i.logger.Debug("resolved artifact", "platform", i.opts.Platform.String(), "artifact", name)

	return nil
}

// locateRelease prepares the destination before asking for the URL, so a
// stale or partial artifact from an earlier run is gone even if the lookup
// fails.
func (i *Installer) locateRelease(ctx context.Context) error {
	if err := i.transition(ResolvingPlatform, LocatingRelease); err != nil {
		return err
	}

	if err := i.prepareDest(); err != nil {
		return err
	}

	url, err := i.opts.Locator.Locate(ctx, i.artifact)
	if err != nil {
		return err
	}

	i.url = url

	return nil
}

func (i *Installer) prepareDest() error {
	binDir := filepath.Dir(i.dest)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrFilesystem, binDir, err)
	}

	if err := os.RemoveAll(i.dest); err != nil {
		return fmt.Errorf("%w: removing %s: %w", ErrFilesystem, i.dest, err)
	}

	return nil
}

func (i *Installer) download(ctx context.Context) error {
	if err := i.transition(LocatingRelease, Downloading); err != nil {
		return err
	}

	i.logger.Info("downloading package", "url", i.url, "dest", i.dest)

	if err := i.opts.Downloader.Download(ctx, i.url, i.dest); err != nil {
		if i.opts.RemovePartial {
			if rmErr := os.Remove(i.dest); rmErr != nil && !os.IsNotExist(rmErr) {
				i.logger.Warn("removing partial download", "path", i.dest, "err", rmErr)
			}
		}

		return err
	}

	return nil
}

// fixPermissions adds the execute bits to the artifact. The Windows artifact
// is left with whatever mode the filesystem gave it.
func (i *Installer) fixPermissions() (fs.FileMode, error) {
	if err := i.transition(Downloading, FixingPermissions); err != nil {
		return 0, err
	}

	info, err := os.Stat(i.dest)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	if platform.IsWindowsArtifact(i.artifact) {
		i.logger.Debug("skipping chmod for windows artifact", "path", i.dest)

		return info.Mode(), nil
	}

	mode := info.Mode().Perm() | 0o111
	if err := os.Chmod(i.dest, mode); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	return mode, nil
}
