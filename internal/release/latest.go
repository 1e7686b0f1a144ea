package release

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hashicorp/go-version"
)

// LatestLocator follows the "latest" alias by hand: the redirect target names
// the newest tag and the asset URL is derived from it.
type LatestLocator struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewLatestLocator creates a LatestLocator for the alias url. The client is
// copied with redirect-following disabled; the caller's client is untouched.
func NewLatestLocator(url string, client *http.Client, logger *slog.Logger) *LatestLocator {
	if client == nil {
		client = http.DefaultClient
	}

	if logger == nil {
		logger = slog.Default()
	}

	noRedirect := *client
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &LatestLocator{url: url, client: &noRedirect, logger: logger}
}

// Locate resolves the alias and returns the download URL of artifact in the
// release it points to.
func (l *LatestLocator) Locate(ctx context.Context, artifact string) (string, error) {
	req, err := newRequest(ctx, l.url)
	if err != nil {
		return "", err
	}

	l.logger.Debug("resolving latest release", "url", l.url)

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: resolving latest release: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 300 || resp.StatusCode > 399 {
		return "", fmt.Errorf("%w: resolving latest release: expected a redirect, got %s", ErrNetwork, resp.Status)
	}

	location, err := resp.Location()
	if err != nil {
		return "", fmt.Errorf("%w: resolving latest release: %w", ErrNetwork, err)
	}

	downloadURL, err := DownloadURLFromTag(location.String(), artifact)
	if err != nil {
		return "", fmt.Errorf("%w: resolving latest release: %w", ErrNetwork, err)
	}

	// The alias must land on a versioned release, not some other page that
	// happens to live under /releases/tag/.
	tag := TagFromURL(location.String())

	v, err := version.NewVersion(tag)
	if err != nil {
		return "", fmt.Errorf("%w: resolving latest release: tag %q is not a version: %w", ErrNetwork, tag, err)
	}

	l.logger.Debug("latest release resolved", "tag", v.Original(), "version", v.String(), "url", downloadURL)

	return downloadURL, nil
}
