package release

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// PinnedLocator looks up an asset in the metadata of one release tag.
type PinnedLocator struct {
	url    string
	tag    string
	client *http.Client
	logger *slog.Logger
}

// NewPinnedLocator creates a PinnedLocator for the metadata endpoint url.
func NewPinnedLocator(url, tag string, client *http.Client, logger *slog.Logger) *PinnedLocator {
	if client == nil {
		client = http.DefaultClient
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PinnedLocator{url: url, tag: tag, client: client, logger: logger}
}

type releaseResponse struct {
	TagName string  `json:"tag_name"`
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Locate returns the browser_download_url of the asset named artifact.
func (l *PinnedLocator) Locate(ctx context.Context, artifact string) (string, error) {
	req, err := newRequest(ctx, l.url)
	if err != nil {
		return "", err
	}

	req.Header.Set("Accept", "application/vnd.github+json")

	l.logger.Debug("fetching release metadata", "url", l.url, "tag", l.tag)

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetching release %s: %w", ErrNetwork, l.tag, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: release %s does not exist", ErrNotFound, l.tag)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: fetching release %s: unexpected status %s", ErrNetwork, l.tag, resp.Status)
	}

	var payload releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decoding release %s: %w", ErrNetwork, l.tag, err)
	}

	for _, a := range payload.Assets {
		if a.Name == artifact {
			l.logger.Debug("matched release asset", "asset", a.Name, "url", a.BrowserDownloadURL)

			return a.BrowserDownloadURL, nil
		}
	}

	return "", fmt.Errorf("%w: release %s has no asset named %s", ErrNotFound, l.tag, artifact)
}
