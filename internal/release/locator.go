// Package release resolves the download URL of a release artifact, either for
// a pinned tag or for whatever the "latest" alias currently points at.
package release

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-version"
)

const (
	// Latest selects the newest published release.
	Latest = "latest"

	// DefaultRepo is the GitHub repository publishing the artifacts.
	DefaultRepo = "openfaas/faas-cli"
	// DefaultAPIURL is the GitHub REST API root.
	DefaultAPIURL = "https://api.github.com"
	// DefaultWebURL is the GitHub web root used for the latest alias.
	DefaultWebURL = "https://github.com"

	userAgent = "faas-installer"
)

var (
	// ErrNotFound is returned when a release or asset does not exist.
	ErrNotFound = errors.New("release asset not found")
	// ErrNetwork is returned for transport failures and unexpected responses.
	ErrNetwork = errors.New("network error")
)

// Locator resolves the download URL of an artifact.
type Locator interface {
	Locate(ctx context.Context, artifact string) (string, error)
}

// Options configures New.
type Options struct {
	// Repo is "owner/name".
	Repo string
	// Version is Latest or an exact release tag.
	Version string
	APIURL  string
	WebURL  string
	// Client defaults to a go-cleanhttp client. It has no overall timeout;
	// the context passed to Locate bounds each lookup.
	Client *http.Client
	Logger *slog.Logger
}

// Spec is a parsed version request.
type Spec struct {
	Tag    string
	parsed *version.Version
}

// IsLatest reports whether s asks for the newest release.
func (s Spec) IsLatest() bool {
	return s.Tag == Latest
}

// Version returns the parsed pinned version, or nil for latest.
func (s Spec) Version() *version.Version {
	return s.parsed
}

// String returns the tag, or "latest".
func (s Spec) String() string {
	return s.Tag
}

// ParseSpec validates a version request. Empty means latest. Pinned tags must
// be valid versions ("0.16.4", "v1.2.3") and are kept verbatim, since the
// release index matches tags exactly.
func ParseSpec(raw string) (Spec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, Latest) {
		return Spec{Tag: Latest}, nil
	}

	v, err := version.NewVersion(raw)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid version %q: %w", raw, err)
	}

	return Spec{Tag: raw, parsed: v}, nil
}

// New returns the Locator for opts.Version.
func New(opts Options) (Locator, error) {
	spec, err := ParseSpec(opts.Version)
	if err != nil {
		return nil, err
	}

	if opts.Repo == "" {
		opts.Repo = DefaultRepo
	}

	if opts.Client == nil {
		opts.Client = cleanhttp.DefaultClient()
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if spec.IsLatest() {
		webURL := opts.WebURL
		if webURL == "" {
			webURL = DefaultWebURL
		}

		return NewLatestLocator(LatestURL(webURL, opts.Repo), opts.Client, opts.Logger), nil
	}

	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	return NewPinnedLocator(TagsURL(apiURL, opts.Repo, spec.Tag), spec.Tag, opts.Client, opts.Logger), nil
}

func newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request for %s: %w", ErrNetwork, url, err)
	}

	req.Header.Set("User-Agent", userAgent)

	return req, nil
}
