package release

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	tagMarker      = "/releases/tag/"
	downloadMarker = "/releases/download/"
)

// TagsURL returns the release-metadata endpoint for a tag:
//
//	TagsURL("https://api.github.com", "openfaas/faas-cli", "0.16.4")
//	→ "https://api.github.com/repos/openfaas/faas-cli/releases/tags/0.16.4"
func TagsURL(apiURL, repo, tag string) string {
	return fmt.Sprintf("%s/repos/%s/releases/tags/%s", strings.TrimRight(apiURL, "/"), repo, url.PathEscape(tag))
}

// LatestURL returns the "latest release" alias that redirects to the newest tag.
func LatestURL(webURL, repo string) string {
	return fmt.Sprintf("%s/%s/releases/latest", strings.TrimRight(webURL, "/"), repo)
}

// DownloadURLFromTag turns a release page URL into the download URL of one
// of its assets:
//
//	.../releases/tag/v1.2.3 → .../releases/download/v1.2.3/<artifact>
//
// This is the GitHub path convention, not something we own. If it changes,
// this is the one place to update.
func DownloadURLFromTag(tagURL, artifact string) (string, error) {
	idx := strings.LastIndex(tagURL, tagMarker)
	if idx < 0 {
		return "", fmt.Errorf("release location %q has no %q segment", tagURL, tagMarker)
	}

	tag := strings.Trim(tagURL[idx+len(tagMarker):], "/")
	if tag == "" {
		return "", fmt.Errorf("release location %q has an empty tag", tagURL)
	}

	return tagURL[:idx] + downloadMarker + tag + "/" + artifact, nil
}

// TagFromURL extracts the tag from a release page URL, or "" if there is none.
func TagFromURL(tagURL string) string {
	idx := strings.LastIndex(tagURL, tagMarker)
	if idx < 0 {
		return ""
	}

	return strings.Trim(tagURL[idx+len(tagMarker):], "/")
}
