package release

import "net/http"

// HTTPClient returns the client a Locator built by New sends requests with.
func HTTPClient(l Locator) *http.Client {
	switch loc := l.(type) {
	case *PinnedLocator:
		return loc.client
	case *LatestLocator:
		return loc.client
	default:
		return nil
	}
}
