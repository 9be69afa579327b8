package http

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildURL joins a relative endpoint onto baseURL and sets the query.
func BuildURL(baseURL, path string, query url.Values) (string, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("error parsing base URL: %w", err)
	}

	parsedURL.Path = strings.TrimRight(parsedURL.Path, "/") + "/" + strings.TrimLeft(path, "/")
	parsedURL.RawQuery = query.Encode()

	return parsedURL.String(), nil
}

// MergeQuery adds query to an absolute URL, keeping the parameters it already
// carries unless query overrides them.
func MergeQuery(rawURL string, query url.Values) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("error parsing URL: %w", err)
	}
	if !parsedURL.IsAbs() {
		return "", fmt.Errorf("URL %q is not absolute", rawURL)
	}

	if len(query) > 0 {
		q := parsedURL.Query()
		for key, values := range query {
			q[key] = values
		}
		parsedURL.RawQuery = q.Encode()
	}

	return parsedURL.String(), nil
}

// SameHost reports whether a and b point at the same scheme, host name and
// port. A missing port means the scheme default, so https://h and
// https://h:443 match.
func SameHost(a, b *url.URL) bool {
	if a == nil || b == nil {
		return false
	}
	return strings.EqualFold(a.Scheme, b.Scheme) &&
		strings.EqualFold(a.Hostname(), b.Hostname()) &&
		effectivePort(a) == effectivePort(b)
}

func effectivePort(u *url.URL) string {
	if port := u.Port(); port != "" {
		return port
	}
	switch strings.ToLower(u.Scheme) {
	case "https":
		return "443"
	case "http":
		return "80"
	}
	return ""
}
