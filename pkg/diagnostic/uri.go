package diagnostic

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
)

// ErrNotFileURI is returned when a URI does not use the file scheme.
var ErrNotFileURI = errors.New("not a file URI")

// PathFromURI converts a file:// URI (or a bare path) into a cleaned
// filesystem path. Relative bare paths are returned cleaned but not made absolute.
func PathFromURI(uri string) (string, error) {
	if uri == "" {
		return "", errors.New("empty URI")
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse URI %q: %w", uri, err)
	}

	switch parsed.Scheme {
	case "":
		return filepath.Clean(filepath.FromSlash(uri)), nil
	case "file":
	default:
		// A Windows drive letter parses as a one-letter scheme.
		if len(parsed.Scheme) == 1 {
			return filepath.Clean(uri), nil
		}
		return "", fmt.Errorf("%w: %q", ErrNotFileURI, uri)
	}

	if parsed.Host != "" && parsed.Host != "localhost" {
		return "", fmt.Errorf("%w: remote host %q in %q", ErrNotFileURI, parsed.Host, uri)
	}

	path := parsed.Path
	if path == "" {
		path = parsed.Opaque
	}
	if path == "" {
		return "", fmt.Errorf("URI %q has no path", uri)
	}

	// file:///C:/dir -> /C:/dir on Windows.
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}

	return filepath.Clean(filepath.FromSlash(path)), nil
}

// URIFromPath returns the file:// URI for path, resolving it to an absolute path first.
func URIFromPath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	slashed := filepath.ToSlash(path)
	if len(slashed) >= 2 && slashed[1] == ':' {
		slashed = "/" + slashed
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String()
}
