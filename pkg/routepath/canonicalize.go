package routepath

import (
	"errors"
	"strings"
)

// CanonicalizeResult contains the result of path canonicalization.
type CanonicalizeResult struct {
	// Path is the canonicalized path (without query string).
	Path string

	// Query is the query string (without leading "?").
	Query string

	// Changed indicates if the path was modified during canonicalization.
	Changed bool
}

// Path canonicalization errors.
var (
	ErrInvalidPath          = errors.New("invalid path")
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
)

// CanonicalizePath normalizes a URL path.
//
// The following transformations are applied:
//   - Add a leading slash if missing
//   - Collapse multiple slashes (/app//settings → /app/settings)
//   - Remove "." segments
//   - Resolve ".." segments
//   - Remove trailing slash (except for root "/")
//
// Paths containing a backslash, a NUL byte (literal or %00), an invalid
// percent escape, or a ".." that climbs above root are rejected.
// A query string is split off and returned untouched.
func CanonicalizePath(input string) (CanonicalizeResult, error) {
	if input == "" {
		return CanonicalizeResult{Path: "/", Changed: true}, nil
	}

	path, query := SplitPathAndQuery(input)

	if strings.Contains(path, "\\") {
		return CanonicalizeResult{}, ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return CanonicalizeResult{}, ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return CanonicalizeResult{}, err
		}
	}

	segments, err := normalizeSegments(path)
	if err != nil {
		return CanonicalizeResult{}, err
	}
	canon := "/" + strings.Join(segments, "/")

	return CanonicalizeResult{
		Path:    canon,
		Query:   query,
		Changed: canon != path,
	}, nil
}

// MustCanonicalize is like CanonicalizePath but panics on error and drops
// the query string. Intended for static route tables and tests.
func MustCanonicalize(path string) string {
	res, err := CanonicalizePath(path)
	if err != nil {
		panic("routepath: " + err.Error() + ": " + path)
	}
	return res.Path
}

// CanonicalizeNavPath canonicalizes a path received from a client for
// navigation. Absolute and protocol-relative URLs are rejected so that a
// navigate message can never become an open redirect.
//
// The returned string carries the query string, if any.
func CanonicalizeNavPath(path string) (string, error) {
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//") {
		return "", ErrInvalidPath
	}
	if !strings.HasPrefix(path, "/") {
		return "", ErrInvalidPath
	}

	res, err := CanonicalizePath(path)
	if err != nil {
		return "", err
	}
	if res.Query != "" {
		return res.Path + "?" + res.Query, nil
	}
	return res.Path, nil
}

// SplitPathAndQuery splits a path into path and query components.
// The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// normalizeSegments drops empty and "." segments and resolves "..".
func normalizeSegments(path string) ([]string, error) {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, seg := range parts {
		switch seg {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return nil, ErrPathEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}
	return out, nil
}

// validatePercentEscapes checks that every '%' starts a %XX hex escape.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
