// Package videoid resolves YouTube video identifiers from share URLs or bare IDs.
//
// Only a fixed set of URL shapes is recognized:
//
//	https://youtu.be/<id>
//	https://www.youtube.com/watch?v=<id>
//	https://www.youtube.com/{shorts,embed,live}/<id>
//	https://www.youtube-nocookie.com/embed/<id>
package videoid

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ID is an 11-character YouTube video identifier.
type ID string

func (id ID) String() string { return string(id) }

var (
	ErrMissingInput    = errors.New("missing url or videoId")
	ErrInvalidURL      = errors.New("invalid URL")
	ErrUnrecognizedURL = errors.New("could not extract videoId")
)

const shortLinkHost = "youtu.be"

var (
	idRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

	primaryHosts = []string{"youtube.com", "youtube-nocookie.com"}
	routePrefix  = map[string]bool{"shorts": true, "embed": true, "live": true}
)

// Valid reports whether s has the shape of a video identifier.
func Valid(s string) bool {
	return idRE.MatchString(s)
}

// Resolve returns the video identifier named by input, which may be a bare ID
// or a share URL. Candidates that fail the identifier pattern are never returned.
func Resolve(input string) (ID, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrMissingInput
	}
	if Valid(s) {
		return ID(s), nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", ErrInvalidURL
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segs := pathSegments(u.Path)

	if host == shortLinkHost {
		if len(segs) > 0 && Valid(segs[0]) {
			return ID(segs[0]), nil
		}
	}

	if isPrimaryHost(host) {
		if u.Path == "/watch" {
			if v := firstValue(u.Query()["v"]); v != "" && Valid(v) {
				return ID(v), nil
			}
		}
		if len(segs) >= 2 && routePrefix[segs[0]] && Valid(segs[1]) {
			return ID(segs[1]), nil
		}
	}

	return "", ErrUnrecognizedURL
}

func isPrimaryHost(host string) bool {
	for _, h := range primaryHosts {
		if strings.HasSuffix(host, h) {
			return true
		}
	}
	return false
}

// pathSegments splits p on "/" and drops the empty segments produced by
// leading, trailing or doubled slashes.
func pathSegments(p string) []string {
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// firstValue returns the first non-blank value of a repeated query parameter.
func firstValue(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
