package store

import (
	"errors"
	"net/url"
	"strings"
)

// ErrURLInvalid is returned when a submitted URL is empty or not an absolute
// http(s) URL.
var ErrURLInvalid = errors.New("url must be an absolute http or https URL")

// ValidateURL checks that raw parses as an absolute http(s) URL with a host.
// It does not fetch anything; reachability is the metadata resolver's concern,
// and an unreachable URL is still a valid bookmark.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrURLInvalid
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ErrURLInvalid
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrURLInvalid
	}
	if u.Host == "" {
		return ErrURLInvalid
	}
	return nil
}
