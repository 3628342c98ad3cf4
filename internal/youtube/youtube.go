// Package youtube extracts video ids from YouTube-style URLs.
package youtube

import (
	"regexp"
	"strings"

	"github.com/oukeidos/tunelate/internal/apperrors"
)

// IDLength is the length of a YouTube video id.
const IDLength = 11

var (
	videoIDPattern = regexp.MustCompile(`(?i)^(?:https?://)?(?:(?:www|m|music)\.)?(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/|v/|live/)|youtu\.be/)([A-Za-z0-9_-]{11})(?:[?&#/].*)?$`)
	bareIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// VideoID returns the 11-character id referenced by rawURL. Anything that
// does not match a supported URL form fails with INVALID_URL.
func VideoID(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", apperrors.New(apperrors.KindInvalidURL, "A YouTube URL is required.", nil)
	}
	m := videoIDPattern.FindStringSubmatch(s)
	if m == nil {
		return "", apperrors.New(apperrors.KindInvalidURL, "", nil)
	}
	return m[1], nil
}

// IsVideoID reports whether s is a well-formed bare video id.
func IsVideoID(s string) bool {
	return bareIDPattern.MatchString(s)
}

// WatchURL returns the canonical watch URL for id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
