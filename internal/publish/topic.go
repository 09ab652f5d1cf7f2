package publish

import (
	"regexp"
	"strings"
)

var (
	separatorRuns = regexp.MustCompile(`[\s\-.,!?]+`)
	invalidChars  = regexp.MustCompile(`[^a-z0-9_]`)
)

// SanitizeTopic converts a free-text city name into a safe topic segment:
// lower-cased, runs of whitespace and light punctuation collapsed to a single
// underscore, everything else outside [a-z0-9_] removed, leading and trailing
// underscores stripped. Non-ASCII letters are dropped rather than
// transliterated ("Zürich" becomes "zrich"); an empty result is a valid, if
// degenerate, segment.
//
// Example: "New York City!" -> "new_york_city".
func SanitizeTopic(name string) string {
	safe := separatorRuns.ReplaceAllString(strings.ToLower(name), "_")
	safe = invalidChars.ReplaceAllString(safe, "")
	return strings.Trim(safe, "_")
}

// Topic returns the publish topic for a city: weather/<sanitized-city>.
func Topic(city string) string {
	return "weather/" + SanitizeTopic(city)
}
