package markup

import (
	"regexp"
	"strings"
)

// nonAlnumRegex matches one or more characters outside [a-z0-9]
var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// MakeKey derives a document key from a display name:
// 1. Trim leading/trailing whitespace
// 2. Lowercase
// 3. Collapse runs of non-alphanumeric characters to a single underscore
// 4. Trim leading/trailing underscores
func MakeKey(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ToLower(s)
	s = nonAlnumRegex.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// MakeAccent normalizes a color name for embedding in a section class
// ("Bright Blue" -> "bright-blue"): lowercase, with non-alphanumeric runs
// collapsed to a single hyphen and trimmed.
func MakeAccent(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ToLower(s)
	s = nonAlnumRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// TitleFromKey produces a display name from a key ("dev_tools" -> "Dev Tools").
// Used as a fallback when a container carries no name comment.
func TitleFromKey(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// Marker builders. The exact comment strings are a wire format shared with
// existing documents; changing them breaks every page written so far.

func containerStartMarker(key string) string {
	return "<!-- CONTAINER_" + strings.ToUpper(key) + "_CONTENT_START -->"
}

func containerEndMarker(key string) string {
	return "<!-- CONTAINER_" + strings.ToUpper(key) + "_CONTENT_END -->"
}

func linksEndMarker(key string) string {
	return "<!-- " + strings.ToUpper(key) + "_LINKS_END -->"
}
