package markup

import (
	"regexp"
	"strings"

	"github.com/hpungsan/linkboard/internal/errors"
)

// The editor mutates the raw document text by splicing rendered fragments at
// marker positions. Every operation either returns a new document value or
// fails with the original untouched; nothing is applied partially. Insertions
// anchor on uniquely-named marker comments rather than parsed tree positions
// because the wiki's rich-text storage guarantees nothing about DOM structure
// across editor round-trips, while comments survive serialization.

// contentIndent is the indentation used inside container and link-list blocks.
const contentIndent = "  "

// accentPattern is the class-attribute charset categoryPattern reads back.
// An accent outside it would render a section no later scan can derive.
var accentPattern = regexp.MustCompile(`^[a-z0-9-]*$`)

// AddContainer appends a freshly rendered container block to the document.
// Fails with DUPLICATE_KEY if the key is already taken.
func AddContainer(doc, key, name string, columns int) (string, error) {
	if key == "" {
		return "", errors.NewInvalidRequest("container key must not be empty")
	}
	if columns < 1 || columns > 4 {
		return "", errors.NewInvalidRequest("columns must be between 1 and 4")
	}
	if NewAnalyzer(doc).ContainerExists(key) {
		return "", errors.NewDuplicateKey("container", key)
	}

	fragment := RenderContainer(key, name, columns)
	if doc == "" {
		return fragment, nil
	}

	// Separate from prior content with a blank line unless one is already there.
	sep := ""
	switch {
	case strings.HasSuffix(doc, "\n\n"):
	case strings.HasSuffix(doc, "\n"):
		sep = "\n"
	default:
		sep = "\n\n"
	}
	return doc + sep + fragment, nil
}

// AddCategory inserts a rendered category block immediately before the owning
// container's end marker. Fails with DUPLICATE_KEY on a key collision and
// MISSING_CONTAINER when the target container is absent.
func AddCategory(doc string, cat Category) (string, error) {
	if cat.Key == "" {
		return "", errors.NewInvalidRequest("category key must not be empty")
	}
	if !accentPattern.MatchString(cat.Accent) {
		return "", errors.NewInvalidRequest("accent must be lowercase alphanumeric with hyphens")
	}
	a := NewAnalyzer(doc)
	if a.CategoryExists(cat.Key) {
		return "", errors.NewDuplicateKey("category", cat.Key)
	}
	if !a.ContainerExists(cat.ContainerKey) {
		return "", errors.NewMissingContainer(cat.ContainerKey)
	}

	start := containerStartMarker(cat.ContainerKey)
	end := containerEndMarker(cat.ContainerKey)
	startIdx := strings.Index(doc, start)
	if startIdx < 0 {
		return "", errors.NewMarkerNotFound(start)
	}
	endIdx := strings.Index(doc, end)
	if endIdx < 0 {
		return "", errors.NewMarkerNotFound(end)
	}

	fragment := RenderCategory(cat, cat.Layout)

	// Prefix a newline+indent only when the container already holds content,
	// so a fresh category doesn't visually merge with the previous one. The
	// trailing newline+indent keeps the end marker on its own line.
	region := doc[startIdx+len(start) : endIdx]
	insert := fragment + "\n" + contentIndent
	if strings.TrimSpace(region) != "" {
		insert = "\n" + contentIndent + insert
	}

	return doc[:endIdx] + insert + doc[endIdx:], nil
}

// AddLink renders a link fragment for the page using the category's own
// layout and inserts it immediately before that category's end-of-links
// marker, followed by indentation. The newest link always lands right before
// the marker, so document order is insertion order.
func AddLink(doc string, info PageInfo, categoryKey string) (string, error) {
	if info.URL == "" {
		return "", errors.NewInvalidRequest("link url must not be empty")
	}
	cat, ok := NewAnalyzer(doc).Category(categoryKey)
	if !ok {
		return "", errors.NewMissingCategory(categoryKey)
	}

	marker := linksEndMarker(categoryKey)
	idx := strings.Index(doc, marker)
	if idx < 0 {
		return "", errors.NewMarkerNotFound(marker)
	}

	fragment := RenderLink(info, cat.Layout)
	return doc[:idx] + fragment + "\n" + contentIndent + contentIndent + doc[idx:], nil
}

// RemoveAllLinks strips the link list of every derivable category, leaving a
// single indented blank line between the wrapper open tag and the end-of-links
// marker. Removal is best-effort per category: a category whose marker or
// matching wrapper tag cannot be located is skipped, never an error. Applying
// the operation twice yields the same document as applying it once.
func RemoveAllLinks(doc string) string {
	for _, cat := range NewAnalyzer(doc).Categories() {
		marker := linksEndMarker(cat.Key)
		markerIdx := strings.Index(doc, marker)
		if markerIdx < 0 {
			continue
		}

		openTag := `<div class="` + cat.Layout.linkClass() + `">`
		openIdx := strings.LastIndex(doc[:markerIdx], openTag)
		if openIdx < 0 {
			continue
		}

		contentStart := openIdx + len(openTag)
		doc = doc[:contentStart] + "\n" + contentIndent + contentIndent + doc[markerIdx:]
	}
	return doc
}
