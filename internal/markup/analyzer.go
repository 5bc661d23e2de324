package markup

import (
	"regexp"
	"strings"
)

// categoryWindow bounds the look-ahead (in bytes, not lines) used to recover
// a category's name and description after its opening tag. Large enough for
// the rendered header of any layout family; a hand-edited header pushed past
// it degrades to key/empty rather than failing.
const categoryWindow = 360

// containerPattern matches a container-block opening tag.
// Groups: column count, key.
var containerPattern = regexp.MustCompile(`<div class="layout-container layout-([1-4])col" id="([a-z0-9_]+)-container">`)

// categoryPattern matches a category-block opening tag.
// Groups: section class (layout family), accent, key.
var categoryPattern = regexp.MustCompile(`<div class="(section-card|section-compact|section-large) accent-([a-z0-9-]*)" id="([a-z0-9_]+)-section">`)

// containerStartPattern matches any container content-start marker.
var containerStartPattern = regexp.MustCompile(`<!-- CONTAINER_([A-Za-z0-9_]+)_CONTENT_START -->`)

// commentPattern matches the first HTML comment in a scan window.
var commentPattern = regexp.MustCompile(`<!-- ([^>]*?) -->`)

// Title/meta sub-fragment patterns per layout family. These mirror what
// RenderCategory emits; display text never contains a raw '<'.
var (
	cardsTitlePattern   = regexp.MustCompile(`<h2 class="section-title">([^<]*)</h2>`)
	cardsDescPattern    = regexp.MustCompile(`<p class="section-desc">([^<]*)</p>`)
	compactTitlePattern = regexp.MustCompile(`<h3 class="compact-title">([^<]*)</h3>`)
	compactDescPattern  = regexp.MustCompile(`<span class="compact-desc">([^<]*)</span>`)
	largeTitlePattern   = regexp.MustCompile(`<h2 class="large-title">([^<]*)</h2>`)
	largeDescPattern    = regexp.MustCompile(`<p class="large-desc">([^<]*)</p>`)
)

// Analyzer derives the logical container/category model from a raw document.
// Every scan is stateless over the bound text; after any mutation the caller
// must construct a fresh Analyzer rather than patching this one.
type Analyzer struct {
	doc string
}

// NewAnalyzer binds an analyzer to a document snapshot.
func NewAnalyzer(doc string) *Analyzer {
	return &Analyzer{doc: doc}
}

// Doc returns the bound document text.
func (a *Analyzer) Doc() string {
	return a.doc
}

// Containers returns all containers in document order.
func (a *Analyzer) Containers() []Container {
	matches := containerPattern.FindAllStringSubmatchIndex(a.doc, -1)
	containers := make([]Container, 0, len(matches))
	for _, m := range matches {
		// m: [fullStart, fullEnd, colsStart, colsEnd, keyStart, keyEnd]
		cols := int(a.doc[m[2]] - '0')
		key := a.doc[m[4]:m[5]]
		containers = append(containers, Container{
			Key:     key,
			Name:    a.containerName(key, m[1]),
			Columns: cols,
		})
	}
	return containers
}

// containerName recovers the display name from the comment adjacent to the
// container's opening tag. Structural markers don't count as name comments;
// with none present the key is title-cased instead.
func (a *Analyzer) containerName(key string, after int) string {
	window := a.doc[after:min(after+categoryWindow, len(a.doc))]
	if m := commentPattern.FindStringSubmatch(window); m != nil {
		body := m[1]
		if !strings.HasPrefix(body, "CONTAINER_") {
			return unescapeText(body)
		}
	}
	return TitleFromKey(key)
}

// Categories returns all categories in document order, with ownership
// resolved positionally per category.
func (a *Analyzer) Categories() []Category {
	matches := categoryPattern.FindAllStringSubmatchIndex(a.doc, -1)
	categories := make([]Category, 0, len(matches))
	for _, m := range matches {
		categories = append(categories, a.categoryAt(m))
	}
	return categories
}

// Category returns the category with the given key, if derivable.
func (a *Analyzer) Category(key string) (Category, bool) {
	for _, m := range categoryPattern.FindAllStringSubmatchIndex(a.doc, -1) {
		if a.doc[m[6]:m[7]] == key {
			return a.categoryAt(m), true
		}
	}
	return Category{}, false
}

// categoryAt reconstructs a category from a categoryPattern match.
// m: [fullStart, fullEnd, classStart, classEnd, accentStart, accentEnd, keyStart, keyEnd]
func (a *Analyzer) categoryAt(m []int) Category {
	layout := layoutFromClass(a.doc[m[2]:m[3]])
	key := a.doc[m[6]:m[7]]
	name, desc := a.categoryHeader(layout, m[1])
	if name == "" {
		name = key
	}
	return Category{
		Key:          key,
		Name:         name,
		Description:  desc,
		Layout:       layout,
		Accent:       a.doc[m[4]:m[5]],
		ContainerKey: a.lastContainerStartBefore(m[0]),
	}
}

// categoryHeader recovers name and description from the fixed-size window
// following the category's opening tag. Either fragment may be missing or
// cut off by the window; both degrade independently.
func (a *Analyzer) categoryHeader(layout Layout, after int) (name, desc string) {
	window := a.doc[after:min(after+categoryWindow, len(a.doc))]

	var titlePat, descPat *regexp.Regexp
	switch layout {
	case LayoutCompact:
		titlePat, descPat = compactTitlePattern, compactDescPattern
	case LayoutLarge:
		titlePat, descPat = largeTitlePattern, largeDescPattern
	default:
		titlePat, descPat = cardsTitlePattern, cardsDescPattern
	}

	if m := titlePat.FindStringSubmatch(window); m != nil {
		name = unescapeText(m[1])
	}
	if m := descPat.FindStringSubmatch(window); m != nil {
		desc = unescapeText(m[1])
	}
	return name, desc
}

func layoutFromClass(class string) Layout {
	switch class {
	case "section-compact":
		return LayoutCompact
	case "section-large":
		return LayoutLarge
	default:
		return LayoutCards
	}
}

// ContainerFor returns the key of the container owning the given category,
// or "" when the category or any preceding container start marker is absent.
// Ownership is positional: the nearest container start marker preceding the
// category's opening tag wins. Callers that append categories always target
// a valid container end marker, which preserves correctness by construction.
func (a *Analyzer) ContainerFor(categoryKey string) string {
	pos := strings.Index(a.doc, `id="`+categoryKey+`-section"`)
	if pos < 0 {
		return ""
	}
	return a.lastContainerStartBefore(pos)
}

// lastContainerStartBefore finds the last container content-start marker in
// doc[:pos] and returns its key, lowercased.
func (a *Analyzer) lastContainerStartBefore(pos int) string {
	matches := containerStartPattern.FindAllStringSubmatchIndex(a.doc[:pos], -1)
	if len(matches) == 0 {
		return ""
	}
	last := matches[len(matches)-1]
	return strings.ToLower(a.doc[last[2]:last[3]])
}

// ContainerExists reports whether a container with the key is present.
func (a *Analyzer) ContainerExists(key string) bool {
	return strings.Contains(a.doc, `id="`+key+`-container"`)
}

// CategoryExists reports whether a category with the key is present.
func (a *Analyzer) CategoryExists(key string) bool {
	return strings.Contains(a.doc, `id="`+key+`-section"`)
}
