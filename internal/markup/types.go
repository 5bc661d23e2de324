package markup

// Layout selects the rendering template and CSS class family for a category.
type Layout string

const (
	LayoutCards   Layout = "cards"
	LayoutCompact Layout = "compact"
	LayoutLarge   Layout = "large"
)

// ParseLayout maps a user-supplied layout string to a Layout.
// Unknown or empty values fall back to LayoutCards.
func ParseLayout(s string) Layout {
	switch s {
	case string(LayoutCompact):
		return LayoutCompact
	case string(LayoutLarge):
		return LayoutLarge
	default:
		return LayoutCards
	}
}

// linkClass returns the CSS class of the link-list wrapper for this layout.
func (l Layout) linkClass() string {
	switch l {
	case LayoutCompact:
		return "compact-links"
	case LayoutLarge:
		return "large-links"
	default:
		return "links"
	}
}

// sectionClass returns the CSS class of the category wrapper for this layout.
func (l Layout) sectionClass() string {
	switch l {
	case LayoutCompact:
		return "section-compact"
	case LayoutLarge:
		return "section-large"
	default:
		return "section-card"
	}
}

// Container is a multi-column layout region derived from the document text.
// Containers are not stored anywhere as records; the document is the only
// source of truth.
type Container struct {
	// Key is a lowercase identifier, unique within the document
	Key string `json:"key"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// Columns is the rendering column count (1-4)
	Columns int `json:"columns"`
}

// Category is a titled link section nested inside exactly one container.
type Category struct {
	// Key is a lowercase identifier, unique across the whole document
	Key string `json:"key"`

	// Name is the display name
	Name string `json:"name"`

	// Description is the display description (may be empty)
	Description string `json:"description"`

	// Layout is one of cards|compact|large
	Layout Layout `json:"layout"`

	// Accent is a free-form color tag embedded in the wrapper class
	Accent string `json:"accent"`

	// ContainerKey is the owning container's key.
	// Derived positionally, never stored in the markup.
	ContainerKey string `json:"container_key"`

	// Column is advisory only; the markup does not enforce it
	Column int `json:"column,omitempty"`
}

// PageInfo describes the webpage being saved as a link card.
type PageInfo struct {
	// URL is the page address; embedded unescaped, callers supply well-formed URLs
	URL string `json:"url"`

	// Title is the page title; HTML-escaped before embedding
	Title string `json:"title"`
}
