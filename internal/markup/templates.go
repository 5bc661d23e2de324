package markup

import (
	"fmt"
	"net/url"
	"strings"
)

// External services used for link imagery. The favicon is embedded for every
// cards/large link; the screenshot preview only for the large layout.
const (
	faviconService = "https://www.google.com/s2/favicons?domain=%s&sz=64"
	previewService = "https://s.wordpress.com/mshots/v1/%s?w=640"
)

// escaper escapes user-supplied display text for HTML embedding.
// URLs and hostnames are embedded as-is; only & < > " are escaped.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// unescaper reverses escaper when recovering display text from the document.
var unescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&amp;", "&",
)

func escapeText(s string) string {
	return escaper.Replace(s)
}

func unescapeText(s string) string {
	return unescaper.Replace(s)
}

// HostOf extracts the hostname from a URL for display next to a link title.
// Malformed URLs yield an empty host rather than an error; the link is still
// usable without one.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// FaviconURL returns the favicon service URL for a page.
func FaviconURL(rawURL string) string {
	return fmt.Sprintf(faviconService, HostOf(rawURL))
}

// PreviewURL returns the screenshot-preview service URL for a page.
func PreviewURL(rawURL string) string {
	return fmt.Sprintf(previewService, url.QueryEscape(rawURL))
}

// RenderContainer produces the HTML fragment for a new container.
// The name comment line lets the analyzer recover the display name; without
// it the name degrades to a title-cased key.
func RenderContainer(key, name string, columns int) string {
	upper := strings.ToUpper(key)
	return fmt.Sprintf(`<div class="layout-container layout-%dcol" id="%s-container">
  <!-- %s -->
  <!-- CONTAINER_%s_CONTENT_START -->
  <!-- CONTAINER_%s_CONTENT_END -->
</div>`, columns, key, escapeText(name), upper, upper)
}

// RenderCategory produces the HTML fragment for a new category in the given
// layout. Each layout family uses distinct title/meta markup; the analyzer's
// look-ahead patterns must match what is emitted here.
func RenderCategory(cat Category, layout Layout) string {
	name := escapeText(cat.Name)
	desc := escapeText(cat.Description)
	head := fmt.Sprintf(`<div class="%s accent-%s" id="%s-section">`,
		layout.sectionClass(), cat.Accent, cat.Key)
	tail := fmt.Sprintf(`<div class="%s">
    <!-- %s_LINKS_END -->
  </div>
</div>`, layout.linkClass(), strings.ToUpper(cat.Key))

	switch layout {
	case LayoutCompact:
		return fmt.Sprintf(`%s
  <h3 class="compact-title">%s</h3>
  <span class="compact-desc">%s</span>
  %s`, head, name, desc, tail)
	case LayoutLarge:
		return fmt.Sprintf(`%s
  <div class="section-header">
    <h2 class="large-title">%s</h2>
    <p class="large-desc">%s</p>
  </div>
  %s`, head, name, desc, tail)
	default:
		return fmt.Sprintf(`%s
  <div class="section-header">
    <h2 class="section-title">%s</h2>
    <p class="section-desc">%s</p>
  </div>
  %s`, head, name, desc, tail)
	}
}

// RenderLink produces the anchor fragment for a saved page in the given
// layout. cards carries a favicon, large carries favicon plus screenshot
// preview, compact carries neither image.
func RenderLink(info PageInfo, layout Layout) string {
	title := escapeText(info.Title)
	host := HostOf(info.URL)

	switch layout {
	case LayoutCompact:
		return fmt.Sprintf(`<a class="link-row" href="%s"><span class="link-title">%s</span><span class="link-host">%s</span></a>`,
			info.URL, title, host)
	case LayoutLarge:
		return fmt.Sprintf(`<a class="link-tile" href="%s"><img class="link-preview" src="%s" alt=""><img class="link-icon" src="%s" alt=""><span class="link-title">%s</span><span class="link-host">%s</span></a>`,
			info.URL, PreviewURL(info.URL), FaviconURL(info.URL), title, host)
	default:
		return fmt.Sprintf(`<a class="link-card" href="%s"><img class="link-icon" src="%s" alt=""><span class="link-title">%s</span><span class="link-host">%s</span></a>`,
			info.URL, FaviconURL(info.URL), title, host)
	}
}
