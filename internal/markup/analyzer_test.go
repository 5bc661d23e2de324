package markup

import (
	"strings"
	"testing"
)

// composeBoard builds a document through the editor the way the ops layer
// does: container, then category, then link.
func composeBoard(t *testing.T) string {
	t.Helper()

	doc, err := AddContainer("", "dev", "Dev Tools", 2)
	if err != nil {
		t.Fatalf("AddContainer: %v", err)
	}
	doc, err = AddCategory(doc, Category{
		Key:          "golang",
		Name:         "Go & Friends",
		Description:  "language stuff",
		Layout:       LayoutCards,
		Accent:       "blue",
		ContainerKey: "dev",
	})
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	doc, err = AddLink(doc, PageInfo{URL: "https://go.dev", Title: "The Go Programming Language"}, "golang")
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	return doc
}

func TestRoundTrip_RendererToAnalyzer(t *testing.T) {
	doc := composeBoard(t)
	a := NewAnalyzer(doc)

	containers := a.Containers()
	if len(containers) != 1 {
		t.Fatalf("expected 1 container, got %d", len(containers))
	}
	c := containers[0]
	if c.Key != "dev" || c.Name != "Dev Tools" || c.Columns != 2 {
		t.Errorf("container = %+v", c)
	}

	categories := a.Categories()
	if len(categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(categories))
	}
	cat := categories[0]
	if cat.Key != "golang" {
		t.Errorf("Key = %q", cat.Key)
	}
	if cat.Name != "Go & Friends" {
		t.Errorf("Name = %q (escaping not round-tripped)", cat.Name)
	}
	if cat.Description != "language stuff" {
		t.Errorf("Description = %q", cat.Description)
	}
	if cat.Layout != LayoutCards {
		t.Errorf("Layout = %q", cat.Layout)
	}
	if cat.Accent != "blue" {
		t.Errorf("Accent = %q", cat.Accent)
	}
	if cat.ContainerKey != "dev" {
		t.Errorf("ContainerKey = %q", cat.ContainerKey)
	}
}

func TestRoundTrip_CompactAndLarge(t *testing.T) {
	for _, layout := range []Layout{LayoutCompact, LayoutLarge} {
		doc, err := AddContainer("", "p", "P", 1)
		if err != nil {
			t.Fatalf("AddContainer: %v", err)
		}
		doc, err = AddCategory(doc, Category{
			Key: "c1", Name: "Cat", Description: "d",
			Layout: layout, Accent: "red", ContainerKey: "p",
		})
		if err != nil {
			t.Fatalf("AddCategory(%s): %v", layout, err)
		}

		cat, ok := NewAnalyzer(doc).Category("c1")
		if !ok {
			t.Fatalf("category not derivable for layout %s", layout)
		}
		if cat.Layout != layout {
			t.Errorf("Layout = %q, want %q", cat.Layout, layout)
		}
		if cat.Name != "Cat" || cat.Description != "d" {
			t.Errorf("%s header = %q / %q", layout, cat.Name, cat.Description)
		}
	}
}

func TestContainers_NameFallback(t *testing.T) {
	// Container without a name comment: title-cased key.
	doc := `<div class="layout-container layout-3col" id="dev_tools-container">
  <!-- CONTAINER_DEV_TOOLS_CONTENT_START -->
  <!-- CONTAINER_DEV_TOOLS_CONTENT_END -->
</div>`
	containers := NewAnalyzer(doc).Containers()
	if len(containers) != 1 {
		t.Fatalf("expected 1 container, got %d", len(containers))
	}
	if containers[0].Name != "Dev Tools" {
		t.Errorf("Name = %q, want fallback %q", containers[0].Name, "Dev Tools")
	}
	if containers[0].Columns != 3 {
		t.Errorf("Columns = %d", containers[0].Columns)
	}
}

func TestCategories_HeaderMissing(t *testing.T) {
	// Hand-written category without title/meta fragments: name falls back to
	// the key, description to empty.
	doc := `<div class="section-card accent-gray" id="misc-section">
  <div class="links">
    <!-- MISC_LINKS_END -->
  </div>
</div>`
	cats := NewAnalyzer(doc).Categories()
	if len(cats) != 1 {
		t.Fatalf("expected 1 category, got %d", len(cats))
	}
	if cats[0].Name != "misc" {
		t.Errorf("Name = %q, want key fallback", cats[0].Name)
	}
	if cats[0].Description != "" {
		t.Errorf("Description = %q, want empty", cats[0].Description)
	}
}

func TestCategories_HeaderCutOffByWindow(t *testing.T) {
	// A title pushed past the look-ahead window is treated as absent.
	pad := strings.Repeat("<span></span>", 60)
	doc := `<div class="section-card accent-blue" id="far-section">` + pad +
		`<h2 class="section-title">Far</h2><div class="links"><!-- FAR_LINKS_END --></div></div>`
	cats := NewAnalyzer(doc).Categories()
	if len(cats) != 1 {
		t.Fatalf("expected 1 category, got %d", len(cats))
	}
	if cats[0].Name != "far" {
		t.Errorf("Name = %q, want key fallback after window cut-off", cats[0].Name)
	}
}

func TestFindContainerForCategory_Positional(t *testing.T) {
	doc, err := AddContainer("", "a", "A", 1)
	if err != nil {
		t.Fatal(err)
	}
	doc, err = AddContainer(doc, "b", "B", 1)
	if err != nil {
		t.Fatal(err)
	}
	doc, err = AddCategory(doc, Category{Key: "c1", Name: "C1", Layout: LayoutCards, Accent: "blue", ContainerKey: "a"})
	if err != nil {
		t.Fatal(err)
	}
	doc, err = AddCategory(doc, Category{Key: "c2", Name: "C2", Layout: LayoutCards, Accent: "blue", ContainerKey: "b"})
	if err != nil {
		t.Fatal(err)
	}

	a := NewAnalyzer(doc)
	if got := a.ContainerFor("c1"); got != "a" {
		t.Errorf("ContainerFor(c1) = %q, want a", got)
	}
	if got := a.ContainerFor("c2"); got != "b" {
		t.Errorf("ContainerFor(c2) = %q, want b", got)
	}
	if got := a.ContainerFor("nope"); got != "" {
		t.Errorf("ContainerFor(nope) = %q, want empty", got)
	}
}

func TestExistenceChecks(t *testing.T) {
	doc := composeBoard(t)
	a := NewAnalyzer(doc)

	if !a.ContainerExists("dev") {
		t.Error("ContainerExists(dev) = false")
	}
	if a.ContainerExists("ops") {
		t.Error("ContainerExists(ops) = true")
	}
	if !a.CategoryExists("golang") {
		t.Error("CategoryExists(golang) = false")
	}
	if a.CategoryExists("go") {
		t.Error("CategoryExists(go) matched a prefix of another key")
	}
}

func TestAnalyzer_MultipleContainersDocumentOrder(t *testing.T) {
	var doc string
	var err error
	for _, key := range []string{"zeta", "alpha", "mid"} {
		doc, err = AddContainer(doc, key, TitleFromKey(key), 1)
		if err != nil {
			t.Fatal(err)
		}
	}
	containers := NewAnalyzer(doc).Containers()
	if len(containers) != 3 {
		t.Fatalf("expected 3 containers, got %d", len(containers))
	}
	// First-occurrence order, not sorted.
	for i, want := range []string{"zeta", "alpha", "mid"} {
		if containers[i].Key != want {
			t.Errorf("containers[%d].Key = %q, want %q", i, containers[i].Key, want)
		}
	}
}
