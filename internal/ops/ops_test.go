package ops

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/db"
	"github.com/hpungsan/linkboard/internal/errors"
	"github.com/hpungsan/linkboard/internal/markup"
	"github.com/hpungsan/linkboard/internal/wikijs"
)

// fakeGateway is an in-memory Gateway. Updates bump the page's UpdatedAt so
// tests can observe the conflict guard and cache bookkeeping.
type fakeGateway struct {
	page      *wikijs.Page
	updates   int
	getErr    error
	updateErr error
}

func (f *fakeGateway) GetPage(_ context.Context, id int) (*wikijs.Page, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.page == nil || f.page.ID != id {
		return nil, errors.NewPageNotFound(id)
	}
	page := *f.page
	return &page, nil
}

func (f *fakeGateway) UpdatePage(_ context.Context, page *wikijs.Page, newContent string) (*wikijs.UpdateResult, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates++
	f.page.Content = newContent
	f.page.UpdatedAt = fmt.Sprintf("2025-06-01T00:00:%02dZ", f.updates)
	return &wikijs.UpdateResult{ID: f.page.ID, UpdatedAt: f.page.UpdatedAt}, nil
}

const testPageID = 7

func newTestEnv(t *testing.T) (*fakeGateway, *sql.DB, *config.Config) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	gw := &fakeGateway{
		page: &wikijs.Page{
			ID:          testPageID,
			Path:        "links",
			Title:       "Links",
			Locale:      "en",
			IsPublished: true,
			UpdatedAt:   "2025-06-01T00:00:00Z",
		},
	}
	cfg := &config.Config{
		Endpoint: "http://wiki.local/graphql",
		Token:    "test-token",
		PageID:   testPageID,
		Locale:   "en",
	}
	return gw, database, cfg
}

// seedBoard gives the fake page one container with one cards category.
func seedBoard(t *testing.T, gw *fakeGateway) {
	t.Helper()

	doc, err := markup.AddContainer("", "tools", "Tools", 2)
	if err != nil {
		t.Fatalf("AddContainer failed: %v", err)
	}
	doc, err = markup.AddCategory(doc, markup.Category{
		Key:          "editors",
		Name:         "Editors",
		Layout:       markup.LayoutCards,
		Accent:       "blue",
		ContainerKey: "tools",
	})
	if err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	gw.page.Content = doc
}

func TestMutate_ValidatesConfig(t *testing.T) {
	gw, database, _ := newTestEnv(t)

	_, err := AddContainer(context.Background(), gw, database, &config.Config{}, AddContainerInput{Name: "Tools"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Fatalf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestMutate_PageNotFound(t *testing.T) {
	gw, database, cfg := newTestEnv(t)
	cfg.PageID = 999

	_, err := AddContainer(context.Background(), gw, database, cfg, AddContainerInput{Name: "Tools"})
	if !errors.Is(err, errors.ErrPageNotFound) {
		t.Fatalf("err = %v, want PAGE_NOT_FOUND", err)
	}
}

func TestMutate_TakesSnapshotOfPreEditBody(t *testing.T) {
	gw, database, cfg := newTestEnv(t)
	seedBoard(t, gw)
	before := gw.page.Content

	out, err := AddContainer(context.Background(), gw, database, cfg, AddContainerInput{Name: "Reading"})
	if err != nil {
		t.Fatalf("AddContainer failed: %v", err)
	}

	snapshot, err := db.GetSnapshot(database, out.SnapshotID)
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if snapshot.Content != before {
		t.Error("snapshot should hold the pre-edit body")
	}
	if snapshot.Operation != "add-container" {
		t.Errorf("Operation = %q, want %q", snapshot.Operation, "add-container")
	}
}

func TestMutate_ConflictGuard(t *testing.T) {
	gw, database, cfg := newTestEnv(t)
	seedBoard(t, gw)
	cfg.CheckConflicts = true

	// First sync records the page state.
	if _, err := Refresh(context.Background(), gw, database, cfg, RefreshInput{}); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	// Simulate someone else editing the page.
	gw.page.UpdatedAt = "2025-06-02T09:00:00Z"

	_, err := AddContainer(context.Background(), gw, database, cfg, AddContainerInput{Name: "Reading"})
	if !errors.Is(err, errors.ErrConflict) {
		t.Fatalf("err = %v, want CONFLICT", err)
	}
	if gw.updates != 0 {
		t.Error("conflicting edit must not reach the remote")
	}

	// A refresh re-syncs and the edit goes through.
	if _, err := Refresh(context.Background(), gw, database, cfg, RefreshInput{}); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if _, err := AddContainer(context.Background(), gw, database, cfg, AddContainerInput{Name: "Reading"}); err != nil {
		t.Fatalf("AddContainer after refresh failed: %v", err)
	}
}

func TestMutate_GuardDisabledAllowsStaleWrite(t *testing.T) {
	gw, database, cfg := newTestEnv(t)
	seedBoard(t, gw)

	if _, err := Refresh(context.Background(), gw, database, cfg, RefreshInput{}); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	gw.page.UpdatedAt = "2025-06-02T09:00:00Z"

	// Last write wins without the guard.
	if _, err := AddContainer(context.Background(), gw, database, cfg, AddContainerInput{Name: "Reading"}); err != nil {
		t.Fatalf("AddContainer failed: %v", err)
	}
}

func TestMutate_FailedEditLeavesRemoteUntouched(t *testing.T) {
	gw, database, cfg := newTestEnv(t)
	seedBoard(t, gw)
	before := gw.page.Content

	_, err := AddLink(context.Background(), gw, database, cfg, AddLinkInput{
		URL:      "https://example.com",
		Category: "nope",
	})
	if !errors.Is(err, errors.ErrMissingCategory) {
		t.Fatalf("err = %v, want MISSING_CATEGORY", err)
	}
	if gw.page.Content != before {
		t.Error("failed edit must not change the remote document")
	}
	if gw.updates != 0 {
		t.Errorf("updates = %d, want 0", gw.updates)
	}
}

func TestMutate_RebuildsCache(t *testing.T) {
	gw, database, cfg := newTestEnv(t)
	seedBoard(t, gw)

	if _, err := AddContainer(context.Background(), gw, database, cfg, AddContainerInput{Name: "Reading"}); err != nil {
		t.Fatalf("AddContainer failed: %v", err)
	}

	containers, err := db.ListContainers(database, testPageID)
	if err != nil {
		t.Fatalf("ListContainers failed: %v", err)
	}
	if len(containers) != 2 {
		t.Fatalf("cached containers = %d, want 2", len(containers))
	}

	updatedAt, ok, err := db.GetPageState(database, testPageID)
	if err != nil || !ok {
		t.Fatalf("GetPageState = (%v, %v), want stored state", ok, err)
	}
	if updatedAt != gw.page.UpdatedAt {
		t.Errorf("stored updatedAt = %q, want %q", updatedAt, gw.page.UpdatedAt)
	}
}
