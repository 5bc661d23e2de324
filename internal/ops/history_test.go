package ops

import (
	"context"
	"strings"
	"testing"

	"github.com/hpungsan/linkboard/internal/errors"
)

func TestHistory_NewestFirst(t *testing.T) {
	gw, database, cfg := newTestEnv(t)
	seedBoard(t, gw)

	if _, err := AddLink(context.Background(), gw, database, cfg, AddLinkInput{
		URL: "https://a.example", Category: "editors",
	}); err != nil {
		t.Fatalf("AddLink failed: %v", err)
	}
	if _, err := RemoveLinks(context.Background(), gw, database, cfg, RemoveLinksInput{}); err != nil {
		t.Fatalf("RemoveLinks failed: %v", err)
	}

	out, err := History(context.Background(), database, cfg, HistoryInput{})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}

	if len(out.Snapshots) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(out.Snapshots))
	}
	if out.Snapshots[0].Operation != "clear-links" {
		t.Errorf("newest operation = %q, want %q", out.Snapshots[0].Operation, "clear-links")
	}
	if out.Snapshots[1].Operation != "add-link" {
		t.Errorf("oldest operation = %q, want %q", out.Snapshots[1].Operation, "add-link")
	}
	// Listing omits bodies.
	if out.Snapshots[0].Content != "" {
		t.Error("listing should not carry snapshot bodies")
	}
}

func TestHistory_LimitCap(t *testing.T) {
	_, database, cfg := newTestEnv(t)

	_, err := History(context.Background(), database, cfg, HistoryInput{Limit: MaxHistoryLimit + 1})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Fatalf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestHistory_EmptyIsNotAnError(t *testing.T) {
	_, database, cfg := newTestEnv(t)

	out, err := History(context.Background(), database, cfg, HistoryInput{})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if out.Snapshots == nil || len(out.Snapshots) != 0 {
		t.Errorf("Snapshots = %v, want empty non-nil slice", out.Snapshots)
	}
}

func TestShowSnapshot_ReturnsBody(t *testing.T) {
	gw, database, cfg := newTestEnv(t)
	seedBoard(t, gw)
	before := gw.page.Content

	added, err := AddLink(context.Background(), gw, database, cfg, AddLinkInput{
		URL: "https://a.example", Category: "editors",
	})
	if err != nil {
		t.Fatalf("AddLink failed: %v", err)
	}

	out, err := ShowSnapshot(context.Background(), database, ShowSnapshotInput{ID: added.SnapshotID})
	if err != nil {
		t.Fatalf("ShowSnapshot failed: %v", err)
	}
	if out.Snapshot.Content != before {
		t.Error("snapshot body should be the pre-edit document")
	}
}

func TestShowSnapshot_UnknownID(t *testing.T) {
	_, database, _ := newTestEnv(t)

	_, err := ShowSnapshot(context.Background(), database, ShowSnapshotInput{ID: "01UNKNOWN"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Fatalf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	gw, database, cfg := newTestEnv(t)
	seedBoard(t, gw)
	before := gw.page.Content

	added, err := AddLink(context.Background(), gw, database, cfg, AddLinkInput{
		URL: "https://a.example", Category: "editors",
	})
	if err != nil {
		t.Fatalf("AddLink failed: %v", err)
	}
	if !strings.Contains(gw.page.Content, "a.example") {
		t.Fatal("link should be present before restore")
	}

	out, err := Restore(context.Background(), gw, database, cfg, RestoreInput{ID: added.SnapshotID})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if out.RestoredFrom != added.SnapshotID {
		t.Errorf("RestoredFrom = %q, want %q", out.RestoredFrom, added.SnapshotID)
	}
	if gw.page.Content != before {
		t.Error("restore should bring back the snapshotted body")
	}
	// The restore itself is undoable.
	undo, err := ShowSnapshot(context.Background(), database, ShowSnapshotInput{ID: out.SnapshotID})
	if err != nil {
		t.Fatalf("ShowSnapshot failed: %v", err)
	}
	if !strings.Contains(undo.Snapshot.Content, "a.example") {
		t.Error("restore's own snapshot should hold the replaced body")
	}
}

func TestRestore_WrongPage(t *testing.T) {
	gw, database, cfg := newTestEnv(t)
	seedBoard(t, gw)

	added, err := AddLink(context.Background(), gw, database, cfg, AddLinkInput{
		URL: "https://a.example", Category: "editors",
	})
	if err != nil {
		t.Fatalf("AddLink failed: %v", err)
	}

	other := *cfg
	other.PageID = 99
	_, err = Restore(context.Background(), gw, database, &other, RestoreInput{ID: added.SnapshotID})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Fatalf("err = %v, want INVALID_REQUEST", err)
	}
}
