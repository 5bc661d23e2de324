package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/db"
	"github.com/hpungsan/linkboard/internal/errors"
	"github.com/hpungsan/linkboard/internal/markup"
	"github.com/hpungsan/linkboard/internal/wikijs"
)

// Limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
	MaxImportLinks      = 200

	// snapshotKeep bounds the per-page undo history.
	snapshotKeep = 50
)

// Gateway is the slice of the wiki client the operations need. *wikijs.Client
// satisfies it; tests substitute an in-memory fake.
type Gateway interface {
	GetPage(ctx context.Context, id int) (*wikijs.Page, error)
	UpdatePage(ctx context.Context, page *wikijs.Page, newContent string) (*wikijs.UpdateResult, error)
}

// MutateOutput is the common result of every document-mutating operation.
type MutateOutput struct {
	PageID     int    `json:"page_id"`
	SnapshotID string `json:"snapshot_id"`
	UpdatedAt  string `json:"updated_at"`
}

// mutate runs one read-modify-write cycle against the board page:
// load, optional conflict guard, edit in memory, snapshot the pre-edit body,
// persist, rebuild the cache. The edit either fully applies or the remote
// document is left untouched; there is no partial application. Two cycles
// racing from separate processes can still overwrite each other unless the
// conflict guard is enabled — that is the documented contract.
func mutate(ctx context.Context, gw Gateway, database *sql.DB, cfg *config.Config, operation string, edit func(doc string) (string, error)) (*MutateOutput, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	page, err := gw.GetPage(ctx, cfg.PageID)
	if err != nil {
		return nil, err
	}

	if cfg.CheckConflicts {
		if stored, ok, err := db.GetPageState(database, cfg.PageID); err != nil {
			return nil, err
		} else if ok && stored != page.UpdatedAt {
			return nil, errors.NewConflict(
				"page changed remotely since last sync; run refresh and retry")
		}
	}

	newDoc, err := edit(page.Content)
	if err != nil {
		return nil, err
	}

	snapshotID, err := db.InsertSnapshot(database, cfg.PageID, operation, page.Content)
	if err != nil {
		return nil, err
	}
	// Undo history is bounded; pruning failures don't block the edit.
	_, _ = db.PruneSnapshots(database, cfg.PageID, snapshotKeep)

	result, err := gw.UpdatePage(ctx, page, newDoc)
	if err != nil {
		return nil, err
	}

	rebuildCache(database, cfg.PageID, newDoc, result.UpdatedAt)

	return &MutateOutput{
		PageID:     cfg.PageID,
		SnapshotID: snapshotID,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

// rebuildCache re-derives the container/category model from the document and
// replaces the local cache. The cache is disposable: on any failure it is
// dropped rather than left stale.
func rebuildCache(database *sql.DB, pageID int, doc, updatedAt string) {
	analyzer := markup.NewAnalyzer(doc)
	err := db.ReplaceCache(database, pageID, analyzer.Containers(), analyzer.Categories(), updatedAt)
	if err != nil {
		_ = db.InvalidateCache(database, pageID)
	}
}
