package ops

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/db"
	"github.com/hpungsan/linkboard/internal/errors"
)

// HistoryInput contains parameters for the History operation.
type HistoryInput struct {
	// Limit caps the number of entries returned (default 20, max 100)
	Limit int
}

// HistoryOutput contains the result of the History operation.
type HistoryOutput struct {
	PageID    int           `json:"page_id"`
	Snapshots []db.Snapshot `json:"snapshots"`
}

// History lists the locally kept pre-edit snapshots, newest first.
func History(_ context.Context, database *sql.DB, cfg *config.Config, input HistoryInput) (*HistoryOutput, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return nil, errors.NewInvalidRequest(
			fmt.Sprintf("limit %d exceeds maximum of %d", limit, MaxHistoryLimit))
	}

	snapshots, err := db.ListSnapshots(database, cfg.PageID, limit)
	if err != nil {
		return nil, err
	}
	if snapshots == nil {
		snapshots = []db.Snapshot{}
	}

	return &HistoryOutput{PageID: cfg.PageID, Snapshots: snapshots}, nil
}

// ShowSnapshotInput contains parameters for the ShowSnapshot operation.
type ShowSnapshotInput struct {
	ID string
}

// ShowSnapshotOutput contains the result of the ShowSnapshot operation.
type ShowSnapshotOutput struct {
	Snapshot db.Snapshot `json:"snapshot"`
}

// ShowSnapshot retrieves one snapshot including its full page body.
func ShowSnapshot(_ context.Context, database *sql.DB, input ShowSnapshotInput) (*ShowSnapshotOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("snapshot id is required")
	}

	snapshot, err := db.GetSnapshot(database, id)
	if err != nil {
		return nil, err
	}
	return &ShowSnapshotOutput{Snapshot: *snapshot}, nil
}

// RestoreInput contains parameters for the Restore operation.
type RestoreInput struct {
	// ID of the snapshot whose body should replace the live page
	ID string
}

// RestoreOutput contains the result of the Restore operation.
type RestoreOutput struct {
	MutateOutput
	RestoredFrom string `json:"restored_from"`
}

// Restore overwrites the live page with a snapshot's body. The current body
// is snapshotted first, so a restore can itself be undone.
func Restore(ctx context.Context, gw Gateway, database *sql.DB, cfg *config.Config, input RestoreInput) (*RestoreOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("snapshot id is required")
	}

	snapshot, err := db.GetSnapshot(database, id)
	if err != nil {
		return nil, err
	}
	if snapshot.PageID != cfg.PageID {
		return nil, errors.NewInvalidRequest(
			fmt.Sprintf("snapshot %s belongs to page %d, not page %d", id, snapshot.PageID, cfg.PageID))
	}

	out, err := mutate(ctx, gw, database, cfg, "restore", func(string) (string, error) {
		return snapshot.Content, nil
	})
	if err != nil {
		return nil, err
	}

	return &RestoreOutput{
		MutateOutput: *out,
		RestoredFrom: snapshot.ID,
	}, nil
}
