package db

import (
	"crypto/rand"
	"database/sql"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/linkboard/internal/errors"
)

// Snapshot is a pre-edit copy of the page body, kept locally so a botched
// edit can be rolled back with restore.
type Snapshot struct {
	ID        string `json:"id"`
	PageID    int    `json:"page_id"`
	Operation string `json:"operation"`
	Content   string `json:"content,omitempty"`
	TakenAt   int64  `json:"taken_at"`
}

// InsertSnapshot stores the document as it was before an operation ran.
// Returns the generated snapshot ID.
func InsertSnapshot(database *sql.DB, pageID int, operation, content string) (string, error) {
	id, err := generateULID()
	if err != nil {
		return "", errors.NewInternal(err)
	}

	_, err = database.Exec(
		`INSERT INTO snapshots (id, page_id, operation, content, taken_at) VALUES (?, ?, ?, ?, ?)`,
		id, pageID, operation, content, time.Now().Unix(),
	)
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return id, nil
}

// ListSnapshots returns snapshot metadata for a page, newest first.
// Content is omitted; use GetSnapshot for the full body.
func ListSnapshots(database *sql.DB, pageID, limit int) ([]Snapshot, error) {
	rows, err := database.Query(
		`SELECT id, page_id, operation, taken_at FROM snapshots
		 WHERE page_id = ? ORDER BY taken_at DESC, id DESC LIMIT ?`,
		pageID, limit,
	)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.PageID, &s.Operation, &s.TakenAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return snapshots, nil
}

// GetSnapshot retrieves a full snapshot by ID.
func GetSnapshot(database *sql.DB, id string) (*Snapshot, error) {
	row := database.QueryRow(
		`SELECT id, page_id, operation, content, taken_at FROM snapshots WHERE id = ?`, id)

	var s Snapshot
	err := row.Scan(&s.ID, &s.PageID, &s.Operation, &s.Content, &s.TakenAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewInvalidRequest("snapshot not found: " + id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &s, nil
}

// PruneSnapshots keeps the newest keep snapshots per page and deletes the
// rest. Returns the number removed.
func PruneSnapshots(database *sql.DB, pageID, keep int) (int, error) {
	result, err := database.Exec(
		`DELETE FROM snapshots WHERE page_id = ? AND id NOT IN (
		   SELECT id FROM snapshots WHERE page_id = ?
		   ORDER BY taken_at DESC, id DESC LIMIT ?
		 )`,
		pageID, pageID, keep,
	)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(n), nil
}

// Shared monotonic entropy keeps IDs strictly increasing even for snapshots
// taken within the same millisecond, so taken_at/id ordering agrees with
// creation order.
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
