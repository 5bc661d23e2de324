package db

import (
	"database/sql"
	"time"

	"github.com/hpungsan/linkboard/internal/errors"
	"github.com/hpungsan/linkboard/internal/markup"
)

// The cache tables mirror whatever the analyzer last derived from the page.
// They exist purely so list-style commands don't need a network round trip;
// the document text on the remote side stays the only source of truth, and
// every successful mutation replaces the cache wholesale.

// ReplaceCache swaps the cached model for a page in one transaction.
func ReplaceCache(database *sql.DB, pageID int, containers []markup.Container, categories []markup.Category, remoteUpdatedAt string) error {
	tx, err := database.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM containers_cache WHERE page_id = ?`, pageID); err != nil {
		return errors.NewInternal(err)
	}
	if _, err := tx.Exec(`DELETE FROM categories_cache WHERE page_id = ?`, pageID); err != nil {
		return errors.NewInternal(err)
	}

	for i, c := range containers {
		_, err := tx.Exec(
			`INSERT INTO containers_cache (page_id, key, name, columns, position) VALUES (?, ?, ?, ?, ?)`,
			pageID, c.Key, c.Name, c.Columns, i,
		)
		if err != nil {
			return errors.NewInternal(err)
		}
	}
	for i, c := range categories {
		_, err := tx.Exec(
			`INSERT INTO categories_cache (page_id, key, name, description, layout, accent, container_key, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			pageID, c.Key, c.Name, c.Description, string(c.Layout), c.Accent, c.ContainerKey, i,
		)
		if err != nil {
			return errors.NewInternal(err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO page_state (page_id, updated_at, refreshed_at) VALUES (?, ?, ?)
		 ON CONFLICT(page_id) DO UPDATE SET updated_at = excluded.updated_at, refreshed_at = excluded.refreshed_at`,
		pageID, remoteUpdatedAt, time.Now().Unix(),
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ListContainers returns the cached containers for a page in document order.
func ListContainers(database *sql.DB, pageID int) ([]markup.Container, error) {
	rows, err := database.Query(
		`SELECT key, name, columns FROM containers_cache WHERE page_id = ? ORDER BY position`, pageID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var containers []markup.Container
	for rows.Next() {
		var c markup.Container
		if err := rows.Scan(&c.Key, &c.Name, &c.Columns); err != nil {
			return nil, errors.NewInternal(err)
		}
		containers = append(containers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return containers, nil
}

// ListCategories returns the cached categories for a page in document order.
func ListCategories(database *sql.DB, pageID int) ([]markup.Category, error) {
	rows, err := database.Query(
		`SELECT key, name, description, layout, accent, container_key
		 FROM categories_cache WHERE page_id = ? ORDER BY position`, pageID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var categories []markup.Category
	for rows.Next() {
		var c markup.Category
		var layout string
		if err := rows.Scan(&c.Key, &c.Name, &c.Description, &layout, &c.Accent, &c.ContainerKey); err != nil {
			return nil, errors.NewInternal(err)
		}
		c.Layout = markup.Layout(layout)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return categories, nil
}

// GetPageState returns the remote updatedAt recorded at the last refresh,
// or ok=false when the page was never cached.
func GetPageState(database *sql.DB, pageID int) (updatedAt string, ok bool, err error) {
	row := database.QueryRow(`SELECT updated_at FROM page_state WHERE page_id = ?`, pageID)
	switch err := row.Scan(&updatedAt); err {
	case nil:
		return updatedAt, true, nil
	case sql.ErrNoRows:
		return "", false, nil
	default:
		return "", false, errors.NewInternal(err)
	}
}

// InvalidateCache drops the cached model and state for a page.
func InvalidateCache(database *sql.DB, pageID int) error {
	for _, q := range []string{
		`DELETE FROM containers_cache WHERE page_id = ?`,
		`DELETE FROM categories_cache WHERE page_id = ?`,
		`DELETE FROM page_state WHERE page_id = ?`,
	} {
		if _, err := database.Exec(q, pageID); err != nil {
			return errors.NewInternal(err)
		}
	}
	return nil
}
