package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/db"
	"github.com/hpungsan/linkboard/internal/errors"
	"github.com/hpungsan/linkboard/internal/markup"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	// Refresh forces a pull from the wiki even when a cache exists
	Refresh bool
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	PageID     int                `json:"page_id"`
	Containers []markup.Container `json:"containers"`
	Categories []markup.Category  `json:"categories"`

	// FromCache is false when this call had to pull the page
	FromCache bool `json:"from_cache"`
}

// List returns the board model. It serves from the local cache when one
// exists and transparently falls back to a refresh when it doesn't — the
// cache is a convenience, never a requirement.
func List(ctx context.Context, gw Gateway, database *sql.DB, cfg *config.Config, input ListInput) (*ListOutput, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	fromCache := !input.Refresh
	if fromCache {
		if _, ok, err := db.GetPageState(database, cfg.PageID); err != nil {
			return nil, err
		} else if !ok {
			fromCache = false
		}
	}

	if !fromCache {
		if _, err := Refresh(ctx, gw, database, cfg, RefreshInput{}); err != nil {
			return nil, err
		}
	}

	containers, err := db.ListContainers(database, cfg.PageID)
	if err != nil {
		return nil, err
	}
	categories, err := db.ListCategories(database, cfg.PageID)
	if err != nil {
		return nil, err
	}

	if containers == nil {
		containers = []markup.Container{}
	}
	if categories == nil {
		categories = []markup.Category{}
	}

	return &ListOutput{
		PageID:     cfg.PageID,
		Containers: containers,
		Categories: categories,
		FromCache:  fromCache,
	}, nil
}
