package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/db"
	"github.com/hpungsan/linkboard/internal/errors"
	"github.com/hpungsan/linkboard/internal/markup"
)

// RefreshInput contains parameters for the Refresh operation.
type RefreshInput struct{}

// RefreshOutput contains the result of the Refresh operation.
type RefreshOutput struct {
	PageID     int    `json:"page_id"`
	Containers int    `json:"containers"`
	Categories int    `json:"categories"`
	UpdatedAt  string `json:"updated_at"`
}

// Refresh pulls the page and rebuilds the local cache from it. This is the
// only way cache entries come into existence; nothing ever patches them
// incrementally.
func Refresh(ctx context.Context, gw Gateway, database *sql.DB, cfg *config.Config, _ RefreshInput) (*RefreshOutput, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	page, err := gw.GetPage(ctx, cfg.PageID)
	if err != nil {
		return nil, err
	}

	analyzer := markup.NewAnalyzer(page.Content)
	containers := analyzer.Containers()
	categories := analyzer.Categories()

	if err := db.ReplaceCache(database, cfg.PageID, containers, categories, page.UpdatedAt); err != nil {
		return nil, err
	}

	return &RefreshOutput{
		PageID:     cfg.PageID,
		Containers: len(containers),
		Categories: len(categories),
		UpdatedAt:  page.UpdatedAt,
	}, nil
}
