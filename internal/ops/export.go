package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/errors"
	"github.com/hpungsan/linkboard/internal/markup"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	// IncludeContent embeds the raw page body alongside the derived model
	IncludeContent bool
}

// ExportOutput is a self-contained dump of the board: the derived model plus
// page identity, suitable for backups or feeding other tooling.
type ExportOutput struct {
	PageID     int                `json:"page_id"`
	Path       string             `json:"path"`
	Title      string             `json:"title"`
	UpdatedAt  string             `json:"updated_at"`
	Containers []markup.Container `json:"containers"`
	Categories []markup.Category  `json:"categories"`
	Content    string             `json:"content,omitempty"`
}

// Export pulls the page and returns the complete derived model. It always
// reads the live document — an export reflecting a stale cache would defeat
// its purpose. The cache is refreshed as a side effect.
func Export(ctx context.Context, gw Gateway, database *sql.DB, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	page, err := gw.GetPage(ctx, cfg.PageID)
	if err != nil {
		return nil, err
	}

	rebuildCache(database, cfg.PageID, page.Content, page.UpdatedAt)

	analyzer := markup.NewAnalyzer(page.Content)
	out := &ExportOutput{
		PageID:     page.ID,
		Path:       page.Path,
		Title:      page.Title,
		UpdatedAt:  page.UpdatedAt,
		Containers: analyzer.Containers(),
		Categories: analyzer.Categories(),
	}
	if input.IncludeContent {
		out.Content = page.Content
	}
	return out, nil
}
