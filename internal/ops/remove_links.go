package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/markup"
)

// RemoveLinksInput contains parameters for the RemoveLinks operation.
// The operation is page-wide by design; per-category clearing would need a
// category identity links don't have.
type RemoveLinksInput struct{}

// RemoveLinksOutput contains the result of the RemoveLinks operation.
type RemoveLinksOutput struct {
	MutateOutput
	Categories int  `json:"categories"`
	Changed    bool `json:"changed"`
}

// RemoveLinks strips the link list of every category on the page. Removal is
// best-effort per category; a category whose markers cannot be located is
// skipped rather than failing the whole page.
func RemoveLinks(ctx context.Context, gw Gateway, database *sql.DB, cfg *config.Config, _ RemoveLinksInput) (*RemoveLinksOutput, error) {
	var categories int
	var changed bool

	out, err := mutate(ctx, gw, database, cfg, "clear-links", func(doc string) (string, error) {
		categories = len(markup.NewAnalyzer(doc).Categories())
		stripped := markup.RemoveAllLinks(doc)
		changed = stripped != doc
		return stripped, nil
	})
	if err != nil {
		return nil, err
	}

	return &RemoveLinksOutput{
		MutateOutput: *out,
		Categories:   categories,
		Changed:      changed,
	}, nil
}
