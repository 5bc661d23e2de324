package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/errors"
	"github.com/hpungsan/linkboard/internal/markup"
)

// AddLinkInput contains parameters for the AddLink operation.
type AddLinkInput struct {
	// URL is the page address (required)
	URL string

	// Title is the page title; defaults to the URL's host when empty
	Title string

	// Category is the target category's key (required)
	Category string
}

// AddLinkOutput contains the result of the AddLink operation.
type AddLinkOutput struct {
	MutateOutput
	Category string `json:"category"`
	Host     string `json:"host"`
}

// AddLink saves a webpage as a link card in a category. The fragment is
// rendered with the category's own layout, never a caller-supplied one.
func AddLink(ctx context.Context, gw Gateway, database *sql.DB, cfg *config.Config, input AddLinkInput) (*AddLinkOutput, error) {
	rawURL := strings.TrimSpace(input.URL)
	if rawURL == "" {
		return nil, errors.NewInvalidRequest("url is required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, errors.NewInvalidRequest("category is required")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = markup.HostOf(rawURL)
	}
	if title == "" {
		title = rawURL
	}

	info := markup.PageInfo{URL: rawURL, Title: title}

	out, err := mutate(ctx, gw, database, cfg, "add-link", func(doc string) (string, error) {
		return markup.AddLink(doc, info, category)
	})
	if err != nil {
		return nil, err
	}

	return &AddLinkOutput{
		MutateOutput: *out,
		Category:     category,
		Host:         markup.HostOf(rawURL),
	}, nil
}
