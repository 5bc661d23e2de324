package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/errors"
	"github.com/hpungsan/linkboard/internal/markup"
)

// AddCategoryInput contains parameters for the AddCategory operation.
type AddCategoryInput struct {
	// Name is the display name; the key is derived from it unless Key is set
	Name string

	// Key overrides the derived key (optional)
	Key string

	// Description is shown under the category title (optional)
	Description string

	// Container is the owning container's key (required)
	Container string

	// Layout is one of cards|compact|large; default cards
	Layout string

	// Accent is the color name embedded in the wrapper class; normalized to
	// lowercase-with-hyphens, default "blue"
	Accent string

	// Column is advisory and not enforced structurally (optional)
	Column int
}

// AddCategoryOutput contains the result of the AddCategory operation.
type AddCategoryOutput struct {
	MutateOutput
	Key    string `json:"key"`
	Layout string `json:"layout"`
}

// AddCategory inserts a new category block at the end of its container's
// content region.
func AddCategory(ctx context.Context, gw Gateway, database *sql.DB, cfg *config.Config, input AddCategoryInput) (*AddCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.NewInvalidRequest("name is required")
	}
	container := strings.TrimSpace(input.Container)
	if container == "" {
		return nil, errors.NewInvalidRequest("container is required")
	}

	key := input.Key
	if key == "" {
		key = markup.MakeKey(name)
	} else if key != markup.MakeKey(key) {
		return nil, errors.NewInvalidRequest("key must be lowercase alphanumeric with underscores")
	}
	if key == "" {
		return nil, errors.NewInvalidRequest("name yields an empty key; provide one explicitly")
	}

	// Free-form color names are slugged to the charset the section class can
	// carry round trip; "Bright Blue" becomes "bright-blue".
	accent := markup.MakeAccent(input.Accent)
	if accent == "" {
		accent = "blue"
	}

	cat := markup.Category{
		Key:          key,
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		Layout:       markup.ParseLayout(input.Layout),
		Accent:       accent,
		ContainerKey: container,
		Column:       input.Column,
	}

	out, err := mutate(ctx, gw, database, cfg, "add-category", func(doc string) (string, error) {
		return markup.AddCategory(doc, cat)
	})
	if err != nil {
		return nil, err
	}

	return &AddCategoryOutput{
		MutateOutput: *out,
		Key:          key,
		Layout:       string(cat.Layout),
	}, nil
}
