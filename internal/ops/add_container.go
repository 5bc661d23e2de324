package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/errors"
	"github.com/hpungsan/linkboard/internal/markup"
)

// AddContainerInput contains parameters for the AddContainer operation.
type AddContainerInput struct {
	// Name is the display name; the key is derived from it unless Key is set
	Name string

	// Key overrides the derived key (optional)
	Key string

	// Columns is the rendering column count; default 2
	Columns int
}

// AddContainerOutput contains the result of the AddContainer operation.
type AddContainerOutput struct {
	MutateOutput
	Key string `json:"key"`
}

// AddContainer appends a new container block to the end of the board page.
func AddContainer(ctx context.Context, gw Gateway, database *sql.DB, cfg *config.Config, input AddContainerInput) (*AddContainerOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.NewInvalidRequest("name is required")
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

	columns := input.Columns
	if columns == 0 {
		columns = 2
	}

	out, err := mutate(ctx, gw, database, cfg, "add-container", func(doc string) (string, error) {
		return markup.AddContainer(doc, key, name, columns)
	})
	if err != nil {
		return nil, err
	}

	return &AddContainerOutput{MutateOutput: *out, Key: key}, nil
}
