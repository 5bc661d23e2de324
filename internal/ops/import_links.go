package ops

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/errors"
	"github.com/hpungsan/linkboard/internal/markup"
)

// ImportLinksInput contains parameters for the ImportLinks operation.
type ImportLinksInput struct {
	// Path is a local Markdown file containing the links to import
	Path string

	// Category is the target category's key (required)
	Category string
}

// ImportLinksOutput contains the result of the ImportLinks operation.
type ImportLinksOutput struct {
	MutateOutput
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// importedLink is one link recovered from the Markdown source.
type importedLink struct {
	url   string
	title string
}

// ImportLinks bulk-appends every link found in a Markdown file (a bookmarks
// export, a reading list) into one category, with a single page write for
// the whole batch. Links without a usable URL scheme are skipped and counted.
func ImportLinks(ctx context.Context, gw Gateway, database *sql.DB, cfg *config.Config, input ImportLinksInput) (*ImportLinksOutput, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, errors.NewInvalidRequest("category is required")
	}
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	source, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("cannot read %s: %v", input.Path, err))
	}

	links, skipped := collectLinks(source)
	if len(links) == 0 {
		return nil, errors.NewInvalidRequest("no links found in " + input.Path)
	}
	if len(links) > MaxImportLinks {
		return nil, errors.NewInvalidRequest(
			fmt.Sprintf("file contains %d links (max %d per import)", len(links), MaxImportLinks))
	}

	out, err := mutate(ctx, gw, database, cfg, "import-links", func(doc string) (string, error) {
		for _, link := range links {
			var err error
			doc, err = markup.AddLink(doc, markup.PageInfo{URL: link.url, Title: link.title}, category)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportLinksOutput{
		MutateOutput: *out,
		Imported:     len(links),
		Skipped:      skipped,
	}, nil
}

// collectLinks walks the Markdown AST and gathers inline links and autolinks
// in document order. Fragment-only and relative destinations are skipped;
// the board only holds absolute web links.
func collectLinks(source []byte) (links []importedLink, skipped int) {
	parser := goldmark.New().Parser()
	root := parser.Parse(text.NewReader(source))

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			dest := string(node.Destination)
			if !isWebLink(dest) {
				skipped++
				return ast.WalkContinue, nil
			}
			title := nodeText(node, source)
			if title == "" {
				title = markup.HostOf(dest)
			}
			links = append(links, importedLink{url: dest, title: title})
			// Children are the link text; already consumed.
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			dest := string(node.URL(source))
			if !isWebLink(dest) {
				skipped++
				return ast.WalkContinue, nil
			}
			links = append(links, importedLink{url: dest, title: markup.HostOf(dest)})
		}
		return ast.WalkContinue, nil
	})
	return links, skipped
}

// isWebLink reports whether dest is an absolute http(s) URL.
func isWebLink(dest string) bool {
	return strings.HasPrefix(dest, "http://") || strings.HasPrefix(dest, "https://")
}

// nodeText flattens the visible text of an inline node.
func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			continue
		}
		buf.WriteString(nodeText(c, source))
	}
	return strings.TrimSpace(buf.String())
}
