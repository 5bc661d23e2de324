package wikijs

import (
	"context"
	"encoding/json"

	"github.com/hpungsan/linkboard/internal/errors"
)

// getPageQuery fetches a single page with the full metadata set needed to
// write it back unchanged.
const getPageQuery = `query GetPage($id: Int!) {
  pages {
    single(id: $id) {
      id
      path
      title
      editor
      content
      description
      isPrivate
      isPublished
      locale
      tags { id tag title }
      createdAt
      updatedAt
    }
  }
}`

// updatePageMutation replaces the page. wiki.js has no partial patch; the
// entire metadata set travels with every content update.
const updatePageMutation = `mutation UpdatePage($id: Int!, $content: String!, $title: String!, $isPublished: Boolean!, $isPrivate: Boolean!, $locale: String!, $path: String!, $tags: [String]!) {
  pages {
    update(id: $id, content: $content, title: $title, isPublished: $isPublished, isPrivate: $isPrivate, locale: $locale, path: $path, tags: $tags) {
      responseResult { succeeded errorCode message }
      page { id updatedAt }
    }
  }
}`

// Tag is a wiki.js page tag. The API has returned both plain strings and
// objects over time, so it unmarshals from either shape.
type Tag struct {
	ID    int    `json:"id,omitempty"`
	Tag   string `json:"tag"`
	Title string `json:"title,omitempty"`
}

// UnmarshalJSON accepts both `"golang"` and `{"id":1,"tag":"golang"}`.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Tag = s
		return nil
	}
	type alias Tag
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = Tag(a)
	return nil
}

// Page mirrors the wiki.js page payload.
type Page struct {
	ID          int    `json:"id"`
	Path        string `json:"path"`
	Title       string `json:"title"`
	Editor      string `json:"editor"`
	Content     string `json:"content"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"isPrivate"`
	IsPublished bool   `json:"isPublished"`
	Locale      string `json:"locale"`
	Tags        []Tag  `json:"tags"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// TagNames flattens the tag list to plain strings. Sending objects back on
// update corrupts the remote tag list, so updates always use this form.
func (p *Page) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t.Tag != "" {
			names = append(names, t.Tag)
		}
	}
	return names
}

// UpdateResult carries what the remote reports after a successful update.
type UpdateResult struct {
	ID        int    `json:"id"`
	UpdatedAt string `json:"updatedAt"`
}

// GetPage fetches a page by id. A null payload means the page does not exist.
func (c *Client) GetPage(ctx context.Context, id int) (*Page, error) {
	var resp struct {
		Pages struct {
			Single *Page `json:"single"`
		} `json:"pages"`
	}
	if err := c.Do(ctx, getPageQuery, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.Pages.Single == nil {
		return nil, errors.NewPageNotFound(id)
	}
	return resp.Pages.Single, nil
}

// UpdatePage persists newContent as the page's body, re-sending every piece
// of metadata from the loaded page so nothing else changes remotely.
func (c *Client) UpdatePage(ctx context.Context, page *Page, newContent string) (*UpdateResult, error) {
	variables := map[string]any{
		"id":          page.ID,
		"content":     newContent,
		"title":       page.Title,
		"isPublished": page.IsPublished,
		"isPrivate":   page.IsPrivate,
		"locale":      page.Locale,
		"path":        page.Path,
		"tags":        page.TagNames(),
	}

	var resp struct {
		Pages struct {
			Update struct {
				ResponseResult struct {
					Succeeded bool   `json:"succeeded"`
					ErrorCode int    `json:"errorCode"`
					Message   string `json:"message"`
				} `json:"responseResult"`
				Page *UpdateResult `json:"page"`
			} `json:"update"`
		} `json:"pages"`
	}
	if err := c.Do(ctx, updatePageMutation, variables, &resp); err != nil {
		return nil, err
	}

	rr := resp.Pages.Update.ResponseResult
	if !rr.Succeeded {
		return nil, errors.NewUpdateRejected(rr.ErrorCode, rr.Message)
	}

	result := resp.Pages.Update.Page
	if result == nil {
		result = &UpdateResult{ID: page.ID}
	}
	return result, nil
}
