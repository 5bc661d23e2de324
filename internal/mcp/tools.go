package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Descriptions are what an MCP client shows its model, so
// they spell out defaults and the exact accepted values.

var addContainerToolDef = mcp.NewTool("board_add_container",
	mcp.WithDescription("Add a top-level container (a column group) to the link board page."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Display name. The container key is derived from it unless key is set."),
	),
	mcp.WithString("key",
		mcp.Description("Explicit key (lowercase alphanumeric with underscores)."),
	),
	mcp.WithNumber("columns",
		mcp.Description("Column count 1-4. Default 2."),
	),
)

var addCategoryToolDef = mcp.NewTool("board_add_category",
	mcp.WithDescription("Add a category (a titled section for links) inside an existing container."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Display name. The category key is derived from it unless key is set."),
	),
	mcp.WithString("key",
		mcp.Description("Explicit key (lowercase alphanumeric with underscores)."),
	),
	mcp.WithString("container",
		mcp.Required(),
		mcp.Description("Key of the container that should hold this category."),
	),
	mcp.WithString("description",
		mcp.Description("Short text shown under the category title."),
	),
	mcp.WithString("layout",
		mcp.Description("Rendering style: cards, compact, or large. Default cards."),
	),
	mcp.WithString("accent",
		mcp.Description("Accent color name embedded in the section's CSS class. Default blue."),
	),
	mcp.WithNumber("column",
		mcp.Description("Advisory column hint within the container."),
	),
)

var saveLinkToolDef = mcp.NewTool("board_save_link",
	mcp.WithDescription("Save a webpage as a link card in a category on the board."),
	mcp.WithString("url",
		mcp.Required(),
		mcp.Description("Absolute URL of the page to save."),
	),
	mcp.WithString("title",
		mcp.Description("Display title. Defaults to the URL's host."),
	),
	mcp.WithString("category",
		mcp.Required(),
		mcp.Description("Key of the category to save into."),
	),
)

var clearLinksToolDef = mcp.NewTool("board_clear_links",
	mcp.WithDescription("Remove every link from every category on the board. Containers and categories stay."),
)

var listToolDef = mcp.NewTool("board_list",
	mcp.WithDescription("List the board's containers and categories from the local cache."),
	mcp.WithBoolean("refresh",
		mcp.Description("Force a pull from the wiki instead of serving the cache."),
	),
)

var refreshToolDef = mcp.NewTool("board_refresh",
	mcp.WithDescription("Pull the board page from the wiki and rebuild the local cache."),
)

var exportToolDef = mcp.NewTool("board_export",
	mcp.WithDescription("Export the full board model, optionally with the raw page body."),
	mcp.WithBoolean("include_content",
		mcp.Description("Include the raw HTML page body in the export."),
	),
)
