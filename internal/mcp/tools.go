package mcp

import "github.com/Aman-CERP/docrank/internal/search"

// Tool names.
const (
	ToolSearchDocs  = "search_docs"
	ToolIndexStatus = "index_status"
)

// SearchDocsInput defines the input schema for the search_docs tool.
type SearchDocsInput struct {
	Query string   `json:"query" jsonschema:"the documentation search query"`
	Limit int      `json:"limit,omitempty" jsonschema:"maximum number of results, default 5"`
	Scope []string `json:"scope,omitempty" jsonschema:"restrict to files under these path prefixes (OR logic)"`
}

// SearchDocsOutput defines the output schema for the search_docs tool.
type SearchDocsOutput struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results" jsonschema:"ranked chunks, best first"`
}

// IndexStatusInput defines the input schema for the index_status tool.
type IndexStatusInput struct{}

// IndexStatusOutput defines the output schema for the index_status tool.
type IndexStatusOutput struct {
	Path      string `json:"path" jsonschema:"index file path"`
	Exists    bool   `json:"exists" jsonschema:"false until 'docrank index' has run"`
	Format    string `json:"format,omitempty" jsonschema:"csv or sqlite"`
	Chunks    int    `json:"chunks"`
	Files     int    `json:"files"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	Modified  string `json:"modified,omitempty" jsonschema:"RFC 3339 modification time"`
}

// toolInfo describes a registered tool.
type toolInfo struct {
	Name        string
	Description string
}

var tools = []toolInfo{
	{
		Name: ToolSearchDocs,
		Description: "Keyword search over the project's markdown documentation (rules, workflows, skills, docs). " +
			"Returns the best-matching sections ranked by BM25 with a content preview and the section header.",
	},
	{
		Name:        ToolIndexStatus,
		Description: "Report whether the documentation index exists and how many chunks and files it holds.",
	},
}
