package model

// LibrarySource is an entry in the caller-visible source registry.
type LibrarySource struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// SourceUsed is a source that at least one observation actually cited.
// Ids that resolve to no registry entry are omitted, never fabricated.
type SourceUsed struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}
