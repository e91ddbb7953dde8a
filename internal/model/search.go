package model

// SearchResult is a single entry returned by the search provider.
// URL and Snippet may be empty depending on the provider's answer.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// SearchResponse is the shape served on /search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}
