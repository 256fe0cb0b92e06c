package model

// MaxBodyExcerpt is the body truncation length applied at scrape time.
const MaxBodyExcerpt = 300

// Post is a scraped forum post, immutable once fetched. BodyExcerpt is
// already truncated to MaxBodyExcerpt characters.
type Post struct {
	Title       string `json:"title"`
	BodyExcerpt string `json:"body_excerpt"`
	SourceForum string `json:"source_forum"`
}

// RelevanceVerdict is the per-post verdict produced by the relevance filter.
// PostIndex is 1-based, matching the numbering used in the prompt.
type RelevanceVerdict struct {
	PostIndex  int    `json:"post_index"`
	IsRelevant bool   `json:"is_relevant"`
	Reason     string `json:"reason"`
}
