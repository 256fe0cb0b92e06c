package scout

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hoodscout/hoodscout/internal/model"
	"github.com/hoodscout/hoodscout/pkg/reddit"
)

// defaultForum is the generic fallback when neither forums nor a city are
// available to scope the search.
const defaultForum = "AskReddit"

// postsPerQuery caps results per search query.
const postsPerQuery = 10

// truncateRunes cuts s to at most n runes, never splitting a multi-byte
// sequence.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// forumClause builds the OR-joined subreddit restriction for a search query.
func forumClause(forums []string) string {
	parts := make([]string, len(forums))
	for i, f := range forums {
		parts[i] = "subreddit:" + f
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// ScrapePosts fetches text posts for each query, restricted to the given
// forums. Forums are discovered from the city when not supplied. A failing
// query is logged and skipped; it never fails the batch.
func (e *Engine) ScrapePosts(ctx context.Context, queries []string, city string, forums []string) []model.Post {
	if len(forums) == 0 && city != "" {
		forums = e.DiscoverForums(ctx, city)
	}
	if len(forums) == 0 {
		forums = []string{defaultForum}
	}

	clause := forumClause(forums)

	var posts []model.Post
	for _, query := range queries {
		combined := fmt.Sprintf("%s %s", query, clause)

		results, err := e.reddit.SearchPosts(ctx, combined, reddit.WithLimit(postsPerQuery))
		if err != nil {
			zap.L().Warn("post search failed, skipping query",
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}

		kept := 0
		for _, r := range results {
			if r.Title == "" || r.SelfText == "" {
				continue
			}
			posts = append(posts, model.Post{
				Title:       r.Title,
				BodyExcerpt: truncateRunes(r.SelfText, model.MaxBodyExcerpt),
				SourceForum: r.Subreddit,
			})
			kept++
		}

		zap.L().Debug("post query complete",
			zap.String("query", query),
			zap.Int("results", len(results)),
			zap.Int("kept", kept),
		)
	}

	zap.L().Info("post retrieval complete",
		zap.Int("queries", len(queries)),
		zap.Int("forums", len(forums)),
		zap.Int("posts_scraped", len(posts)),
	)

	return posts
}
