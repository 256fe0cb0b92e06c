package scout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hoodscout/hoodscout/internal/model"
	"github.com/hoodscout/hoodscout/pkg/anthropic"
)

const relevanceSystemPrompt = `You judge whether forum posts are relevant to a person's housing preferences. Respond with a JSON array only, one entry per post: [{"post_index": <1-based index>, "is_relevant": <bool>, "reason": "<short reason>"}]`

// FilterRelevant keeps posts a language model judges relevant to the
// preferences. The call is fail-open: if the model response cannot be
// parsed, the input is returned unchanged rather than losing all posts.
func (e *Engine) FilterRelevant(ctx context.Context, posts []model.Post, preferences string) []model.Post {
	if len(posts) == 0 {
		return posts
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Preferences: %s\n\nPosts:\n", preferences)
	for i, p := range posts {
		fmt.Fprintf(&sb, "%d. %s\n%s\n\n", i+1, p.Title, p.BodyExcerpt)
	}

	temp := 0.0
	resp, err := e.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   1024,
		System:      relevanceSystemPrompt,
		Messages:    []anthropic.Message{{Role: "user", Content: sb.String()}},
		Temperature: &temp,
	})
	if err != nil {
		zap.L().Warn("relevance filter call failed, keeping all posts",
			zap.Int("posts", len(posts)),
			zap.Error(err),
		)
		return posts
	}
	resp.Usage.LogCost(e.model, "relevance_filter")

	var verdicts []model.RelevanceVerdict
	if err := json.Unmarshal([]byte(cleanJSONArray(extractText(resp))), &verdicts); err != nil {
		zap.L().Warn("relevance filter response unparsable, keeping all posts",
			zap.Int("posts", len(posts)),
			zap.Error(err),
		)
		return posts
	}

	relevant := make(map[int]bool, len(verdicts))
	for _, v := range verdicts {
		if v.IsRelevant {
			relevant[v.PostIndex] = true
		}
	}

	// A post with no verdict entry is treated as not relevant.
	var kept []model.Post
	for i, p := range posts {
		if relevant[i+1] {
			kept = append(kept, p)
		}
	}

	zap.L().Info("relevance filter complete",
		zap.Int("posts_in", len(posts)),
		zap.Int("posts_kept", len(kept)),
	)

	return kept
}
