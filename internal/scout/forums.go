package scout

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hoodscout/hoodscout/pkg/reddit"
)

// minForumSubscribers is the popularity floor for a discovered forum.
const minForumSubscribers = 100

// forumDescriptionVocab marks a forum description as on-topic for housing
// and neighborhood discussion.
var forumDescriptionVocab = []string{"neighborhood", "live", "ask"}

// cityToken lowercases a city name and strips spaces, matching subreddit
// naming conventions.
func cityToken(city string) string {
	return strings.ToLower(strings.ReplaceAll(city, " ", ""))
}

// fallbackForums is the deterministic forum list used when discovery finds
// no matches.
func fallbackForums(city string) []string {
	token := cityToken(city)
	return []string{
		token,
		token + "housing",
		"Ask" + strings.ReplaceAll(city, " ", ""),
		token + "neighborhoods",
	}
}

// ultimateFallbackForums is the shorter list used when the search provider
// itself fails.
func ultimateFallbackForums(city string) []string {
	return []string{
		cityToken(city),
		"Ask" + strings.ReplaceAll(city, " ", ""),
	}
}

// relevantForum applies the discovery predicate: popular enough, not adult,
// and either named after the city or described in housing terms.
func relevantForum(sub reddit.Subreddit, token string) bool {
	if sub.Subscribers <= minForumSubscribers || sub.Over18 {
		return false
	}
	if strings.Contains(strings.ToLower(sub.DisplayName), token) {
		return true
	}
	desc := strings.ToLower(sub.PublicDescription)
	for _, word := range forumDescriptionVocab {
		if strings.Contains(desc, word) {
			return true
		}
	}
	return false
}

// DiscoverForums finds discussion forums relevant to a city. Discovery never
// fails: provider errors degrade to a deterministic fallback list.
func (e *Engine) DiscoverForums(ctx context.Context, city string) []string {
	subs, err := e.reddit.SearchSubreddits(ctx, city, reddit.WithLimit(10))
	if err != nil {
		zap.L().Warn("forum discovery failed, using fallback forums",
			zap.String("city", city),
			zap.Error(err),
		)
		return ultimateFallbackForums(city)
	}

	token := cityToken(city)
	var forums []string
	for _, sub := range subs {
		if relevantForum(sub, token) {
			forums = append(forums, sub.DisplayName)
		}
	}

	if len(forums) == 0 {
		zap.L().Debug("no relevant forums discovered, using name-pattern fallback",
			zap.String("city", city),
			zap.Int("candidates", len(subs)),
		)
		return fallbackForums(city)
	}

	return forums
}
