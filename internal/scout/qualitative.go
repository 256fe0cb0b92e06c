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

const qualitativeScoreSystemPrompt = `You rate how well neighborhoods match a person's housing preferences, grounded in community forum posts. Respond with a JSON object only, mapping neighborhood name to a score between 0.0 and 1.0: {"<neighborhood>": <score>, ...}`

const concernsSystemPrompt = `You list potential concerns about neighborhoods for a person with given housing preferences, grounded in community forum posts. Respond with a JSON object only, mapping neighborhood name to a short list of concern strings: {"<neighborhood>": ["<concern>", ...], ...}`

// lowAmenityThreshold triggers the "limited amenities" fallback concern.
const lowAmenityThreshold = 5

// postsContext renders filtered posts as prompt grounding.
func postsContext(posts []model.Post) string {
	if len(posts) == 0 {
		return "No community posts available."
	}
	var sb strings.Builder
	for _, p := range posts {
		fmt.Fprintf(&sb, "- [%s] %s: %s\n", p.SourceForum, p.Title, p.BodyExcerpt)
	}
	return sb.String()
}

// qualitativePrompt builds the shared user prompt for both qualitative calls.
func qualitativePrompt(neighborhoods []string, preferences string, posts []model.Post) string {
	return fmt.Sprintf("Preferences: %s\n\nNeighborhoods: %s\n\nCommunity posts:\n%s",
		preferences, strings.Join(neighborhoods, ", "), postsContext(posts))
}

// QualitativeScores asks the model for a [0,1] match score per neighborhood.
// Fail-open: an unparsable response yields an empty map. Scores outside
// [0,1] are clamped.
func (e *Engine) QualitativeScores(ctx context.Context, neighborhoods []string, preferences string, posts []model.Post) map[string]float64 {
	if len(neighborhoods) == 0 {
		return nil
	}

	temp := 0.2
	resp, err := e.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   512,
		System:      qualitativeScoreSystemPrompt,
		Messages:    []anthropic.Message{{Role: "user", Content: qualitativePrompt(neighborhoods, preferences, posts)}},
		Temperature: &temp,
	})
	if err != nil {
		zap.L().Warn("qualitative scoring failed", zap.Error(err))
		return nil
	}
	resp.Usage.LogCost(e.model, "qualitative_scores")

	var scores map[string]float64
	if err := json.Unmarshal([]byte(cleanJSON(extractText(resp))), &scores); err != nil {
		zap.L().Warn("qualitative score response unparsable")
		return nil
	}

	for name, s := range scores {
		if s < 0 {
			scores[name] = 0
		} else if s > 1 {
			scores[name] = 1
		}
	}
	return scores
}

// GenerateConcerns asks the model for per-neighborhood concerns. Fail-open:
// an unparsable response yields an empty map; deterministic fallbacks are
// applied per neighborhood by fallbackConcerns.
func (e *Engine) GenerateConcerns(ctx context.Context, neighborhoods []string, preferences string, posts []model.Post) map[string][]string {
	if len(neighborhoods) == 0 {
		return nil
	}

	temp := 0.2
	resp, err := e.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   1024,
		System:      concernsSystemPrompt,
		Messages:    []anthropic.Message{{Role: "user", Content: qualitativePrompt(neighborhoods, preferences, posts)}},
		Temperature: &temp,
	})
	if err != nil {
		zap.L().Warn("concern generation failed", zap.Error(err))
		return nil
	}
	resp.Usage.LogCost(e.model, "concerns")

	var concerns map[string][]string
	if err := json.Unmarshal([]byte(cleanJSON(extractText(resp))), &concerns); err != nil {
		zap.L().Warn("concern response unparsable")
		return nil
	}
	return concerns
}

// fallbackConcerns produces deterministic concerns when the model supplied
// none for a neighborhood. Every neighborhood ends up with at least one
// concern string.
func fallbackConcerns(agg *model.NeighborhoodAggregate, requestedTypes, scrapedCount int) []string {
	var concerns []string
	if agg.TotalAmenities() < lowAmenityThreshold {
		concerns = append(concerns, "limited amenities in the area")
	}
	if agg.AmenityTypeCount() < requestedTypes {
		concerns = append(concerns, "some requested amenity types are missing")
	}
	if scrapedCount == 0 {
		concerns = append(concerns, "limited community feedback available")
	}
	if len(concerns) == 0 {
		concerns = append(concerns, "verify fit with an in-person visit")
	}
	return concerns
}
