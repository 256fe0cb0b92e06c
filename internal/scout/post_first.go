package scout

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/hoodscout/hoodscout/internal/model"
	"github.com/hoodscout/hoodscout/pkg/anthropic"
)

const postNeighborhoodsSystemPrompt = `You name city neighborhoods that match a person's housing preferences, using only the community forum posts provided as evidence. Respond with a JSON object only: {"neighborhoods": [{"name": "<neighborhood>", "reasons": ["<reason>", ...]}, ...]} (up to 5).`

// postFirstStrategy derives neighborhoods directly from filtered post text.
// Selected when preference extraction produced no structured amenities.
type postFirstStrategy struct {
	*Engine
}

func (s *postFirstStrategy) name() string { return "post_first" }

// postNeighborhood is one model-named candidate.
type postNeighborhood struct {
	Name    string   `json:"name"`
	Reasons []string `json:"reasons"`
}

func (s *postFirstStrategy) recommend(ctx context.Context, in strategyInput) (*model.Recommendation, error) {
	// City coordinates are display-only on this path; failure degrades to
	// zero coordinates rather than aborting the request.
	var cityCoords model.Coordinates
	if center, err := s.maps.Geocode(ctx, in.city); err != nil {
		zap.L().Warn("city geocode failed, map data will be empty",
			zap.String("city", in.city),
			zap.Error(err),
		)
	} else {
		cityCoords = model.Coordinates{Lat: center.Lat, Lng: center.Lng}
	}

	// Without posts there is nothing to derive neighborhoods from; retry
	// with neighborhood-focused search queries before giving up.
	if len(in.posts) == 0 {
		queries := s.ExtractSearchQueries(ctx, in.preferences, in.city)
		scraped := s.ScrapePosts(ctx, queries, in.city, nil)
		in.scrapedCount += len(scraped)
		in.posts = s.FilterRelevant(ctx, scraped, in.preferences)
	}

	candidates := s.neighborhoodsFromPosts(ctx, in)

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}

	qualScores := s.QualitativeScores(ctx, names, in.preferences, in.posts)
	concerns := s.GenerateConcerns(ctx, names, in.preferences, in.posts)

	ranked := make([]model.RankedNeighborhood, 0, len(candidates))
	for _, c := range candidates {
		reasons := c.Reasons
		if len(reasons) == 0 {
			reasons = []string{"mentioned favorably in community posts"}
		}
		entry := model.RankedNeighborhood{
			Neighborhood:     c.Name,
			MatchReasons:     reasons,
			AmenityBreakdown: map[model.AmenityType]int{},
		}
		if con := concerns[c.Name]; len(con) > 0 {
			entry.Concerns = con
		} else {
			entry.Concerns = fallbackConcerns(model.NewNeighborhoodAggregate(c.Name), 0, in.scrapedCount)
		}
		if score, ok := qualScores[c.Name]; ok {
			entry.QualitativeScore = &score
		}
		ranked = append(ranked, entry)
	}

	if len(ranked) == 0 {
		ranked = append(ranked, syntheticEntry(in.scrapedCount))
	}

	return &model.Recommendation{
		City:            in.city,
		UserPreferences: in.preferences,
		Recommendations: model.RecommendationList{
			Recommendations: ranked,
			Summary:         fmt.Sprintf("Named %d neighborhoods in %s from community feedback", len(ranked), in.city),
		},
		MapData: model.MapData{
			CityCoordinates:       cityCoords,
			Amenities:             map[model.AmenityType][]model.Place{},
			NeighborhoodAmenities: map[string]map[model.AmenityType][]model.Place{},
		},
	}, nil
}

// neighborhoodsFromPosts asks the model to name neighborhoods from filtered
// post text. Fail-open: errors or unparsable responses yield no candidates,
// which the caller turns into the synthetic fallback entry.
func (s *postFirstStrategy) neighborhoodsFromPosts(ctx context.Context, in strategyInput) []postNeighborhood {
	if len(in.posts) == 0 {
		return nil
	}

	prompt := fmt.Sprintf("City: %s\nPreferences: %s\n\nCommunity posts:\n%s",
		in.city, in.preferences, postsContext(in.posts))

	temp := 0.3
	resp, err := s.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       s.model,
		MaxTokens:   1024,
		System:      postNeighborhoodsSystemPrompt,
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
	})
	if err != nil {
		zap.L().Warn("post-derived neighborhood extraction failed", zap.Error(err))
		return nil
	}
	resp.Usage.LogCost(s.model, "post_neighborhoods")

	var result struct {
		Neighborhoods []postNeighborhood `json:"neighborhoods"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(extractText(resp))), &result); err != nil {
		zap.L().Warn("post-derived neighborhood response unparsable")
		return nil
	}

	var candidates []postNeighborhood
	for _, c := range result.Neighborhoods {
		if c.Name == "" {
			continue
		}
		candidates = append(candidates, c)
		if len(candidates) == s.cfg.MaxRecommendations {
			break
		}
	}
	return candidates
}
