package scout

import (
	"context"
	"fmt"

	"github.com/hoodscout/hoodscout/internal/model"
)

// amenityFirstStrategy ranks neighborhoods by located amenity density.
// Selected when preference extraction produced structured amenities.
type amenityFirstStrategy struct {
	*Engine
}

func (s *amenityFirstStrategy) name() string { return "amenity_first" }

func (s *amenityFirstStrategy) recommend(ctx context.Context, in strategyInput) (*model.Recommendation, error) {
	outcome, err := s.ScoreNeighborhoods(ctx, in.city, in.amenities)
	if err != nil {
		return nil, err
	}

	top := outcome.Ranked
	if len(top) > s.cfg.MaxRecommendations {
		top = top[:s.cfg.MaxRecommendations]
	}

	names := make([]string, len(top))
	for i, agg := range top {
		names[i] = agg.Name
	}

	qualScores := s.QualitativeScores(ctx, names, in.preferences, in.posts)
	concerns := s.GenerateConcerns(ctx, names, in.preferences, in.posts)

	ranked := make([]model.RankedNeighborhood, 0, len(top))
	for _, agg := range top {
		entry := model.RankedNeighborhood{
			Neighborhood:     agg.Name,
			MatchReasons:     matchReasons(agg, len(in.posts)),
			AmenityBreakdown: copyCounts(agg.AmenityCounts),
		}
		if c := concerns[agg.Name]; len(c) > 0 {
			entry.Concerns = c
		} else {
			entry.Concerns = fallbackConcerns(agg, len(in.amenities), in.scrapedCount)
		}
		if score, ok := qualScores[agg.Name]; ok {
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
			Summary:         fmt.Sprintf("Ranked %d neighborhoods in %s by amenity density", len(ranked), in.city),
		},
		MapData: s.buildMapData(outcome, top),
	}, nil
}

// matchReasons synthesizes deterministic reasons from amenity counts and
// post availability.
func matchReasons(agg *model.NeighborhoodAggregate, postCount int) []string {
	reasons := []string{
		fmt.Sprintf("%d matching amenities nearby", agg.TotalAmenities()),
	}
	if types := agg.AmenityTypeCount(); types > 1 {
		reasons = append(reasons, fmt.Sprintf("%d amenity types represented", types))
	}
	if postCount > 0 {
		reasons = append(reasons, "community discussion available")
	}
	return reasons
}

func copyCounts(counts map[model.AmenityType]int) map[model.AmenityType]int {
	out := make(map[model.AmenityType]int, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}
