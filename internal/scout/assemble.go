package scout

import (
	"github.com/hoodscout/hoodscout/internal/model"
)

// neighborhoodAmenityCap limits per-neighborhood amenity listings in the
// map payload.
const neighborhoodAmenityCap = 5

// syntheticNeighborhood is the never-empty placeholder entry.
const syntheticNeighborhood = "Downtown"

// syntheticEntry produces the placeholder recommendation used when no
// neighborhood could be derived from amenities or posts. The response is
// never empty by design of the caller.
func syntheticEntry(scrapedCount int) model.RankedNeighborhood {
	return model.RankedNeighborhood{
		Neighborhood:     syntheticNeighborhood,
		MatchReasons:     []string{"central area, a reasonable starting point"},
		Concerns:         fallbackConcerns(model.NewNeighborhoodAggregate(syntheticNeighborhood), 0, scrapedCount),
		AmenityBreakdown: map[model.AmenityType]int{},
	}
}

// buildMapData assembles the geographic payload: city coordinates, full
// amenity listings per type capped at the display limit, and per-ranked-
// neighborhood amenity subsets capped at neighborhoodAmenityCap per type.
func (e *Engine) buildMapData(outcome *ScoreOutcome, top []*model.NeighborhoodAggregate) model.MapData {
	amenities := make(map[model.AmenityType][]model.Place, len(outcome.PlacesByType))
	for t, places := range outcome.PlacesByType {
		amenities[t] = capPlaces(places, e.cfg.DisplayAmenityCap)
	}

	neighborhoodAmenities := make(map[string]map[model.AmenityType][]model.Place, len(top))
	for _, agg := range top {
		byType := make(map[model.AmenityType][]model.Place)
		for _, p := range agg.Places {
			if len(byType[p.Type]) < neighborhoodAmenityCap {
				byType[p.Type] = append(byType[p.Type], p)
			}
		}
		neighborhoodAmenities[agg.Name] = byType
	}

	return model.MapData{
		CityCoordinates:       model.Coordinates{Lat: outcome.Center.Lat, Lng: outcome.Center.Lng},
		Amenities:             amenities,
		NeighborhoodAmenities: neighborhoodAmenities,
	}
}

func capPlaces(places []model.Place, limit int) []model.Place {
	if limit > 0 && len(places) > limit {
		return places[:limit]
	}
	return places
}
