package scout

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hoodscout/hoodscout/internal/model"
	"github.com/hoodscout/hoodscout/pkg/gmaps"
)

// resolveConcurrency bounds parallel reverse-geocode calls.
const resolveConcurrency = 4

// attributedPlace pairs a located place with its resolved neighborhood.
type attributedPlace struct {
	place        model.Place
	neighborhood string
}

// ScoreOutcome is the result of the aggregation core.
type ScoreOutcome struct {
	Center       gmaps.LatLng
	Ranked       []*model.NeighborhoodAggregate
	PlacesByType map[model.AmenityType][]model.Place
}

// ScoreNeighborhoods locates every requested amenity, attributes each place
// to a neighborhood, and ranks neighborhoods by amenity density plus a
// variety bonus. A provider failure for one amenity type yields an empty
// set for that type and does not abort the others.
func (e *Engine) ScoreNeighborhoods(ctx context.Context, city string, reqs []model.AmenityRequest) (*ScoreOutcome, error) {
	center, err := e.maps.Geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	placesByType := make(map[model.AmenityType][]model.Place, len(reqs))
	var allPlaces []model.Place
	for _, req := range reqs {
		places, err := e.LocateAmenities(ctx, *center, req, 0)
		if err != nil {
			zap.L().Warn("amenity lookup failed, skipping type",
				zap.String("type", string(req.Type)),
				zap.Error(err),
			)
			places = nil
		}
		placesByType[req.Type] = places
		allPlaces = append(allPlaces, places...)
	}

	attributed := e.attributePlaces(ctx, allPlaces)
	ranked := rankAggregates(aggregatePlaces(attributed))

	zap.L().Info("neighborhood scoring complete",
		zap.String("city", city),
		zap.Int("places_located", len(allPlaces)),
		zap.Int("places_attributed", len(attributed)),
		zap.Int("neighborhoods", len(ranked)),
	)

	return &ScoreOutcome{
		Center:       *center,
		Ranked:       ranked,
		PlacesByType: placesByType,
	}, nil
}

// attributePlaces resolves each place's neighborhood with bounded
// concurrency. Places that cannot be attributed are dropped. The returned
// order matches the input order, keeping aggregation deterministic.
func (e *Engine) attributePlaces(ctx context.Context, places []model.Place) []attributedPlace {
	names := make([]string, len(places))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, p := range places {
		i, p := i, p
		g.Go(func() error {
			names[i] = e.ResolveNeighborhood(gCtx, gmaps.LatLng{Lat: p.Lat, Lng: p.Lng})
			return nil
		})
	}
	_ = g.Wait()

	attributed := make([]attributedPlace, 0, len(places))
	for i, p := range places {
		if names[i] == "" {
			continue
		}
		attributed = append(attributed, attributedPlace{place: p, neighborhood: names[i]})
	}
	return attributed
}

// aggregatePlaces buckets attributed places per neighborhood, preserving
// first-seen insertion order.
func aggregatePlaces(attributed []attributedPlace) []*model.NeighborhoodAggregate {
	byName := make(map[string]*model.NeighborhoodAggregate)
	var order []*model.NeighborhoodAggregate

	for _, ap := range attributed {
		agg, ok := byName[ap.neighborhood]
		if !ok {
			agg = model.NewNeighborhoodAggregate(ap.neighborhood)
			byName[ap.neighborhood] = agg
			order = append(order, agg)
		}
		agg.Add(ap.place)
	}

	return order
}

// rankAggregates sorts aggregates by descending amenity score. The sort is
// stable, so ties keep insertion order.
func rankAggregates(aggs []*model.NeighborhoodAggregate) []*model.NeighborhoodAggregate {
	ranked := make([]*model.NeighborhoodAggregate, len(aggs))
	copy(ranked, aggs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AmenityScore() > ranked[j].AmenityScore()
	})
	return ranked
}
