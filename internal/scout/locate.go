package scout

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hoodscout/hoodscout/internal/model"
	"github.com/hoodscout/hoodscout/pkg/gmaps"
)

// brandQueryConcurrency bounds parallel per-brand nearby queries. The gmaps
// client's rate limiter gates the actual call rate.
const brandQueryConcurrency = 2

// minBrandTokenLen ignores short brand tokens ("LA", "of") when matching
// place names.
const minBrandTokenLen = 2

// matchesBrand reports whether a place name contains at least one brand
// token longer than minBrandTokenLen characters.
func matchesBrand(placeName, brand string) bool {
	nameLower := strings.ToLower(placeName)
	for _, token := range strings.Fields(strings.ToLower(brand)) {
		if len(token) > minBrandTokenLen && strings.Contains(nameLower, token) {
			return true
		}
	}
	return false
}

// isSentinelPlace filters the provider's own sentinel/test entries, which
// occasionally leak into keyword results.
func isSentinelPlace(name string) bool {
	lower := strings.ToLower(name)
	return name == "" || strings.Contains(lower, "test listing") || strings.HasPrefix(lower, "zzz")
}

// LocateAmenities finds places of one amenity type around a city center.
// With brand names, one keyword query per brand is issued and results are
// filtered locally by brand token. Without brands, the generic nearby query
// is paginated up to the configured page cap. A positive limit truncates
// the result.
func (e *Engine) LocateAmenities(ctx context.Context, center gmaps.LatLng, req model.AmenityRequest, limit int) ([]model.Place, error) {
	var places []model.Place
	var err error

	if len(req.SpecificNames) > 0 {
		places, err = e.locateByBrand(ctx, center, req)
	} else {
		places, err = e.locateGeneric(ctx, center, req)
	}
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(places) > limit {
		places = places[:limit]
	}
	return places, nil
}

// locateByBrand issues one keyword query per brand name, in parallel up to
// brandQueryConcurrency, and keeps places whose names match the brand.
// Results preserve brand order regardless of completion order.
func (e *Engine) locateByBrand(ctx context.Context, center gmaps.LatLng, req model.AmenityRequest) ([]model.Place, error) {
	perBrand := make([][]model.Place, len(req.SpecificNames))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(brandQueryConcurrency)

	var mu sync.Mutex
	for i, brand := range req.SpecificNames {
		i, brand := i, brand
		g.Go(func() error {
			resp, err := e.maps.NearbySearch(gCtx, gmaps.NearbySearchRequest{
				Location:  center,
				RadiusM:   e.cfg.SearchRadiusM,
				PlaceType: string(req.Type),
				Keyword:   brand,
			})
			if err != nil {
				return err
			}

			var matched []model.Place
			for _, p := range resp.Places {
				if isSentinelPlace(p.Name) || !matchesBrand(p.Name, brand) {
					continue
				}
				matched = append(matched, model.Place{
					Name: p.Name,
					Lat:  p.Geometry.Location.Lat,
					Lng:  p.Geometry.Location.Lng,
					Type: req.Type,
				})
			}

			mu.Lock()
			perBrand[i] = matched
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var places []model.Place
	for _, batch := range perBrand {
		places = append(places, batch...)
	}
	return places, nil
}

// locateGeneric paginates the nearby query, following the provider's page
// token up to the configured cap and stopping early when no token returns.
func (e *Engine) locateGeneric(ctx context.Context, center gmaps.LatLng, req model.AmenityRequest) ([]model.Place, error) {
	var places []model.Place
	pageToken := ""

	for page := 0; page < e.cfg.MaxPlacePages; page++ {
		resp, err := e.maps.NearbySearch(ctx, gmaps.NearbySearchRequest{
			Location:  center,
			RadiusM:   e.cfg.SearchRadiusM,
			PlaceType: string(req.Type),
			PageToken: pageToken,
		})
		if err != nil {
			return nil, err
		}

		for _, p := range resp.Places {
			if isSentinelPlace(p.Name) {
				continue
			}
			places = append(places, model.Place{
				Name: p.Name,
				Lat:  p.Geometry.Location.Lat,
				Lng:  p.Geometry.Location.Lng,
				Type: req.Type,
			})
		}

		if resp.PageToken == "" {
			break
		}
		pageToken = resp.PageToken
	}

	zap.L().Debug("generic amenity lookup complete",
		zap.String("type", string(req.Type)),
		zap.Int("places", len(places)),
	)

	return places, nil
}
