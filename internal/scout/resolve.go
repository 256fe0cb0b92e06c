package scout

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/hoodscout/hoodscout/pkg/gmaps"
)

// ResolveNeighborhood reverse-geocodes a coordinate to a neighborhood name.
// Preference order: a component typed "neighborhood", then "locality", then
// the first comma-delimited segment of the formatted address. Returns ""
// when the coordinate cannot be attributed; callers drop such places.
func (e *Engine) ResolveNeighborhood(ctx context.Context, loc gmaps.LatLng) string {
	results, err := e.maps.ReverseGeocode(ctx, loc)
	if err != nil {
		zap.L().Debug("reverse geocode failed",
			zap.Float64("lat", loc.Lat),
			zap.Float64("lng", loc.Lng),
			zap.Error(err),
		)
		return ""
	}
	if len(results) == 0 {
		return ""
	}

	if name := componentByType(results, "neighborhood"); name != "" {
		return normalizeNeighborhood(name)
	}
	if name := componentByType(results, "locality"); name != "" {
		return normalizeNeighborhood(name)
	}

	addr := results[0].FormattedAddress
	if idx := strings.Index(addr, ","); idx > 0 {
		addr = addr[:idx]
	}
	return normalizeNeighborhood(strings.TrimSpace(addr))
}

// componentByType scans all results for the first address component with
// the given type.
func componentByType(results []gmaps.GeocodeResult, wanted string) string {
	for _, r := range results {
		for _, c := range r.AddressComponents {
			for _, t := range c.Types {
				if t == wanted {
					return c.LongName
				}
			}
		}
	}
	return ""
}

// normalizeNeighborhood NFC-normalizes a name so diacritic variants of the
// same neighborhood bucket together during aggregation.
func normalizeNeighborhood(name string) string {
	return norm.NFC.String(name)
}
