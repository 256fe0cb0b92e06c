package scout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoodscout/hoodscout/pkg/gmaps"
)

func TestResolveNeighborhoodPrefersNeighborhoodComponent(t *testing.T) {
	mp := &fakeMaps{
		reverseFn: func(loc gmaps.LatLng) ([]gmaps.GeocodeResult, error) {
			return []gmaps.GeocodeResult{{
				AddressComponents: []gmaps.AddressComponent{
					{LongName: "Testville", Types: []string{"locality", "political"}},
					{LongName: "Riverside", Types: []string{"neighborhood", "political"}},
				},
				FormattedAddress: "123 Main St, Testville, USA",
			}}, nil
		},
	}
	e := newTestEngine(nil, nil, mp)

	assert.Equal(t, "Riverside", e.ResolveNeighborhood(context.Background(), gmaps.LatLng{}))
}

func TestResolveNeighborhoodFallsBackToLocality(t *testing.T) {
	mp := &fakeMaps{
		reverseFn: func(loc gmaps.LatLng) ([]gmaps.GeocodeResult, error) {
			return neighborhoodResult("locality", "Testville"), nil
		},
	}
	e := newTestEngine(nil, nil, mp)

	assert.Equal(t, "Testville", e.ResolveNeighborhood(context.Background(), gmaps.LatLng{}))
}

func TestResolveNeighborhoodFallsBackToFormattedAddress(t *testing.T) {
	mp := &fakeMaps{
		reverseFn: func(loc gmaps.LatLng) ([]gmaps.GeocodeResult, error) {
			return []gmaps.GeocodeResult{{
				FormattedAddress: "Old Town, Testville, USA",
			}}, nil
		},
	}
	e := newTestEngine(nil, nil, mp)

	assert.Equal(t, "Old Town", e.ResolveNeighborhood(context.Background(), gmaps.LatLng{}))
}

func TestResolveNeighborhoodEmptyOnNoResults(t *testing.T) {
	e := newTestEngine(nil, nil, &fakeMaps{})
	assert.Empty(t, e.ResolveNeighborhood(context.Background(), gmaps.LatLng{}))
}

func TestResolveNeighborhoodEmptyOnError(t *testing.T) {
	mp := &fakeMaps{
		reverseFn: func(loc gmaps.LatLng) ([]gmaps.GeocodeResult, error) {
			return nil, assert.AnError
		},
	}
	e := newTestEngine(nil, nil, mp)
	assert.Empty(t, e.ResolveNeighborhood(context.Background(), gmaps.LatLng{}))
}

func TestNormalizeNeighborhoodNFC(t *testing.T) {
	// "São" with a combining tilde normalizes to the precomposed form.
	decomposed := "São Paulo"
	assert.Equal(t, "São Paulo", normalizeNeighborhood(decomposed))
}
