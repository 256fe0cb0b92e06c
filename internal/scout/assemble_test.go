package scout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoodscout/hoodscout/internal/model"
	"github.com/hoodscout/hoodscout/pkg/gmaps"
)

func TestSyntheticEntry(t *testing.T) {
	entry := syntheticEntry(0)

	assert.Equal(t, "Downtown", entry.Neighborhood)
	assert.NotEmpty(t, entry.MatchReasons)
	assert.NotEmpty(t, entry.Concerns)
	assert.NotNil(t, entry.AmenityBreakdown)
	assert.Empty(t, entry.AmenityBreakdown)
	assert.Nil(t, entry.QualitativeScore)
}

func TestBuildMapDataCapsDisplayAmenities(t *testing.T) {
	places := make([]model.Place, 14)
	for i := range places {
		places[i] = model.Place{Name: fmt.Sprintf("Gym %d", i), Type: model.AmenityGym}
	}
	outcome := &ScoreOutcome{
		Center: gmaps.LatLng{Lat: 40, Lng: -80},
		PlacesByType: map[model.AmenityType][]model.Place{
			model.AmenityGym:     places,
			model.AmenityGrocery: {{Name: "Market", Type: model.AmenityGrocery}},
		},
	}

	e := newTestEngine(nil, nil, nil)
	got := e.buildMapData(outcome, nil)

	assert.Len(t, got.Amenities[model.AmenityGym], 10)
	assert.Equal(t, "Gym 0", got.Amenities[model.AmenityGym][0].Name)
	assert.Len(t, got.Amenities[model.AmenityGrocery], 1)
	assert.Equal(t, model.Coordinates{Lat: 40, Lng: -80}, got.CityCoordinates)
}

func TestBuildMapDataCapsPerNeighborhoodAmenities(t *testing.T) {
	agg := model.NewNeighborhoodAggregate("Downtown")
	for i := 0; i < 8; i++ {
		agg.Add(model.Place{Name: fmt.Sprintf("Gym %d", i), Type: model.AmenityGym})
	}
	agg.Add(model.Place{Name: "Central Park", Type: model.AmenityPark})

	outcome := &ScoreOutcome{PlacesByType: map[model.AmenityType][]model.Place{}}
	e := newTestEngine(nil, nil, nil)
	got := e.buildMapData(outcome, []*model.NeighborhoodAggregate{agg})

	byType := got.NeighborhoodAmenities["Downtown"]
	require.NotNil(t, byType)
	assert.Len(t, byType[model.AmenityGym], 5)
	assert.Equal(t, "Gym 0", byType[model.AmenityGym][0].Name)
	assert.Len(t, byType[model.AmenityPark], 1)
}

func TestBuildMapDataOnlyCoversRankedNeighborhoods(t *testing.T) {
	ranked := model.NewNeighborhoodAggregate("Downtown")
	ranked.Add(model.Place{Name: "Gym", Type: model.AmenityGym})

	outcome := &ScoreOutcome{PlacesByType: map[model.AmenityType][]model.Place{}}
	e := newTestEngine(nil, nil, nil)
	got := e.buildMapData(outcome, []*model.NeighborhoodAggregate{ranked})

	assert.Len(t, got.NeighborhoodAmenities, 1)
	assert.Contains(t, got.NeighborhoodAmenities, "Downtown")
}

func TestCapPlaces(t *testing.T) {
	places := []model.Place{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	assert.Len(t, capPlaces(places, 2), 2)
	assert.Len(t, capPlaces(places, 3), 3)
	assert.Len(t, capPlaces(places, 0), 3, "zero limit means uncapped")
}
