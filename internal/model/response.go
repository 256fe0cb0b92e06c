package model

// Coordinates is a lat/lng pair in the client-facing payload.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RecommendationList carries the ranked neighborhoods and an optional
// summary line. Rank is array position.
type RecommendationList struct {
	Recommendations []RankedNeighborhood `json:"recommendations"`
	Summary         string               `json:"summary,omitempty"`
}

// MapData is the geographic portion of the response, sized for client
// rendering: full amenity listings capped per type, per-neighborhood
// subsets capped at five.
type MapData struct {
	CityCoordinates       Coordinates                        `json:"city_coordinates"`
	Amenities             map[AmenityType][]Place            `json:"amenities"`
	NeighborhoodAmenities map[string]map[AmenityType][]Place `json:"neighborhood_amenities"`
}

// Recommendation is the full response payload.
type Recommendation struct {
	City            string             `json:"city"`
	UserPreferences string             `json:"user_preferences"`
	Recommendations RecommendationList `json:"recommendations"`
	MapData         MapData            `json:"map_data"`
}

// DebugTrace is the intermediate state exposed by the debug endpoint.
type DebugTrace struct {
	TraceID       string   `json:"trace_id"`
	City          string   `json:"city"`
	Forums        []string `json:"forums"`
	ScrapedPosts  []Post   `json:"scraped_posts"`
	FilteredPosts []Post   `json:"filtered_posts"`
	ScrapedCount  int      `json:"scraped_count"`
	FilteredCount int      `json:"filtered_count"`
}
