package model

// varietyBonus is the score weight for each distinct amenity type present
// in a neighborhood.
const varietyBonus = 5

// NeighborhoodAggregate accumulates located amenities for one neighborhood.
type NeighborhoodAggregate struct {
	Name          string              `json:"name"`
	AmenityCounts map[AmenityType]int `json:"amenity_counts"`
	Places        []Place             `json:"-"`
}

// NewNeighborhoodAggregate creates an empty aggregate for a neighborhood.
func NewNeighborhoodAggregate(name string) *NeighborhoodAggregate {
	return &NeighborhoodAggregate{
		Name:          name,
		AmenityCounts: make(map[AmenityType]int),
	}
}

// Add attributes a place to this neighborhood.
func (a *NeighborhoodAggregate) Add(p Place) {
	a.AmenityCounts[p.Type]++
	a.Places = append(a.Places, p)
}

// TotalAmenities is the sum of all per-type counts.
func (a *NeighborhoodAggregate) TotalAmenities() int {
	total := 0
	for _, n := range a.AmenityCounts {
		total += n
	}
	return total
}

// AmenityTypeCount is the number of amenity types with a non-zero count.
func (a *NeighborhoodAggregate) AmenityTypeCount() int {
	count := 0
	for _, n := range a.AmenityCounts {
		if n > 0 {
			count++
		}
	}
	return count
}

// AmenityScore is the composite score: total amenities plus a variety bonus
// per distinct type present.
func (a *NeighborhoodAggregate) AmenityScore() int {
	return a.TotalAmenities() + varietyBonus*a.AmenityTypeCount()
}

// RankedNeighborhood is one entry in the final recommendation list.
type RankedNeighborhood struct {
	Neighborhood     string              `json:"neighborhood"`
	MatchReasons     []string            `json:"match_reasons"`
	Concerns         []string            `json:"concerns"`
	AmenityBreakdown map[AmenityType]int `json:"amenity_breakdown"`
	QualitativeScore *float64            `json:"qualitative_score,omitempty"`
}
