package model

// AmenityType is a category in the controlled amenity vocabulary. Values
// match the place types understood by the mapping provider.
type AmenityType string

const (
	AmenityGym        AmenityType = "gym"
	AmenityGrocery    AmenityType = "grocery_or_supermarket"
	AmenityTransit    AmenityType = "transit_station"
	AmenityRestaurant AmenityType = "restaurant"
	AmenityPark       AmenityType = "park"
	AmenityHospital   AmenityType = "hospital"
	AmenityLibrary    AmenityType = "library"
	AmenitySchool     AmenityType = "school"
	AmenityMall       AmenityType = "shopping_mall"
	AmenityPharmacy   AmenityType = "pharmacy"
)

// AllAmenityTypes returns the controlled vocabulary.
func AllAmenityTypes() []AmenityType {
	return []AmenityType{
		AmenityGym,
		AmenityGrocery,
		AmenityTransit,
		AmenityRestaurant,
		AmenityPark,
		AmenityHospital,
		AmenityLibrary,
		AmenitySchool,
		AmenityMall,
		AmenityPharmacy,
	}
}

// ValidAmenityType reports whether t is in the controlled vocabulary.
func ValidAmenityType(t AmenityType) bool {
	for _, v := range AllAmenityTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// AmenityRequest asks the locator for one amenity category, optionally
// narrowed to specific brand names.
type AmenityRequest struct {
	Type          AmenityType `json:"type"`
	SpecificNames []string    `json:"specific_names,omitempty"`
}

// Place is a located amenity returned by the mapping provider.
type Place struct {
	Name string      `json:"name"`
	Lat  float64     `json:"lat"`
	Lng  float64     `json:"lng"`
	Type AmenityType `json:"type"`
}
