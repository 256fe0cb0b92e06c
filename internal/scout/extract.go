package scout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hoodscout/hoodscout/internal/model"
	"github.com/hoodscout/hoodscout/pkg/anthropic"
)

const queryExtractSystemPrompt = `You turn housing preferences into forum search queries about neighborhoods in a city. Queries must be about neighborhoods and living there, never about specific brands or services. Respond with a JSON object only: {"queries": ["<query>", ...]} (2-4 queries).`

const qualitativeQuerySystemPrompt = `You turn housing preferences into forum search queries about what it is like to live in a city's neighborhoods: safety, noise, community, atmosphere. Avoid brand or service names. Respond with a JSON object only: {"queries": ["<query>", ...]} (2-4 queries).`

const amenityExtractSystemPrompt = `You extract amenity needs from housing preferences. Allowed types: gym, grocery_or_supermarket, transit_station, restaurant, park, hospital, library, school, shopping_mall, pharmacy. Include specific brand names only when the preferences explicitly or clearly imply them. Respond with a JSON object only: {"amenities": [{"type": "<type>", "specific_names": ["<brand>", ...]}, ...]}`

// defaultAmenities is the fixed fallback when amenity extraction fails.
func defaultAmenities() []model.AmenityRequest {
	return []model.AmenityRequest{
		{Type: model.AmenityGym},
		{Type: model.AmenityGrocery},
	}
}

// defaultQueries is the fixed fallback when query extraction fails.
func defaultQueries(city string) []string {
	return []string{
		"best neighborhoods in " + city,
		"where to live in " + city,
	}
}

// extractQueries runs one query-mode extraction prompt. Parsing failure
// falls back to a fixed default set, never an error.
func (e *Engine) extractQueries(ctx context.Context, system, preferences, city, phase string) []string {
	prompt := fmt.Sprintf("City: %s\nPreferences: %s", city, preferences)

	temp := 0.3
	resp, err := e.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   512,
		System:      system,
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
	})
	if err != nil {
		zap.L().Warn("query extraction failed, using defaults",
			zap.String("phase", phase),
			zap.Error(err),
		)
		return defaultQueries(city)
	}
	resp.Usage.LogCost(e.model, phase)

	var result struct {
		Queries []string `json:"queries"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(extractText(resp))), &result); err != nil || len(result.Queries) == 0 {
		zap.L().Warn("query extraction unparsable, using defaults",
			zap.String("phase", phase),
		)
		return defaultQueries(city)
	}

	var queries []string
	for _, q := range result.Queries {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		return defaultQueries(city)
	}
	return queries
}

// ExtractSearchQueries produces neighborhood-focused search queries from
// free-text preferences (query mode).
func (e *Engine) ExtractSearchQueries(ctx context.Context, preferences, city string) []string {
	return e.extractQueries(ctx, queryExtractSystemPrompt, preferences, city, "query_extraction")
}

// ExtractQualitativeQueries is the qualitative-focused variant used to
// ground qualitative scoring in community posts.
func (e *Engine) ExtractQualitativeQueries(ctx context.Context, preferences, city string) []string {
	return e.extractQueries(ctx, qualitativeQuerySystemPrompt, preferences, city, "qualitative_query_extraction")
}

// ExtractAmenities produces structured amenity requests from free-text
// preferences (amenity mode). Types outside the controlled vocabulary are
// dropped; parsing failure falls back to a fixed default set. An empty list
// on a successful parse is a valid outcome and means no amenities were
// requested.
func (e *Engine) ExtractAmenities(ctx context.Context, preferences, city string) []model.AmenityRequest {
	prompt := fmt.Sprintf("City: %s\nPreferences: %s", city, preferences)

	temp := 0.0
	resp, err := e.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   512,
		System:      amenityExtractSystemPrompt,
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
	})
	if err != nil {
		zap.L().Warn("amenity extraction failed, using defaults", zap.Error(err))
		return defaultAmenities()
	}
	resp.Usage.LogCost(e.model, "amenity_extraction")

	var result struct {
		Amenities []model.AmenityRequest `json:"amenities"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(extractText(resp))), &result); err != nil {
		zap.L().Warn("amenity extraction unparsable, using defaults")
		return defaultAmenities()
	}

	var amenities []model.AmenityRequest
	for _, a := range result.Amenities {
		if !model.ValidAmenityType(a.Type) {
			zap.L().Debug("dropping amenity outside vocabulary",
				zap.String("type", string(a.Type)),
			)
			continue
		}
		amenities = append(amenities, a)
	}
	return amenities
}
