// Package scout implements the neighborhood recommendation pipeline:
// forum discovery, post retrieval and relevance filtering, preference
// extraction, amenity location, neighborhood scoring, and response assembly.
package scout

import (
	"context"

	"go.uber.org/zap"

	"github.com/hoodscout/hoodscout/internal/config"
	"github.com/hoodscout/hoodscout/internal/model"
	"github.com/hoodscout/hoodscout/pkg/anthropic"
	"github.com/hoodscout/hoodscout/pkg/gmaps"
	"github.com/hoodscout/hoodscout/pkg/reddit"
)

// Engine wires the external collaborators into the pipeline. All state is
// request-scoped; an Engine is safe for concurrent use.
type Engine struct {
	llm    anthropic.Client
	reddit reddit.Client
	maps   gmaps.Client
	model  string
	cfg    config.ScoutConfig
}

// NewEngine creates a pipeline engine from its collaborators.
func NewEngine(llm anthropic.Client, rd reddit.Client, mp gmaps.Client, llmModel string, cfg config.ScoutConfig) *Engine {
	if cfg.SearchRadiusM <= 0 {
		cfg.SearchRadiusM = 8000
	}
	if cfg.MaxPlacePages <= 0 {
		cfg.MaxPlacePages = 3
	}
	if cfg.MaxRecommendations <= 0 {
		cfg.MaxRecommendations = 5
	}
	if cfg.DisplayAmenityCap <= 0 {
		cfg.DisplayAmenityCap = 10
	}
	return &Engine{
		llm:    llm,
		reddit: rd,
		maps:   mp,
		model:  llmModel,
		cfg:    cfg,
	}
}

// strategy is one way to turn preferences into ranked neighborhoods. The
// amenity-first strategy is used when structured amenities were extracted;
// otherwise the post-first strategy names neighborhoods from community posts.
type strategy interface {
	name() string
	recommend(ctx context.Context, in strategyInput) (*model.Recommendation, error)
}

// strategyInput is the shared state computed before strategy dispatch.
// Filtered posts are computed up front so both strategies receive them.
type strategyInput struct {
	city         string
	preferences  string
	amenities    []model.AmenityRequest
	posts        []model.Post
	scrapedCount int
}

// Recommend runs the full pipeline for one request.
func (e *Engine) Recommend(ctx context.Context, city, preferences string) (*model.Recommendation, error) {
	// Community grounding first: qualitative queries, posts, relevance.
	queries := e.ExtractQualitativeQueries(ctx, preferences, city)
	posts := e.ScrapePosts(ctx, queries, city, nil)
	filtered := e.FilterRelevant(ctx, posts, preferences)

	amenities := e.ExtractAmenities(ctx, preferences, city)

	in := strategyInput{
		city:         city,
		preferences:  preferences,
		amenities:    amenities,
		posts:        filtered,
		scrapedCount: len(posts),
	}

	var s strategy = &postFirstStrategy{e}
	if len(amenities) > 0 {
		s = &amenityFirstStrategy{e}
	}

	zap.L().Info("recommendation strategy selected",
		zap.String("city", city),
		zap.String("strategy", s.name()),
		zap.Int("amenity_types", len(amenities)),
		zap.Int("posts_scraped", len(posts)),
		zap.Int("posts_relevant", len(filtered)),
	)

	rec, err := s.recommend(ctx, in)
	if err != nil && len(amenities) > 0 {
		// Post-first needs no geocode and never fails on provider errors.
		zap.L().Warn("amenity-first strategy failed, falling back to post-first",
			zap.String("city", city),
			zap.Error(err),
		)
		return (&postFirstStrategy{e}).recommend(ctx, in)
	}
	return rec, err
}

// Debug runs the retrieval half of the pipeline and returns the
// intermediate state for inspection.
func (e *Engine) Debug(ctx context.Context, traceID, city, preferences string) (*model.DebugTrace, error) {
	forums := e.DiscoverForums(ctx, city)
	queries := e.ExtractQualitativeQueries(ctx, preferences, city)
	posts := e.ScrapePosts(ctx, queries, city, forums)
	filtered := e.FilterRelevant(ctx, posts, preferences)

	return &model.DebugTrace{
		TraceID:       traceID,
		City:          city,
		Forums:        forums,
		ScrapedPosts:  posts,
		FilteredPosts: filtered,
		ScrapedCount:  len(posts),
		FilteredCount: len(filtered),
	}, nil
}
