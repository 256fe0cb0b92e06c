package scout

import (
	"context"

	"github.com/hoodscout/hoodscout/internal/config"
	"github.com/hoodscout/hoodscout/pkg/anthropic"
	"github.com/hoodscout/hoodscout/pkg/gmaps"
	"github.com/hoodscout/hoodscout/pkg/reddit"
)

// fakeLLM returns canned responses in order, then repeats the last one.
type fakeLLM struct {
	responses []string
	err       error
	calls     int
	prompts   []anthropic.MessageRequest
}

func (f *fakeLLM) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.calls++
	f.prompts = append(f.prompts, req)
	if f.err != nil {
		return nil, f.err
	}
	text := ""
	if len(f.responses) > 0 {
		idx := f.calls - 1
		if idx >= len(f.responses) {
			idx = len(f.responses) - 1
		}
		text = f.responses[idx]
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}, nil
}

// fakeReddit serves canned subreddits and posts. postsFn, when set, picks
// results per query.
type fakeReddit struct {
	subs    []reddit.Subreddit
	subErr  error
	posts   []reddit.Post
	postsFn func(query string) []reddit.Post
	postErr error
	queries []string
}

func (f *fakeReddit) SearchSubreddits(ctx context.Context, query string, opts ...reddit.SearchOption) ([]reddit.Subreddit, error) {
	if f.subErr != nil {
		return nil, f.subErr
	}
	return f.subs, nil
}

func (f *fakeReddit) SearchPosts(ctx context.Context, query string, opts ...reddit.SearchOption) ([]reddit.Post, error) {
	f.queries = append(f.queries, query)
	if f.postErr != nil {
		return nil, f.postErr
	}
	if f.postsFn != nil {
		return f.postsFn(query), nil
	}
	return f.posts, nil
}

// fakeMaps answers geocode/reverse/nearby from configurable funcs.
type fakeMaps struct {
	center     *gmaps.LatLng
	geocodeErr error
	reverseFn  func(loc gmaps.LatLng) ([]gmaps.GeocodeResult, error)
	nearbyFn   func(req gmaps.NearbySearchRequest) (*gmaps.NearbySearchResponse, error)
}

func (f *fakeMaps) Geocode(ctx context.Context, address string) (*gmaps.LatLng, error) {
	if f.geocodeErr != nil {
		return nil, f.geocodeErr
	}
	if f.center != nil {
		return f.center, nil
	}
	return &gmaps.LatLng{Lat: 40.0, Lng: -80.0}, nil
}

func (f *fakeMaps) ReverseGeocode(ctx context.Context, loc gmaps.LatLng) ([]gmaps.GeocodeResult, error) {
	if f.reverseFn != nil {
		return f.reverseFn(loc)
	}
	return nil, nil
}

func (f *fakeMaps) NearbySearch(ctx context.Context, req gmaps.NearbySearchRequest) (*gmaps.NearbySearchResponse, error) {
	if f.nearbyFn != nil {
		return f.nearbyFn(req)
	}
	return &gmaps.NearbySearchResponse{}, nil
}

// neighborhoodResult builds a reverse-geocode result with one typed component.
func neighborhoodResult(componentType, name string) []gmaps.GeocodeResult {
	return []gmaps.GeocodeResult{{
		AddressComponents: []gmaps.AddressComponent{{
			LongName: name,
			Types:    []string{componentType, "political"},
		}},
		FormattedAddress: name + ", Testville, USA",
	}}
}

func newTestEngine(llm *fakeLLM, rd *fakeReddit, mp *fakeMaps) *Engine {
	if llm == nil {
		llm = &fakeLLM{}
	}
	if rd == nil {
		rd = &fakeReddit{}
	}
	if mp == nil {
		mp = &fakeMaps{}
	}
	return NewEngine(llm, rd, mp, "test-model", config.ScoutConfig{})
}
