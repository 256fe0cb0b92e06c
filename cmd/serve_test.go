package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoodscout/hoodscout/internal/model"
)

// fakeRecommender satisfies the handler surface with canned results.
type fakeRecommender struct {
	result *model.Recommendation
	trace  *model.DebugTrace
	posts  []model.Post
	err    error

	lastCity  string
	lastPrefs string
}

func (f *fakeRecommender) Recommend(ctx context.Context, city, preferences string) (*model.Recommendation, error) {
	f.lastCity, f.lastPrefs = city, preferences
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRecommender) Debug(ctx context.Context, traceID, city, preferences string) (*model.DebugTrace, error) {
	if f.err != nil {
		return nil, f.err
	}
	trace := *f.trace
	trace.TraceID = traceID
	return &trace, nil
}

func (f *fakeRecommender) ScrapePosts(ctx context.Context, queries []string, city string, forums []string) []model.Post {
	return f.posts
}

func doRequest(t *testing.T, rec recommender, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newRouter(rec).ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := doRequest(t, &fakeRecommender{}, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Server is running"}`, w.Body.String())
}

func TestRecommendationsEndpoint(t *testing.T) {
	rec := &fakeRecommender{result: &model.Recommendation{
		City:            "Testville",
		UserPreferences: "gyms",
		Recommendations: model.RecommendationList{
			Recommendations: []model.RankedNeighborhood{{Neighborhood: "Downtown"}},
		},
	}}

	w := doRequest(t, rec, http.MethodPost, "/api/recommendations",
		`{"city":"Testville","preferences":"gyms"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Testville", rec.lastCity)
	assert.Equal(t, "gyms", rec.lastPrefs)

	var got model.Recommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Testville", got.City)
	require.Len(t, got.Recommendations.Recommendations, 1)
	assert.Equal(t, "Downtown", got.Recommendations.Recommendations[0].Neighborhood)
}

func TestRecommendationsRejectsBadBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{not json`},
		{name: "missing city", body: `{"preferences":"gyms"}`},
		{name: "missing preferences", body: `{"city":"Testville"}`},
		{name: "empty object", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, &fakeRecommender{}, http.MethodPost, "/api/recommendations", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRecommendationsSurfacesPipelineError(t *testing.T) {
	rec := &fakeRecommender{err: eris.New("geocode city: nothing found")}

	w := doRequest(t, rec, http.MethodPost, "/api/recommendations",
		`{"city":"Testville","preferences":"gyms"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "geocode city")
}

func TestTestScrapeEndpoint(t *testing.T) {
	rec := &fakeRecommender{posts: []model.Post{
		{Title: "A", BodyExcerpt: "body", SourceForum: "Testville"},
	}}

	w := doRequest(t, rec, http.MethodPost, "/api/test-scrape",
		`{"queries":["best neighborhoods"]}`)

	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		QueriesCount int          `json:"queries_count"`
		PostsScraped int          `json:"posts_scraped"`
		Posts        []model.Post `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.QueriesCount)
	assert.Equal(t, 1, got.PostsScraped)
	require.Len(t, got.Posts, 1)
	assert.Equal(t, "A", got.Posts[0].Title)
}

func TestTestScrapeRequiresQueryArray(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `nope`},
		{name: "missing queries", body: `{}`},
		{name: "queries null", body: `{"queries":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, &fakeRecommender{}, http.MethodPost, "/api/test-scrape", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "queries must be an array")
		})
	}
}

func TestTestScrapeAcceptsEmptyQueryArray(t *testing.T) {
	w := doRequest(t, &fakeRecommender{}, http.MethodPost, "/api/test-scrape",
		`{"queries":[]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"queries_count":0`)
}

func TestDebugRecommendationsAssignsTraceID(t *testing.T) {
	rec := &fakeRecommender{trace: &model.DebugTrace{
		City:          "Testville",
		ScrapedCount:  2,
		FilteredCount: 1,
	}}

	w := doRequest(t, rec, http.MethodPost, "/api/debug-recommendations",
		`{"city":"Testville","preferences":"gyms"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var got model.DebugTrace
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.TraceID)
	assert.Equal(t, 2, got.ScrapedCount)
	assert.Equal(t, 1, got.FilteredCount)
}
