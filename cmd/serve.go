package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hoodscout/hoodscout/internal/model"
)

var servePort int

// recommender is the pipeline surface the HTTP handlers need.
type recommender interface {
	Recommend(ctx context.Context, city, preferences string) (*model.Recommendation, error)
	Debug(ctx context.Context, traceID, city, preferences string) (*model.DebugTrace, error)
	ScrapePosts(ctx context.Context, queries []string, city string, forums []string) []model.Post
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recommendation HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		engine := initEngine()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(engine),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(context.Background()) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the HTTP surface.
func newRouter(rec recommender) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/recommendations", handleRecommendations(rec))
		r.Post("/test-scrape", handleTestScrape(rec))
		r.Post("/debug-recommendations", handleDebugRecommendations(rec))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "Server is running"})
}

// recommendationRequest is the body for the recommendation endpoints.
type recommendationRequest struct {
	City        string `json:"city"`
	Preferences string `json:"preferences"`
}

func decodeRecommendationRequest(w http.ResponseWriter, r *http.Request) (recommendationRequest, bool) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.City == "" || req.Preferences == "" {
		writeError(w, http.StatusBadRequest, "city and preferences are required")
		return req, false
	}
	return req, true
}

func handleRecommendations(rec recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRecommendationRequest(w, r)
		if !ok {
			return
		}

		result, err := rec.Recommend(r.Context(), req.City, req.Preferences)
		if err != nil {
			zap.L().Error("recommendation failed",
				zap.String("city", req.City),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, eris.ToString(err, false))
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func handleTestScrape(rec recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Queries []string `json:"queries"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Queries == nil {
			writeError(w, http.StatusBadRequest, "queries must be an array")
			return
		}

		posts := rec.ScrapePosts(r.Context(), req.Queries, "", nil)

		writeJSON(w, http.StatusOK, map[string]any{
			"queries_count": len(req.Queries),
			"posts_scraped": len(posts),
			"posts":         posts,
		})
	}
}

func handleDebugRecommendations(rec recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRecommendationRequest(w, r)
		if !ok {
			return
		}

		trace, err := rec.Debug(r.Context(), uuid.NewString(), req.City, req.Preferences)
		if err != nil {
			zap.L().Error("debug recommendation failed",
				zap.String("city", req.City),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, eris.ToString(err, false))
			return
		}

		writeJSON(w, http.StatusOK, trace)
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
