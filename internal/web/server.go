// Package web serves the leaderboard and simulator history as a small
// read-only JSON API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/hexgems/internal/registry"
	"github.com/vovakirdan/hexgems/internal/storage"
)

const maxLimit = 100

// Store is the read side of storage.Store used by the API.
type Store interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
	RecentSimRuns(variant string, limit int) ([]storage.SimRun, error)
}

type gameJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type scoreJSON struct {
	Rank      int       `json:"rank"`
	SessionID string    `json:"session_id"`
	Score     int       `json:"score"`
	Moves     int       `json:"moves"`
	BestChain int       `json:"best_chain"`
	CreatedAt time.Time `json:"created_at"`
}

type statsJSON struct {
	GameID     string    `json:"game_id"`
	Games      int       `json:"games"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	BestChain  int       `json:"best_chain"`
	LastPlayed time.Time `json:"last_played,omitzero"`
}

type simRunJSON struct {
	ID          int64     `json:"id"`
	Variant     string    `json:"variant"`
	Runs        int       `json:"runs"`
	Swaps       int       `json:"swaps"`
	MeanWaves   float64   `json:"mean_waves"`
	StdDevWaves float64   `json:"stddev_waves"`
	P95Waves    float64   `json:"p95_waves"`
	MaxWaves    int       `json:"max_waves"`
	CreatedAt   time.Time `json:"created_at"`
}

type handlers struct {
	store  Store
	logger *log.Logger
}

// NewHandler wires the routes. A nil logger disables access logs.
func NewHandler(store Store, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &handlers{store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(logger))
	r.Use(Compress)

	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/games", h.games)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/scores", h.scores)
			r.Get("/stats", h.stats)
		})
		r.Get("/sim-runs", h.simRuns)
	})
	return r
}

// Serve runs the API on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("Starting HTTP server", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("Stopping HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (h *handlers) games(w http.ResponseWriter, _ *http.Request) {
	list := registry.List()
	out := make([]gameJSON, 0, len(list))
	for _, g := range list {
		out = append(out, gameJSON{ID: g.ID, Title: g.Title, Description: g.Description})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *handlers) scores(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	limit, ok := h.limit(w, r, 10)
	if !ok {
		return
	}

	entries, err := h.store.TopScores(id, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]scoreJSON, 0, len(entries))
	for i, e := range entries {
		out = append(out, scoreJSON{
			Rank:      i + 1,
			SessionID: e.SessionID,
			Score:     e.Score,
			Moves:     e.Moves,
			BestChain: e.BestChain,
			CreatedAt: e.CreatedAt,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	s, err := h.store.GetGameStats(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, statsJSON{
		GameID:     s.GameID,
		Games:      s.GamesCount,
		HighScore:  s.HighScore,
		AvgScore:   s.AvgScore,
		BestChain:  s.BestChain,
		LastPlayed: s.LastPlayed,
	})
}

func (h *handlers) simRuns(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limit(w, r, 20)
	if !ok {
		return
	}
	runs, err := h.store.RecentSimRuns(r.URL.Query().Get("variant"), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]simRunJSON, 0, len(runs))
	for _, s := range runs {
		out = append(out, simRunJSON{
			ID:          s.ID,
			Variant:     s.Variant,
			Runs:        s.Runs,
			Swaps:       s.Swaps,
			MeanWaves:   s.MeanWaves,
			StdDevWaves: s.StdDevWaves,
			P95Waves:    s.P95Waves,
			MaxWaves:    s.MaxWaves,
			CreatedAt:   s.CreatedAt,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

// gameID reads the {id} parameter and answers 404 for unknown games.
func (h *handlers) gameID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !registry.Exists(id) {
		h.writeError(w, http.StatusNotFound, "unknown game "+strconv.Quote(id))
		return "", false
	}
	return id, true
}

// limit parses ?limit=, clamped to [1, maxLimit].
func (h *handlers) limit(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return min(n, maxLimit), true
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	h.writeError(w, http.StatusInternalServerError, "internal error")
}

func (h *handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("cannot encode response", "err", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// accessLog emits one debug line per request.
func accessLog(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
