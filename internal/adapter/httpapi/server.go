// Package httpapi exposes the observation and analysis HTTP endpoints.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mesowx/mesoanalysis/internal/analysis"
	"github.com/mesowx/mesoanalysis/internal/ingest"
	"github.com/mesowx/mesoanalysis/internal/observability"
	"github.com/mesowx/mesoanalysis/internal/render"
	"github.com/mesowx/mesoanalysis/internal/store"
)

const (
	defaultRenderWidth  = 1024
	defaultRenderHeight = 768
	maxRenderDimension  = 4096
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Refresher triggers an on-demand observation refresh.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Server exposes health, observation, and analysis rendering endpoints.
type Server struct {
	httpServer *http.Server
	history    *store.History
	refresher  Refresher
	cache      *renderCache
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(addr string, history *store.History, ready ReadinessChecker, refresher Refresher, cacheSize int, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		history:   history,
		refresher: refresher,
		cache:     newRenderCache(cacheSize),
		metrics:   metrics,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/obs/latest", s.handleLatest)
	mux.HandleFunc("GET /api/obs/times", s.handleTimes)
	mux.HandleFunc("GET /api/obs/at", s.handleAt)
	mux.HandleFunc("POST /api/obs/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/analysis/render", s.handleRender)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleLatest(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.history.Latest()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleTimes(w http.ResponseWriter, r *http.Request) {
	minutes := 360
	if v := r.URL.Query().Get("minutes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "minutes must be an integer"})
			return
		}
		minutes = n
	}
	if minutes < 5 {
		minutes = 5
	}
	if minutes > 1440 {
		minutes = 1440
	}
	window := time.Duration(minutes) * time.Minute
	writeJSON(w, http.StatusOK, map[string]any{"times": s.history.Times(window)})
}

func (s *Server) handleAt(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query().Get("time")
	target, err := time.Parse(time.RFC3339, v)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "time must be RFC 3339"})
		return
	}

	snap, err := s.history.At(target)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.refresher.Refresh(r.Context()); err != nil {
		// A concurrent refresh already stored a newer snapshot.
		if errors.Is(err, ingest.ErrSuperseded) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	snap, err := s.history.Latest()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "refreshed",
		"time":     snap.Time,
		"stations": len(snap.Observations),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		s.metrics.RenderRequests.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	snap, err := s.history.Latest()
	if err != nil {
		s.metrics.RenderRequests.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}

	key := cacheKey(r.URL.Query().Encode(), snap.Time)
	if png, ok := s.cache.get(key); ok {
		s.metrics.RenderCache.WithLabelValues("hit").Inc()
		s.metrics.RenderRequests.WithLabelValues("success").Inc()
		servePNG(w, png)
		return
	}
	s.metrics.RenderCache.WithLabelValues("miss").Inc()

	view, err := analysis.NewMercatorView(req.west, req.south, req.east, req.north, req.width, req.height)
	if err != nil {
		s.metrics.RenderRequests.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	start := time.Now()
	canvas := render.NewGGCanvas(req.width, req.height)
	stats, err := render.DrawOverlay(r.Context(), canvas, snap.Observations, view, float64(req.width), float64(req.height), req.opts)
	if err != nil {
		s.metrics.RenderRequests.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		s.metrics.RenderRequests.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	s.metrics.RenderRequests.WithLabelValues("success").Inc()

	s.logger.Debug("rendered analysis",
		"stations", stats.StationsPlotted,
		"segments", stats.ContourSegments,
		"labels", stats.LabelsPlaced,
		"glyphs", stats.WindGlyphs,
		"duration", time.Since(start))

	png := buf.Bytes()
	s.cache.put(key, png)
	servePNG(w, png)
}

type renderRequest struct {
	west, south, east, north float64
	width, height            int
	opts                     render.Options
}

// parseRenderRequest validates the render query. The default bounding box
// covers the contiguous United States.
func parseRenderRequest(r *http.Request) (renderRequest, error) {
	q := r.URL.Query()

	req := renderRequest{
		west: -125, south: 24, east: -66, north: 50,
		width:  defaultRenderWidth,
		height: defaultRenderHeight,
		opts:   render.DefaultOptions(),
	}

	if v := q.Get("bbox"); v != "" {
		parts := strings.Split(v, ",")
		if len(parts) != 4 {
			return req, errParam("bbox must be west,south,east,north")
		}
		vals := make([]float64, 4)
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return req, errParam("bbox must be numeric")
			}
			vals[i] = f
		}
		req.west, req.south, req.east, req.north = vals[0], vals[1], vals[2], vals[3]
	}

	var err error
	if req.width, err = parseDimension(q.Get("width"), defaultRenderWidth); err != nil {
		return req, err
	}
	if req.height, err = parseDimension(q.Get("height"), defaultRenderHeight); err != nil {
		return req, err
	}

	switch q.Get("units") {
	case "", "imperial":
		req.opts.Units = analysis.Imperial
	case "metric":
		req.opts.Units = analysis.Metric
	default:
		return req, errParam("units must be imperial or metric")
	}

	switch q.Get("windmode") {
	case "", "barbs":
		req.opts.WindMode = render.WindBarbs
	case "arrows":
		req.opts.WindMode = render.WindArrows
	default:
		return req, errParam("windmode must be barbs or arrows")
	}

	switch q.Get("density") {
	case "dense":
		req.opts.Density = analysis.DensityDense
	case "", "medium":
		req.opts.Density = analysis.DensityMedium
	case "sparse":
		req.opts.Density = analysis.DensitySparse
	default:
		return req, errParam("density must be dense, medium, or sparse")
	}

	if v := q.Get("overlays"); v != "" {
		var ov render.Overlays
		for _, name := range strings.Split(v, ",") {
			switch strings.TrimSpace(name) {
			case "isobars":
				ov.Isobars = true
			case "isotherms":
				ov.Isotherms = true
			case "isodrosotherms":
				ov.Isodrosotherms = true
			case "wind":
				ov.WindGrid = true
			case "stations":
				ov.Stations = true
			default:
				return req, errParam("unknown overlay " + name)
			}
		}
		req.opts.Overlays = ov
	}

	return req, nil
}

func parseDimension(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > maxRenderDimension {
		return 0, errParam("dimensions must be 1.." + strconv.Itoa(maxRenderDimension))
	}
	return n, nil
}

type errParam string

func (e errParam) Error() string { return string(e) }

func servePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png) //nolint:errcheck // best-effort image response
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
