// internal/server/server.go
// Package server exposes report overviews over a read-only HTTP JSON API, an
// HTML dashboard and a Prometheus metrics endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mwiater/evalboard/internal/evalreport"
	"github.com/mwiater/evalboard/internal/logging"
	"github.com/mwiater/evalboard/internal/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// ErrResp is the body of every error response.
type ErrResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Snapshot describes the report a response was derived from.
type Snapshot struct {
	Available bool   `json:"available"`
	Source    string `json:"source"`
	Reason    string `json:"reason,omitempty"`
}

// CategoriesResp is returned by GET /api/categories.
type CategoriesResp struct {
	Snapshot
	Categories []evalreport.CategoryAggregate `json:"categories"`
}

// FailuresResp is returned by GET /api/failures.
type FailuresResp struct {
	Snapshot
	Preview  bool                  `json:"preview"`
	Count    int                   `json:"count"`
	Failures []evalreport.TestCase `json:"failures"`
}

// ViewsResp is returned by GET /api/views.
type ViewsResp struct {
	Snapshot
	Views []evalreport.ViewSummary `json:"views"`
}

// ViewResp is returned by GET /api/views/{name}.
type ViewResp struct {
	Snapshot
	View evalreport.ViewSummary `json:"view"`
}

// Server serves one report source. Every request loads the source afresh.
type Server struct {
	src  evalreport.Source
	opts evalreport.Options

	registry *prometheus.Registry
	loads    *prometheus.CounterVec
	duration prometheus.Histogram
}

// New builds a server for src with its own metrics registry.
func New(src evalreport.Source, opts evalreport.Options) *Server {
	s := &Server{
		src:      src,
		opts:     opts,
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evalboard_report_loads_total",
				Help: "Report loads performed while serving requests, by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "evalboard_report_load_duration_seconds",
				Help:    "Time spent loading and validating the report",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
	}
	s.registry.MustRegister(s.loads, s.duration)
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /api/overview", s.withOverview(s.handleOverview))
	mux.HandleFunc("GET /api/categories", s.withOverview(s.handleCategories))
	mux.HandleFunc("GET /api/failures", s.withOverview(s.handleFailures))
	mux.HandleFunc("GET /api/views", s.withOverview(s.handleViews))
	mux.HandleFunc("GET /api/views/{name}", s.withOverview(s.handleView))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrResp{OK: false, Error: "not found: " + r.URL.Path})
	})
	return readOnly(mux)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.LogEvent("[HTTP] listening on %s (report=%s)", addr, s.src.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logging.LogEvent("[HTTP] shutting down %s", addr)
		return srv.Shutdown(shutdownCtx)
	}
}

// overview performs one isolated load and derives the dashboard figures.
func (s *Server) overview(ctx context.Context) evalreport.Overview {
	start := time.Now()
	o := evalreport.Load(ctx, s.src)
	s.duration.Observe(time.Since(start).Seconds())
	s.loads.WithLabelValues(o.Status()).Inc()
	return evalreport.BuildOverview(o, s.opts)
}

type overviewHandler func(ov evalreport.Overview, r *http.Request) (int, any)

func (s *Server) withOverview(h overviewHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ov := s.overview(r.Context())
		status, body := h(ov, r)
		writeJSON(w, status, body)
		logging.LogRequest(r.Method, r.URL.Path, status, ov.Available)
	}
}

func (s *Server) handleOverview(ov evalreport.Overview, _ *http.Request) (int, any) {
	return http.StatusOK, ov
}

func (s *Server) handleCategories(ov evalreport.Overview, _ *http.Request) (int, any) {
	return http.StatusOK, CategoriesResp{Snapshot: snapshot(ov), Categories: ov.Categories}
}

func (s *Server) handleFailures(ov evalreport.Overview, r *http.Request) (int, any) {
	preview := false
	if raw := r.URL.Query().Get("preview"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return http.StatusBadRequest, ErrResp{OK: false, Error: "invalid preview value: " + raw}
		}
		preview = v
	}
	failures := ov.Failures
	if preview {
		failures = ov.Preview
	}
	return http.StatusOK, FailuresResp{
		Snapshot: snapshot(ov),
		Preview:  preview,
		Count:    len(failures),
		Failures: failures,
	}
}

func (s *Server) handleViews(ov evalreport.Overview, _ *http.Request) (int, any) {
	return http.StatusOK, ViewsResp{Snapshot: snapshot(ov), Views: ov.Views}
}

func (s *Server) handleView(ov evalreport.Overview, r *http.Request) (int, any) {
	name := r.PathValue("name")
	rule, ok := evalreport.LookupView(s.views(), name)
	if !ok {
		return http.StatusNotFound, ErrResp{OK: false, Error: "unknown view: " + name}
	}
	view, _ := ov.View(rule.Name)
	return http.StatusOK, ViewResp{Snapshot: snapshot(ov), View: view}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ov := s.overview(r.Context())
	page, err := render.HTML(ov)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrResp{OK: false, Error: err.Error()})
		logging.LogRequest(r.Method, r.URL.Path, http.StatusInternalServerError, ov.Available)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
	logging.LogRequest(r.Method, r.URL.Path, http.StatusOK, ov.Available)
}

func (s *Server) views() []evalreport.Rule {
	if s.opts.Views == nil {
		return evalreport.DefaultViews()
	}
	return s.opts.Views
}

func snapshot(ov evalreport.Overview) Snapshot {
	return Snapshot{Available: ov.Available, Source: ov.Source, Reason: ov.Reason}
}

// readOnly rejects every method other than GET and HEAD.
func readOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeJSON(w, http.StatusMethodNotAllowed, ErrResp{OK: false, Error: "method not allowed: " + r.Method})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
