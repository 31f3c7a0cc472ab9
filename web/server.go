// Package web serves the read-only shuttle timetable dashboard.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"shuttleboard/internal/metrics"
	"shuttleboard/timetable"
)

//go:embed templates/*.html
var templateFS embed.FS

const loadingRefreshSeconds = 2

type ServerConfig struct {
	Columns    Columns
	Logger     *zerolog.Logger
	Registerer prometheus.Registerer
}

type Server struct {
	loader  *Loader
	columns Columns
	log     zerolog.Logger
	latency *prometheus.SummaryVec
	mux     *http.ServeMux
}

type timetableResponse struct {
	View      string     `json:"view"`
	Loading   bool       `json:"loading"`
	Error     string     `json:"error,omitempty"`
	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"rows"`
	FetchedAt string     `json:"fetchedAt,omitempty"`
}

type dashboardPageView struct {
	PageView
	RefreshSeconds int
	ReloadAction   string
}

func NewServer(loader *Loader, cfg ServerConfig) (*Server, error) {
	latency, err := metrics.Register(cfg.Registerer, prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: "dashboard_request_seconds",
		Help: "Time spent serving dashboard requests",
	}, []string{"route"}))
	if err != nil {
		return nil, fmt.Errorf("register request metrics: %w", err)
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	server := &Server{
		loader:  loader,
		columns: cfg.Columns,
		log:     logger,
		latency: latency,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.timed("page", server.handlePage))
	mux.HandleFunc("GET /api/timetable", server.timed("api", server.handleAPITimetable))
	mux.HandleFunc("POST /reload", server.timed("reload", server.handleReload))
	mux.HandleFunc("GET /healthz", server.handleHealth)
	server.mux = mux

	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) timed(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		defer func() {
			elapsed := time.Since(started)
			s.latency.WithLabelValues(route).Observe(elapsed.Seconds())
			s.log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("elapsed", elapsed).
				Msg("request served")
		}()
		next(w, r)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	view, term, err := parseQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := dashboardPageView{
		PageView:     BuildPageView(s.loader.Snapshot(), view, term, s.columns),
		ReloadAction: "/reload?" + r.URL.RawQuery,
	}
	if page.Loading {
		page.RefreshSeconds = loadingRefreshSeconds
	}

	if err := renderTemplate(w, "dashboard.html", page); err != nil {
		s.log.Error().Err(err).Msg("render dashboard")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAPITimetable(w http.ResponseWriter, r *http.Request) {
	view, term, err := parseQuery(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	page := BuildPageView(s.loader.Snapshot(), view, term, s.columns)
	response := timetableResponse{
		View:      string(view),
		Loading:   page.Loading,
		Error:     page.Error,
		Headers:   page.Headers,
		Rows:      make([][]string, 0, len(page.Rows)),
		FetchedAt: page.FetchedAt,
	}
	if response.Headers == nil {
		response.Headers = []string{}
	}
	for _, row := range page.Rows {
		values := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			values[i] = cell.Value
		}
		response.Rows = append(response.Rows, values)
	}

	status := http.StatusOK
	if response.Error != "" {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, response)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if !s.loader.Reload() {
		s.log.Debug().Msg("reload skipped, fetch already running")
	}

	target := "/"
	if view, term, err := parseQuery(r.URL.Query()); err == nil {
		target = pageHref(view, term)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func parseQuery(query url.Values) (timetable.View, string, error) {
	view, err := timetable.ParseView(query.Get("view"))
	if err != nil {
		return "", "", err
	}
	return view, query.Get("q"), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}
