// Package preview serves the output directory over HTTP and rebuilds the site
// whenever an input file changes. Browsers reload through a server-sent events
// endpoint; nothing preview-specific is written to the output directory.
package preview

import (
	"context"
	stderrors "errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/photofolio/internal/build"
	"git.home.luguber.info/inful/photofolio/internal/config"
	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
	"git.home.luguber.info/inful/photofolio/internal/logfields"
	"git.home.luguber.info/inful/photofolio/internal/metrics"
)

const (
	MetricsPath     = "/metrics"
	shutdownTimeout = 5 * time.Second
)

// buildStatus tracks the outcome of the latest build for error display.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	hasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) setSuccess() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.hasGoodBuild = true
}

func (bs *buildStatus) getStatus() (hasError bool, err error, hasGoodBuild bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError != nil, bs.lastError, bs.hasGoodBuild
}

// Server rebuilds the site and serves the result.
type Server struct {
	cfg      *config.Config
	gen      *build.Generator
	status   buildStatus
	hub      *LiveReloadHub
	registry *prom.Registry
	errs     *errors.HTTPErrorAdapter
}

// New creates a preview server for cfg. Build metrics are collected only when
// preview.metrics is enabled.
func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:  cfg,
		gen:  build.NewGenerator(cfg),
		hub:  NewLiveReloadHub(),
		errs: errors.NewHTTPErrorAdapter(nil),
	}
	if cfg.Preview.Metrics {
		s.registry = metrics.NewRegistry()
		s.gen.WithRecorder(metrics.NewPrometheusRecorder(s.registry))
	}
	return s
}

// Rebuild runs a full build, records the result and notifies connected
// browsers. A build canceled by ctx leaves the previous status in place.
func (s *Server) Rebuild(ctx context.Context) error {
	report, err := s.gen.Generate(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		s.status.setError(err)
		s.hub.Broadcast(fmt.Sprintf("error:%d", time.Now().UnixNano()))
		return err
	}
	s.status.setSuccess()
	s.hub.Broadcast(report.BuildID)
	return nil
}

// Handler routes the live reload endpoints, optional metrics and the site.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(LiveReloadPath, s.hub)
	mux.HandleFunc(LiveReloadScriptPath, serveLiveReloadScript)
	if s.registry != nil {
		mux.Handle(MetricsPath, metrics.HTTPHandler(s.registry))
	}
	site := http.FileServer(http.Dir(s.cfg.Paths.Output))
	mux.Handle("/", withLiveReload(s.guard(site)))
	return mux
}

// guard replaces the site with the build error while the latest build is
// broken. The output directory may be half written in that state.
func (s *Server) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasErr, err, _ := s.status.getStatus()
		if !hasErr {
			next.ServeHTTP(w, r)
			return
		}
		if isHTMLRequest(r.URL.Path) {
			s.writeErrorPage(w, r, err)
			return
		}
		s.errs.WriteErrorResponse(w, r, err)
	})
}

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Build failed</title>
<style>body{font-family:system-ui,sans-serif;margin:3rem;color:#222}pre{background:#f4f4f4;padding:1rem;overflow:auto}dt{font-weight:600}</style>
</head>
<body>
<h1>Build failed</h1>
<p>{{with .Code}}<code>{{.}}</code> {{end}}{{.Error}}</p>
{{with .Cause}}<pre>{{.}}</pre>{{end}}
{{with .Details}}<dl>{{range $k, $v := .}}<dt>{{$k}}</dt><dd>{{$v}}</dd>{{end}}</dl>{{end}}
<p>This page reloads after the next successful build.</p>
{{.Script}}
</body>
</html>
`))

type errorView struct {
	errors.HTTPErrorResponse
	Script template.HTML
}

func (s *Server) writeErrorPage(w http.ResponseWriter, r *http.Request, err error) {
	view := errorView{
		HTTPErrorResponse: s.errs.FormatErrorResponse(err),
		Script:            template.HTML(scriptTag), //nolint:gosec // constant markup
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(s.errs.StatusCodeFor(err))
	if terr := errorPage.Execute(w, view); terr != nil {
		slog.Debug("failed to write error page", logfields.Path(r.URL.Path), logfields.Error(terr))
	}
}

// Run builds the site, serves it on cfg.Preview.Addr and rebuilds on input
// changes until ctx is canceled. A failing initial build does not stop the
// server; the error is shown in the browser instead.
func Run(ctx context.Context, cfg *config.Config) error {
	s := New(cfg)
	if err := s.Rebuild(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		slog.Error("Initial build failed", logfields.Error(err))
	}

	ln, err := net.Listen("tcp", cfg.Preview.Addr)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to start preview server").
			WithContext("addr", cfg.Preview.Addr).
			Build()
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if serr := srv.Serve(ln); serr != nil && !stderrors.Is(serr, http.ErrServerClosed) {
			slog.Error("Preview server stopped", logfields.Error(serr))
		}
	}()
	slog.Info("Preview server listening", logfields.URL("http://"+ln.Addr().String()))

	absOut, err := filepath.Abs(cfg.Paths.Output)
	if err != nil {
		absOut = cfg.Paths.Output
	}
	watcher, err := setupFileWatcher(watchRoots(cfg), absOut)
	if err != nil {
		_ = srv.Close()
		return err
	}
	defer func() { _ = watcher.Close() }()

	rebuildReq, trigger := setupRebuildDebouncer(time.Duration(cfg.Preview.DebounceMS) * time.Millisecond)
	s.startRebuildWorker(ctx, rebuildReq)

	return s.runPreviewLoop(ctx, watcher, absOut, trigger, srv)
}

// startRebuildWorker processes rebuild requests one at a time. rebuildReq
// buffers a single request, so changes made during a build schedule exactly
// one follow-up build.
func (s *Server) startRebuildWorker(ctx context.Context, rebuildReq <-chan struct{}) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				slog.Info("Change detected; rebuilding site")
				if err := s.Rebuild(ctx); err != nil && ctx.Err() == nil {
					slog.Warn("Rebuild failed", logfields.Error(err))
				}
			}
		}
	}()
}

func (s *Server) runPreviewLoop(ctx context.Context, watcher *fsnotify.Watcher, skip string, trigger func(), srv *http.Server) error {
	for {
		select {
		case <-ctx.Done():
			return s.handleShutdown(srv)
		case ev, ok := <-watcher.Events:
			if !ok {
				return s.handleShutdown(srv)
			}
			handleFileEvent(watcher, ev, skip, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return s.handleShutdown(srv)
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// handleShutdown closes live reload streams first; the HTTP server waits for
// open connections and the streams would otherwise hold it until the timeout.
func (s *Server) handleShutdown(srv *http.Server) error {
	slog.Info("Shutting down preview server")
	s.hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}
