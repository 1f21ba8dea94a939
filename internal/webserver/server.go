// Package webserver serves the citygraph HTTP API, the event websocket and the
// frontend's static files.
package webserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/hub"
	"github.com/psidex/citygraph/internal/logger"
	"github.com/psidex/citygraph/internal/store"
)

type Options struct {
	// StaticDir is served at /. Empty serves nothing there.
	StaticDir       string
	SavePerMinute   int
	ImportPerMinute int
	MaxUploadBytes  int64
}

type Server struct {
	store *store.Store
	hub   *hub.Hub
	opts  Options

	registry      *prometheus.Registry
	metrics       *metrics
	saveLimiter   *rate.Limiter
	importLimiter *rate.Limiter
	log           *zap.SugaredLogger

	// now is replaced in tests.
	now func() time.Time
}

func New(st *store.Store, h *hub.Hub, o Options) *Server {
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = 32 << 20
	}
	reg := prometheus.NewRegistry()
	return &Server{
		store:         st,
		hub:           h,
		opts:          o,
		registry:      reg,
		metrics:       newMetrics(reg, h.Clients),
		saveLimiter:   newLimiter(o.SavePerMinute),
		importLimiter: newLimiter(o.ImportPerMinute),
		log:           logger.Named("webserver"),
		now:           time.Now,
	}
}

// Handler returns the complete route table wrapped in the request middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/import-map", s.handleImportMap)
	mux.HandleFunc("GET /api/graph/{id}", s.handleGraph)
	mux.HandleFunc("GET /api/graph/{id}/export/{format}", s.handleExport)
	mux.HandleFunc("POST /api/graph/save", s.limit("save", s.saveLimiter, s.handleSave))
	mux.HandleFunc("POST /api/graph/normalize", s.handleNormalize)
	mux.HandleFunc("GET /api/text/{gid}/{tid}", s.handleText)
	mux.HandleFunc("POST /api/highlight", s.handleHighlight)
	mux.HandleFunc("POST /api/markdown", s.handleMarkdown)
	mux.HandleFunc("POST /api/import", s.limit("import", s.importLimiter, s.handleImport))

	mux.Handle("GET /ws", s.hub)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	if s.opts.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.opts.StaticDir)))
	}

	return s.instrument(mux)
}

// Serve runs the HTTP server on lis until ctx is cancelled, then shuts it down,
// giving in-flight requests a few seconds to finish.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("listening", logger.FieldAddress, lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
