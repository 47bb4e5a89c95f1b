package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mchmarny/markingmenu/pkg/logger"
	"github.com/mchmarny/markingmenu/pkg/menu"
	"github.com/mchmarny/markingmenu/pkg/metric"
	"github.com/mchmarny/markingmenu/pkg/replay"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = 9876

	// DefaultReadTimeout is the maximum duration for reading the entire request,
	// including a replay body.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the maximum duration to wait for active connections
	// to close during shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxHeaderBytes limits the size of request headers.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB

	// DefaultMaxReplayBytes limits the size of a posted recording.
	DefaultMaxReplayBytes = 1 << 20 // 1 MB
)

// Server publishes a marking menu over HTTP: the menu tree, gesture replay,
// metrics and health. Implementations must support graceful shutdown via
// context cancellation.
type Server interface {
	// Serve starts the HTTP server and blocks until the context is canceled.
	// Returns nil on graceful shutdown.
	Serve(ctx context.Context) error

	// IsRunning returns true once the socket is bound and until the server stops.
	// Safe for concurrent use.
	IsRunning() bool

	// Handler returns the request multiplexer, for in-process use.
	Handler() http.Handler
}

// server is the internal implementation of the Server interface.
type server struct {
	mux             *http.ServeMux       // HTTP request multiplexer
	port            int                  // Port to listen on
	readTimeout     time.Duration        // Maximum duration for reading requests
	writeTimeout    time.Duration        // Maximum duration for writing responses
	idleTimeout     time.Duration        // Maximum idle time for keep-alive connections
	shutdownTimeout time.Duration        // Grace period for shutdown
	maxHeaderBytes  int                  // Maximum header size in bytes
	errLog          *log.Logger          // HTTP server error log
	tlsConfig       *TLSConfig           // Optional TLS configuration
	mu              sync.RWMutex         // Protects running state
	running         bool                 // Indicates if server is currently running
	registry        *prometheus.Registry // Registry served at /metrics
}

// TLSConfig contains the certificate and key file paths for TLS/HTTPS support.
type TLSConfig struct {
	CertFile string // Path to the TLS certificate file
	KeyFile  string // Path to the TLS private key file
}

// Option is a functional option for configuring the Server.
type Option func(*server)

// WithPort sets the port number for the HTTP server.
// If not specified, DefaultPort (9876) is used.
func WithPort(port int) Option {
	return func(s *server) { s.port = port }
}

// WithReadTimeout sets the maximum duration for reading the entire request.
// Zero keeps DefaultReadTimeout.
func WithReadTimeout(d time.Duration) Option {
	return func(s *server) {
		if d > 0 {
			s.readTimeout = d
		}
	}
}

// WithWriteTimeout sets the maximum duration before timing out writes of the response.
// Zero keeps DefaultWriteTimeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *server) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// WithShutdownTimeout sets the maximum duration to wait for graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *server) { s.shutdownTimeout = d }
}

// WithHandler registers a custom HTTP handler for the specified pattern.
func WithHandler(pattern string, handler http.Handler) Option {
	return func(s *server) {
		s.mux.Handle(pattern, handler)
	}
}

// WithRegistry replaces the server's Prometheus registry. Use it to serve
// counters registered elsewhere, e.g. by a menu session.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *server) { s.registry = reg }
}

// WithMetrics exposes the server's registry at /metrics.
// Apply it after WithRegistry.
func WithMetrics() Option {
	return func(s *server) {
		s.mux.Handle("GET /metrics", metric.GetHandlerForRegistry(s.registry))
	}
}

// WithSimpleHealth adds a health check endpoint at /healthz that always returns 200 OK.
//
// The endpoint returns:
//   - 200 OK with body "ok"
func WithSimpleHealth() Option {
	return func(s *server) {
		s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
	}
}

// WithMenu serves the menu tree as JSON at the root path.
func WithMenu(tree *menu.Tree) Option {
	return func(s *server) {
		s.mux.Handle("GET /{$}", tree.Handler())
	}
}

// WithReplay accepts recorded gestures at POST /replay and runs them against
// root. Gesture events of every replay are counted in the server registry.
//
// Example:
//
//	curl -X POST -H 'Content-Type: application/yaml' \
//	    --data-binary @gesture.yaml localhost:9876/replay
func WithReplay(root *menu.Node, opts replay.Options) Option {
	return func(s *server) {
		if opts.Recorder == nil {
			opts.Recorder = metric.NewGestureCounters(s.registry)
		}
		s.mux.Handle("POST /replay", replayHandler(root, opts))
	}
}

// WithTLS configures the server to use TLS/HTTPS with the provided certificate and key files.
//
// Example:
//
//	srv := New(
//	    WithPort(8443),
//	    WithTLS(server.TLSConfig{
//	        CertFile: "/path/to/cert.pem",
//	        KeyFile:  "/path/to/key.pem",
//	    }),
//	)
func WithTLS(cfg TLSConfig) Option {
	return func(s *server) {
		s.tlsConfig = &cfg
	}
}

// New creates a new HTTP server with the provided options. Options are
// applied in order, so WithRegistry must come before options that register
// counters.
//
// Example:
//
//	srv := server.New(
//	    server.WithPort(9876),
//	    server.WithMenu(tree),
//	    server.WithReplay(tree.Root, replay.DefaultOptions()),
//	    server.WithMetrics(),
//	    server.WithSimpleHealth(),
//	)
func New(opts ...Option) Server {
	s := &server{
		port:            DefaultPort,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		mux:             http.NewServeMux(),
		registry:        prometheus.NewRegistry(),
		errLog:          logger.NewLogLogger(slog.LevelError, false),
	}

	for _, opt := range opts {
		opt(s)
	}

	slog.Info("server initialized",
		"port", s.port,
		"read_timeout", s.readTimeout,
		"write_timeout", s.writeTimeout)

	return s
}

// Handler returns the request multiplexer.
func (s *server) Handler() http.Handler {
	return s.mux
}

// IsRunning returns true if the server is currently running and accepting connections.
func (s *server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.running
}

func (s *server) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}

// listen binds the socket, wrapping it with TLS when configured.
func (s *server) listen(addr string) (net.Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create listener: %w", err)
	}

	if s.tlsConfig == nil {
		slog.Info("starting server", "addr", addr)
		return listener, nil
	}

	cert, err := tls.LoadX509KeyPair(s.tlsConfig.CertFile, s.tlsConfig.KeyFile)
	if err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	slog.Info("starting TLS server", "addr", addr)

	return tls.NewListener(listener, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}

// Serve starts the HTTP server and blocks until the context is canceled or
// an error occurs. One errgroup goroutine serves, the other waits for
// cancellation and shuts the server down within the shutdown timeout.
// http.ErrServerClosed is not reported as an error.
func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", s.port),
		Handler:        s.mux,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       s.errLog,
	}

	listener, err := s.listen(srv.Addr)
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.setRunning(true)
		defer s.setRunning(false)

		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server", "grace_period", s.shutdownTimeout)
		start := time.Now()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		slog.Info("server shutdown complete", "duration", time.Since(start))

		return nil
	})

	return g.Wait()
}
