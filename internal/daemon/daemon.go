package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"saleslens/internal/api"
	"saleslens/internal/config"
	"saleslens/internal/insights"
	"saleslens/internal/logging"
	"saleslens/internal/services/reasoning"
	"saleslens/internal/store"
	"saleslens/internal/timeline"
)

// Daemon owns the single-instance lock and the HTTP façade.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store

	lockPath string
	lock     *flock.Flock

	listener net.Listener
	server   *http.Server

	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, and logger")
	}

	builder := timeline.NewBuilder(st, logger)
	client := reasoning.NewClient(reasoning.Config{
		APIKey:         cfg.Reasoning.APIKey,
		BaseURL:        cfg.Reasoning.BaseURL,
		Model:          cfg.Reasoning.Model,
		TimeoutSeconds: cfg.Reasoning.TimeoutSeconds,
	})
	pipeline := insights.NewPipeline(st, builder, client, logger)
	apiServer := api.NewServer(st, builder, pipeline, logger)

	lockPath := filepath.Join(cfg.Paths.LogDir, "saleslensd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    st,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
		server: &http.Server{
			Handler:           apiServer.Router(),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      3 * time.Minute,
			IdleTimeout:       60 * time.Second,
		},
	}, nil
}

// Start acquires the instance lock and begins serving the façade. It
// returns once the listener is up; Serve runs in the background until the
// supplied context is cancelled or Stop is called.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another saleslens daemon instance is already running")
	}

	listener, err := net.Listen("tcp", d.cfg.Paths.APIBind)
	if err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("api listen: %w", err)
	}
	d.listener = listener

	serveCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go func() {
		if err := d.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.logger.Error("api server error", logging.Error(err))
		}
	}()
	go func() {
		<-serveCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = d.server.Shutdown(shutdownCtx)
	}()

	d.running.Store(true)
	d.logger.Info("saleslens daemon started",
		logging.String("address", listener.Addr().String()),
		logging.String("lock", d.lockPath),
	)
	return nil
}

// Addr returns the bound listener address, or empty when not running.
func (d *Daemon) Addr() string {
	if d.listener == nil {
		return ""
	}
	return d.listener.Addr().String()
}

// Stop shuts the server down and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = d.server.Shutdown(shutdownCtx)
	if d.listener != nil {
		_ = d.listener.Close()
		d.listener = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("saleslens daemon stopped")
}

// Close stops the daemon and closes the store.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}
