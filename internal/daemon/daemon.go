package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"langengine/internal/api"
	"langengine/internal/config"
	"langengine/internal/engine"
	"langengine/internal/language"
	"langengine/internal/logging"
	"langengine/internal/store"
)

// ErrAlreadyRunning reports that another daemon holds the instance lock.
var ErrAlreadyRunning = errors.New("another langengine daemon instance is already running")

// Daemon owns the shared engine and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	engine *engine.Engine
	store  store.Store

	lockPath string
	lock     *flock.Flock

	mu        sync.Mutex
	running   atomic.Bool
	watching  atomic.Bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	http      *httpServer

	infoMu    sync.RWMutex
	httpAddr  string
	startedAt time.Time
}

// New constructs a daemon around an engine and the store it persists to.
func New(cfg *config.Config, st store.Store, eng *engine.Engine, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil || eng == nil {
		return nil, errors.New("daemon requires config, store, and engine")
	}

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		engine:   eng,
		store:    st,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock, starts the store watcher for file stores,
// and serves the HTTP API when configured. Starting a running daemon is a no-op.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running.Load() {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(d.lockPath), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)

	if fileStore, ok := d.store.(*store.File); ok {
		if err := d.startWatcher(runCtx, fileStore.Path()); err != nil {
			logging.WarnWithContext(d.logger, "store watcher unavailable", "store_watch_failed",
				logging.String("path", fileStore.Path()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "edits from other processes will not be picked up until restart"))
		}
	}

	srv, err := newHTTPServer(d.cfg, d, d.logger)
	if err == nil {
		err = srv.start(runCtx)
	}
	if err != nil {
		cancel()
		d.wg.Wait()
		_ = d.lock.Unlock()
		return fmt.Errorf("start http api: %w", err)
	}

	d.http = srv
	d.cancel = cancel
	d.infoMu.Lock()
	d.httpAddr = srv.addr()
	d.startedAt = time.Now()
	d.infoMu.Unlock()
	d.running.Store(true)
	d.logger.Info("langengine daemon started",
		logging.String("lock", d.lockPath),
		logging.String("store", d.store.Describe()),
		logging.String(logging.FieldLanguage, d.engine.CurrentLanguage()),
		logging.String(logging.FieldEventType, "daemon_started"))
	return nil
}

// Stop shuts down the listeners and watcher and releases the daemon lock.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.http.stop()
	d.http = nil
	d.wg.Wait()
	d.infoMu.Lock()
	d.httpAddr = ""
	d.infoMu.Unlock()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock",
			logging.Error(err),
			logging.String(logging.FieldEventType, "daemon_unlock_failed"),
			logging.String(logging.FieldErrorHint, "remove "+d.lockPath+" if the next start reports a running instance"))
	}
	d.running.Store(false)
	d.logger.Info("langengine daemon stopped", logging.String(logging.FieldEventType, "daemon_stopped"))
}

// Close stops the daemon and closes its store.
func (d *Daemon) Close() error {
	d.Stop()
	return d.store.Close()
}

// CurrentLanguage returns the active code.
func (d *Daemon) CurrentLanguage() string {
	return d.engine.CurrentLanguage()
}

// SetLanguage changes the active code through the engine.
func (d *Daemon) SetLanguage(ctx context.Context, code string) (engine.ChangeEvent, error) {
	return d.engine.Set(ctx, code)
}

// HTTPAddr returns the bound HTTP API address, or "" when it is not serving.
func (d *Daemon) HTTPAddr() string {
	d.infoMu.RLock()
	defer d.infoMu.RUnlock()
	return d.httpAddr
}

// Status returns the current daemon status.
func (d *Daemon) Status(context.Context) api.DaemonStatus {
	code := d.engine.CurrentLanguage()
	status := api.DaemonStatus{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		Language:     code,
		Store:        d.store.Describe(),
		Validate:     d.cfg.Language.ValidateCodes,
		Watching:     d.watching.Load(),
		LockFilePath: d.lockPath,
		SocketPath:   d.cfg.Paths.Socket,
		HTTPAddr:     d.HTTPAddr(),
	}
	if code != "" {
		status.Description = language.Describe(code)
	}
	if status.Running {
		d.infoMu.RLock()
		status.StartedAt = api.FormatTime(d.startedAt)
		d.infoMu.RUnlock()
	}
	return status
}
