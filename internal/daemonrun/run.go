package daemonrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"langengine/internal/config"
	"langengine/internal/daemon"
	"langengine/internal/ipc"
	"langengine/internal/langaccess"
	"langengine/internal/logging"
	"langengine/internal/preflight"
)

// PIDFileName is written inside the state directory while the daemon runs.
const PIDFileName = "langengine.pid"

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
}

// Run starts the langengine daemon and blocks until ctx is canceled or the
// process receives SIGINT or SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	level := strings.TrimSpace(opts.LogLevel)
	if level == "" {
		level = cfg.Logging.Level
	}
	logPath := logging.DaemonLogPath(cfg)
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stderr", logPath},
		Development: opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if failed := preflight.Failed(preflight.RunAll(cfg)); len(failed) > 0 {
		for _, result := range failed {
			logger.Error("preflight check failed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail),
				logging.String(logging.FieldEventType, "preflight_failed"),
				logging.String(logging.FieldErrorHint, "fix directory permissions or paths.state_dir"),
			)
		}
		return fmt.Errorf("preflight: %d check(s) failed", len(failed))
	}

	pidPath := filepath.Join(cfg.Paths.StateDir, PIDFileName)
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	eng, store, err := langaccess.NewEngine(signalCtx, cfg, logger)
	if err != nil {
		logger.Error("open language store", logging.Error(err))
		return err
	}

	d, err := daemon.New(cfg, store, eng, logger)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	ipcServer, err := ipc.NewServer(signalCtx, cfg.Paths.Socket, d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	logger.Info("langengine daemon ready",
		logging.String(logging.FieldEventType, "daemon_ready"),
		logging.String("socket", cfg.Paths.Socket),
		logging.String("log_path", logPath),
	)

	<-signalCtx.Done()
	logger.Info("langengine daemon shutting down")
	return nil
}

// ReadPIDFile returns the PID recorded in the state directory, or 0.
func ReadPIDFile(cfg *config.Config) int {
	if cfg == nil {
		return 0
	}
	data, err := os.ReadFile(filepath.Join(cfg.Paths.StateDir, PIDFileName))
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0
	}
	return pid
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
