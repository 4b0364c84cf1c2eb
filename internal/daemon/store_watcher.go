package daemon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"langengine/internal/logging"
)

// reloadDebounce coalesces the burst of events an editor or an atomic
// replace produces into one reload.
const reloadDebounce = 150 * time.Millisecond

// startWatcher watches the directory holding path. Atomic replaces swap the
// inode, so watching the file itself would stop after the first write.
func (d *Daemon) startWatcher(ctx context.Context, path string) error {
	target := filepath.Clean(path)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	d.watching.Store(true)
	d.wg.Add(1)
	go d.watchStore(ctx, watcher, target)
	d.logger.Debug("watching store for external edits", logging.String("path", target))
	return nil
}

func (d *Daemon) watchStore(ctx context.Context, watcher *fsnotify.Watcher, target string) {
	defer d.wg.Done()
	defer d.watching.Store(false)
	defer watcher.Close()

	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(reloadDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.WarnWithContext(d.logger, "store watcher error", "store_watch_error",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "restart the daemon if external edits stop being picked up"))
		case <-timer.C:
			d.reloadFromStore(ctx)
		}
	}
}

func (d *Daemon) reloadFromStore(ctx context.Context) {
	event, err := d.engine.Reload(ctx)
	if err != nil {
		logging.WarnWithContext(d.logger, "store reload failed", "store_reload_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the settings file for syntax errors"))
		return
	}
	if event.Changed {
		d.logger.Debug("store change applied",
			logging.String(logging.FieldCorrelationID, event.ID),
			logging.String(logging.FieldLanguage, event.Current))
	}
}
