package batch

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// debounce window for editors and network copies that write a file in
// several bursts.
const settleDelay = 500 * time.Millisecond

// Watch converts resources as they appear in the input directory, until stop
// is closed. Each event is handled like one batch item: failures are logged
// and watching continues.
func Watch(cfg Config, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("batch: watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.InputDir); err != nil {
		return fmt.Errorf("batch: watch %s: %w", cfg.InputDir, err)
	}
	log.Infof("watching %s", cfg.InputDir)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settleDelay)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch: %v", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".rrm") {
				continue
			}
			pending[ev.Name] = time.Now()
		case now := <-ticker.C:
			for path, seen := range pending {
				if now.Sub(seen) < settleDelay {
					continue
				}
				delete(pending, path)
				res := ProcessFile(cfg, path)
				if res.Error != "" {
					log.Errorf("%s: %s", res.Name, res.Error)
				} else {
					log.Infof("%s → %s (verts=%d tris=%d uv=%v)",
						res.Name, res.OutputFile, res.Vertices, res.Triangles, res.HasUV)
				}
			}
		}
	}
}
