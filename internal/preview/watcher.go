package preview

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/photofolio/internal/config"
	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
	"git.home.luguber.info/inful/photofolio/internal/logfields"
)

// watchRoots lists the input directories a rebuild depends on: content,
// locales, public and the stylesheet's directory. Missing directories are
// skipped.
func watchRoots(cfg *config.Config) []string {
	candidates := []string{
		cfg.Paths.Content,
		cfg.Paths.Locales,
		cfg.Paths.Public,
		filepath.Dir(cfg.Paths.Stylesheet),
	}
	seen := map[string]bool{}
	var roots []string
	for _, c := range candidates {
		if c == "" {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil || seen[abs] {
			continue
		}
		if st, err := os.Stat(abs); err != nil || !st.IsDir() {
			slog.Debug("not watching missing directory", logfields.Path(abs))
			continue
		}
		seen[abs] = true
		roots = append(roots, abs)
	}
	return roots
}

// setupFileWatcher creates a watcher over roots. Directories inside skip (the
// output directory) are never watched so writing the site cannot retrigger a
// build.
func setupFileWatcher(roots []string, skip string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	for _, root := range roots {
		addDirsRecursive(watcher, root, skip)
	}
	return watcher, nil
}

func addDirsRecursive(w *fsnotify.Watcher, root, skip string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if skip != "" && isWithin(path, skip) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// setupRebuildDebouncer returns the rebuild request channel and a trigger that
// coalesces calls arriving within delay into one request.
func setupRebuildDebouncer(delay time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

// handleFileEvent triggers a rebuild for relevant events and starts watching
// newly created directories.
func handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, skip string, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op == fsnotify.Chmod {
		return
	}
	if skip != "" && isWithin(ev.Name, skip) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(watcher, ev.Name, skip)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

// shouldIgnoreEvent returns true for hidden, editor swap and OS metadata files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")) {
		return true
	}
	return base == "Thumbs.db"
}
