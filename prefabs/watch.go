package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher reports changed prefab files by base name on Events. Repeated
// events for one file inside the debounce window are collapsed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	Events   chan string
	Errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// NewWatcher watches dirs, or Dir when none are given.
func NewWatcher(dirs ...string) (*Watcher, error) {
	if len(dirs) == 0 {
		dirs = []string{Dir}
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher:  fw,
		debounce: defaultDebounce,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// Drain returns every pending change without blocking, deduplicated.
// It is meant to be called once per frame.
func (w *Watcher) Drain() []string {
	if w == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return out
			}
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		default:
			return out
		}
	}
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	mods := make(modTimes)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isSpecFile(event.Name) {
				continue
			}
			name := filepath.Base(event.Name)
			mod, exists := statModTime(event.Name)
			if !mods.changed(name, mod, exists) {
				continue
			}
			now := time.Now()
			if t, ok := last[name]; ok && now.Sub(t) < w.debounce {
				continue
			}
			last[name] = now
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// modTimes remembers the last modification time seen per file, so events
// that leave the content untouched are dropped.
type modTimes map[string]time.Time

func (m modTimes) changed(name string, mod time.Time, exists bool) bool {
	if !exists {
		delete(m, name)
		return true
	}
	if prev, ok := m[name]; ok && prev.Equal(mod) {
		return false
	}
	m[name] = mod
	return true
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// IsEngineSpec reports whether a change to name affects engine.Config.
func IsEngineSpec(name string) bool {
	switch filepath.Base(name) {
	case "world.yaml", "wall.yaml", "ball.yaml", "boundary.yaml":
		return true
	}
	return false
}
