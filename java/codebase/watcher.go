package codebase

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// FileWatcher polls the classpath and reloads the codebase when an entry
// appears, disappears or is modified.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	stamps       map[string]stamp
	primed       bool
}

// stamp summarizes a classpath entry: for directories, the newest class
// file and the number of class files.
type stamp struct {
	modTime time.Time
	count   int
}

func NewFileWatcher(c *Codebase) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		stamps:       make(map[string]stamp),
	}
}

func (w *FileWatcher) Start() {
	w.Changed()
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if !w.Changed() {
				continue
			}
			log.Infof("classpath changed, reloading")
			if err := w.codebase.Load(context.Background()); err != nil {
				log.Errorf("reloading classpath: %s", err)
			}
		}
	}
}

// Changed records the current state of every classpath entry and reports
// whether it differs from the previous call. The first call only records.
func (w *FileWatcher) Changed() bool {
	current := make(map[string]stamp)
	for _, p := range w.codebase.Paths() {
		if s, ok := stampOf(p); ok {
			current[p] = s
		}
	}

	changed := len(current) != len(w.stamps)
	for p, s := range current {
		if old, ok := w.stamps[p]; !ok || !old.modTime.Equal(s.modTime) || old.count != s.count {
			changed = true
		}
	}
	w.stamps = current
	if !w.primed {
		w.primed = true
		return false
	}
	return changed
}

func stampOf(p string) (stamp, bool) {
	info, err := os.Stat(p)
	if err != nil {
		return stamp{}, false
	}
	if !info.IsDir() {
		return stamp{modTime: info.ModTime(), count: 1}, true
	}

	var s stamp
	filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != p && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".class" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		s.count++
		s.modTime = slices.MaxFunc([]time.Time{s.modTime, info.ModTime()}, time.Time.Compare)
		return nil
	})
	return s, true
}
