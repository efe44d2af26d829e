// Package watch regenerates reports when scan exports land in an inbox
// directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 2 * time.Second

const (
	KindPicking = "picking"
	KindPacking = "packing"
)

// Pair is the newest picking and packing export of a directory. Either may be empty.
type Pair struct {
	Picking string
	Packing string
}

func (p Pair) Empty() bool {
	return p.Picking == "" && p.Packing == ""
}

// Watcher calls OnChange once writes to export files in Dir settle for Debounce.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	Logger   *zap.Logger
	OnChange func(ctx context.Context, pair Pair) error
}

// Kind classifies a file name as a picking or packing export, or "".
// Spreadsheet lock files and generated reports never match.
func Kind(name string) string {
	lower := strings.ToLower(filepath.Base(name))
	if strings.HasPrefix(lower, "~$") || strings.HasPrefix(lower, ".") {
		return ""
	}
	switch filepath.Ext(lower) {
	case ".xlsx", ".xlsm", ".csv":
	default:
		return ""
	}
	switch {
	case strings.HasPrefix(lower, KindPicking):
		return KindPicking
	case strings.HasPrefix(lower, KindPacking):
		return KindPacking
	}
	return ""
}

// Latest returns the most recently modified export of each kind in dir.
func Latest(dir string) (Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Pair{}, fmt.Errorf("reading %s: %w", dir, err)
	}

	var pair Pair
	var pickTime, packTime time.Time
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		kind := Kind(e.Name())
		if kind == "" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(dir, e.Name())
		switch {
		case kind == KindPicking && (pair.Picking == "" || info.ModTime().After(pickTime)):
			pair.Picking, pickTime = path, info.ModTime()
		case kind == KindPacking && (pair.Packing == "" || info.ModTime().After(packTime)):
			pair.Packing, packTime = path, info.ModTime()
		}
	}
	return pair, nil
}

// Run watches until ctx is cancelled. Failures of OnChange are logged and
// the loop keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.Logger
	if log == nil {
		log = zap.NewNop()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(w.Dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.Dir, err)
	}
	log.Info("watching for exports", zap.String("dir", w.Dir), zap.Duration("debounce", debounce))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if Kind(event.Name) == "" {
				continue
			}
			log.Debug("export changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			pair, err := Latest(w.Dir)
			if err != nil {
				log.Warn("scanning inbox", zap.Error(err))
				continue
			}
			if pair.Empty() {
				continue
			}
			if err := w.OnChange(ctx, pair); err != nil {
				log.Warn("regenerating report", zap.Error(err),
					zap.String("picking", pair.Picking), zap.String("packing", pair.Packing))
			}
		case <-ctx.Done():
			return nil
		}
	}
}
