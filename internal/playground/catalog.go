package playground

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/formkit/pkg/formspec"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// reloadDebounce coalesces the bursts of write events editors produce.
const reloadDebounce = 200 * time.Millisecond

// CatalogSource holds the active rule catalog. Pages opened after a reload
// use the new catalog; existing sessions keep the one they were built with.
type CatalogSource struct {
	path    string
	log     *slog.Logger
	current atomic.Pointer[formspec.Catalog]
	hooks   []func(error)
}

// NewCatalogSource loads the catalog at path, or the built-in catalog when
// path is empty. hooks observe every reload attempt.
func NewCatalogSource(path string, log *slog.Logger, hooks ...func(error)) (*CatalogSource, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &CatalogSource{
		path:  path,
		log:   log.With(logger.Component("catalog")),
		hooks: hooks,
	}
	if path == "" {
		s.current.Store(formspec.Default())
		return s, nil
	}
	c, err := formspec.LoadFile(path)
	if err != nil {
		return nil, err
	}
	s.current.Store(c)
	return s, nil
}

// Catalog returns the active catalog.
func (s *CatalogSource) Catalog() *formspec.Catalog { return s.current.Load() }

// Path returns the watched file, "" for the built-in catalog.
func (s *CatalogSource) Path() string { return s.path }

// Reload re-reads the catalog file. On failure the active catalog is kept
// and the error is wrapped with ErrCatalogReload.
func (s *CatalogSource) Reload() error {
	if s.path == "" {
		return nil
	}
	c, err := formspec.LoadFile(s.path)
	if err != nil {
		err = errors.Join(ErrCatalogReload, err)
		s.log.Warn("catalog reload failed, keeping previous rules", logger.Error(err))
	} else {
		s.current.Store(c)
		s.log.Info("catalog reloaded",
			slog.String("path", s.path),
			slog.Int("forms", len(c.Forms)),
			slog.Int("tables", len(c.Tables)))
	}
	for _, h := range s.hooks {
		h(err)
	}
	return err
}

// Watch reloads the catalog whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file by
// rename are picked up too.
func (s *CatalogSource) Watch(ctx context.Context) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(s.path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	s.log.Debug("watching catalog", slog.String("path", target))

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				fire = time.After(reloadDebounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Error("catalog watcher error", logger.Error(err))
		case <-fire:
			fire = nil
			_ = s.Reload()
		}
	}
}
