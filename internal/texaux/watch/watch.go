// ============================================================================
// texrefs - LaTeX Cross-Reference Extractor
// ============================================================================
//
// Package:     watch
// Description: Re-runs extraction whenever the aux file changes
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package watch triggers a callback when a single file changes on disk.
//
// The parent directory is watched rather than the file itself because LaTeX
// recreates the aux file on every run. Bursts of events are debounced so
// the callback sees the finished file.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/texrefs/foundation/core/error"
	mdwlog "github.com/msto63/texrefs/foundation/core/log"
)

// DefaultDebounce is the quiet period after the last event before a run
const DefaultDebounce = 300 * time.Millisecond

// Handler is called once per debounced change
type Handler func(ctx context.Context) error

// Options configures a Watcher
type Options struct {
	Path       string
	Debounce   time.Duration
	RunOnStart bool
	Logger     *mdwlog.Logger
}

// Watcher calls a Handler after changes to one file. Handler calls never
// overlap.
type Watcher struct {
	path     string
	dir      string
	name     string
	debounce time.Duration
	onStart  bool
	handler  Handler
	logger   *mdwlog.Logger
}

// New creates a Watcher for opts.Path
func New(opts Options, handler Handler) (*Watcher, error) {
	if opts.Path == "" {
		return nil, mdwerror.New("watch path is required").WithCode(mdwerror.CodeInvalidInput)
	}
	if handler == nil {
		return nil, mdwerror.New("watch handler is required").WithCode(mdwerror.CodeInternal)
	}

	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "resolving watch path").
			WithCode(mdwerror.CodeInvalidInput).
			WithDetail("path", opts.Path)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.Discard()
	}

	return &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		name:     filepath.Base(abs),
		debounce: debounce,
		onStart:  opts.RunOnStart,
		handler:  handler,
		logger:   logger.WithName("watch").WithField("file", abs),
	}, nil
}

// Run watches until ctx is cancelled. Handler errors are logged and do not
// stop the watch. Run returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "creating file watcher").WithCode(mdwerror.CodeInternal)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return mdwerror.Wrap(err, "watching directory").
			WithCode(mdwerror.CodeNotFound).
			WithDetail("dir", w.dir)
	}

	w.logger.Info("watching for changes", mdwlog.Fields{"debounce": w.debounce.String()})

	if w.onStart {
		w.invoke(ctx, "start")
	}

	// Idle until the first event. Stop and Reset never leave a stale tick
	// in timer.C since Go 1.23.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping watch")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Trace("file event", mdwlog.Fields{"op": event.Op.String()})
			timer.Reset(w.debounce)

		case <-timer.C:
			w.invoke(ctx, "change")

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnWithErr("watcher error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != w.name {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write)
}

func (w *Watcher) invoke(ctx context.Context, reason string) {
	if ctx.Err() != nil {
		return
	}
	if err := w.handler(ctx); err != nil {
		w.logger.LogError(err)
		return
	}
	w.logger.Debug("run complete", mdwlog.Fields{"trigger": reason})
}
