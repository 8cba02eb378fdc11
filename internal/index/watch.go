package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Aman-CERP/docrank/internal/watcher"
)

// WatchOptions configures Watch.
type WatchOptions struct {
	// DebounceWindow is the quiet period before a rebuild. Zero uses the watcher default.
	DebounceWindow time.Duration

	// OnRebuild is called after every run, including the initial one.
	OnRebuild func(*Result, error)

	// OnConfigChange is called when a project config file changes.
	// The rebuild still uses the runner's current options.
	OnConfigChange func(path string)
}

// Watch runs an initial build, then rebuilds the whole index whenever a
// covered file changes. It blocks until ctx is cancelled.
func (r *Runner) Watch(ctx context.Context, opts WatchOptions) error {
	rebuild := func(reason string) {
		result, err := r.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("rebuild_failed",
				slog.String("reason", reason),
				slog.String("error", err.Error()))
		}
		if opts.OnRebuild != nil {
			opts.OnRebuild(result, err)
		}
	}

	rebuild("initial")
	if ctx.Err() != nil {
		return nil
	}

	dirs, err := r.scanner.WatchDirs(ctx)
	if err != nil {
		return fmt.Errorf("collect watch directories: %w", err)
	}

	w, err := watcher.New(watcher.Options{
		DebounceWindow: opts.DebounceWindow,
		Filter:         r.scanner.Covers,
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	startErr := make(chan error, 1)
	go func() { startErr <- w.Start(ctx, r.scanner.Root(), dirs) }()

	r.logger.Info("watch_started",
		slog.String("root", r.scanner.Root()),
		slog.Int("directories", len(dirs)))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-startErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			r.logger.Warn("watch_error", slog.String("error", err.Error()))
		case batch, ok := <-w.Events():
			if !ok {
				return nil
			}
			for _, ev := range batch {
				if ev.Operation == watcher.OpConfigChange && opts.OnConfigChange != nil {
					opts.OnConfigChange(ev.Path)
				}
			}
			r.logger.Info("change_detected",
				slog.Int("events", len(batch)),
				slog.String("first", batch[0].Path),
				slog.String("operation", batch[0].Operation.String()))
			rebuild("change")
		}
	}
}
