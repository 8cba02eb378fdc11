// Package watcher turns file system notifications under a documentation
// tree into debounced batches that trigger full index rebuilds.
//
// Events come from fsnotify. Each event is filtered by the caller's
// Filter (normally the scanner's coverage check) and then debounced, so an
// editor's save burst or a git checkout produces one rebuild.
//
// Usage:
//
//	w, err := watcher.New(watcher.Options{Filter: s.Covers})
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	go w.Start(ctx, root, dirs)
//	for batch := range w.Events() {
//	    // rebuild
//	}
package watcher
