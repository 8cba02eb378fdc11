// Package logging configures slog for docrank.
//
// Interactive commands log to stderr at the configured level. With --debug,
// or when serving over stdio, JSON logs also go to a size-rotated file under
// ~/.docrank/logs/ so they can be read back with 'docrank logs'.
package logging
