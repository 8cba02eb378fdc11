// Package output writes CLI status lines and machine-readable JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	drerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/ui"
)

// Writer prints status lines. Write errors are ignored; this is console
// output.
type Writer struct {
	out    io.Writer
	styles ui.Styles
}

// New creates a Writer, styled only when out is a color-capable terminal.
func New(out io.Writer) *Writer {
	return &Writer{out: out, styles: ui.GetStyles(!ui.UseColor(out))}
}

// NewPlain creates an unstyled Writer.
func NewPlain(out io.Writer) *Writer {
	return &Writer{out: out, styles: ui.NoColorStyles()}
}

// Styles returns the writer's styles so callers can render in the same mode.
func (w *Writer) Styles() ui.Styles {
	return w.styles
}

// Out returns the underlying writer.
func (w *Writer) Out() io.Writer {
	return w.out
}

// Status prints msg after icon, or indented when icon is empty.
func (w *Writer) Status(icon, msg string) {
	if icon == "" {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
		return
	}
	_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
}

// Statusf is Status with formatting.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints msg with a check mark.
func (w *Writer) Success(msg string) {
	w.Status(w.styles.Success.Render("✓"), msg)
}

// Successf is Success with formatting.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints msg with a warning mark.
func (w *Writer) Warning(msg string) {
	w.Status(w.styles.Warning.Render("!"), msg)
}

// Warningf is Warning with formatting.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints msg with a cross.
func (w *Writer) Error(msg string) {
	w.Status(w.styles.Error.Render("✗"), msg)
}

// Errorf is Error with formatting.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Failure prints err the way FormatForCLI renders it, styled as an error.
func (w *Writer) Failure(err error) {
	text := strings.TrimRight(drerrors.FormatForCLI(err), "\n")
	lines := strings.Split(text, "\n")
	_, _ = fmt.Fprintln(w.out, w.styles.Error.Render(lines[0]))
	for _, l := range lines[1:] {
		_, _ = fmt.Fprintln(w.out, w.styles.Dim.Render(l))
	}
}

// Code prints content indented between blank lines.
func (w *Writer) Code(content string) {
	_, _ = fmt.Fprintln(w.out)
	for _, line := range strings.Split(content, "\n") {
		_, _ = fmt.Fprintf(w.out, "  %s\n", line)
	}
	_, _ = fmt.Fprintln(w.out)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// JSON writes v as indented JSON followed by a newline.
func JSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// JSONError writes err as a coded JSON object.
func JSONError(out io.Writer, err error) error {
	data, ferr := drerrors.FormatJSON(err)
	if ferr != nil {
		return ferr
	}
	_, werr := fmt.Fprintf(out, "%s\n", data)
	return werr
}
