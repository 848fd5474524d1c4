// Package envfile renders generated variable names as a dotenv-style template:
// one "# [section]" comment per section followed by one "NAME=" line per
// variable.
package envfile

import (
	"bufio"
	"io"

	"github.com/gandalfthegui/confenv/internal/envnames"
)

const (
	colorBold  = "\033[1m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

// Writer writes env-file templates to an underlying io.Writer.
type Writer struct {
	w     *bufio.Writer
	color bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithColor wraps section comments in ANSI color codes.
func WithColor(on bool) Option {
	return func(w *Writer) { w.color = on }
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	ew := &Writer{w: bufio.NewWriter(w)}
	for _, opt := range opts {
		opt(ew)
	}
	return ew
}

// WriteGroups writes every group in order and flushes the output.
func (w *Writer) WriteGroups(groups []envnames.Group) error {
	for _, g := range groups {
		w.writeSection(g.Section)
		for _, name := range g.Names {
			w.w.WriteString(name)
			w.w.WriteString("=\n")
		}
	}
	return w.w.Flush()
}

func (w *Writer) writeSection(name string) {
	if w.color {
		w.w.WriteString(colorBold + colorCyan)
	}
	w.w.WriteString("# [")
	w.w.WriteString(name)
	w.w.WriteString("]")
	if w.color {
		w.w.WriteString(colorReset)
	}
	w.w.WriteByte('\n')
}
