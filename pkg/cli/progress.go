package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// ProgressReporter reports progress for long-running operations.
type ProgressReporter interface {
	Start(total int64)
	Update(current int64)
	Finish()
	Error(err error)
}

// NewProgressReporter creates a progress reporter that writes to w, or to
// os.Stderr when w is nil. Terminals get a redrawn bar; other writers get
// one line per step so logs stay readable. unit names the counted items.
func NewProgressReporter(w io.Writer, unit string) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	p := &SimpleProgress{writer: w, unit: unit}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		p.redraw = true
	}
	return p
}

// SimpleProgress counts completed items out of a total.
type SimpleProgress struct {
	mu      sync.Mutex
	total   int64
	current int64
	unit    string
	redraw  bool
	writer  io.Writer
}

// Start sets the total number of items.
func (p *SimpleProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.current = 0
	if p.redraw {
		p.draw()
	}
}

// Update sets the number of completed items. The count never decreases
// and never exceeds the total.
func (p *SimpleProgress) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current = min(current, p.total)
	if current <= p.current {
		return
	}
	p.current = current
	p.emit()
}

// Finish completes the count and ends the line.
func (p *SimpleProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.total == 0 {
		return
	}
	if p.current < p.total {
		p.current = p.total
		p.emit()
	}
	if p.redraw {
		fmt.Fprintln(p.writer)
	}
}

// Error reports an error during progress.
func (p *SimpleProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.redraw {
		fmt.Fprintln(p.writer)
	}
	fmt.Fprintf(p.writer, "✗ Error: %v\n", err)
}

func (p *SimpleProgress) emit() {
	if p.redraw {
		p.draw()
		return
	}
	fmt.Fprintf(p.writer, "%d/%d %s\n", p.current, p.total, p.unit)
}

// draw redraws the bar in place.
func (p *SimpleProgress) draw() {
	if p.total == 0 {
		return
	}

	const width = 30
	filled := int(width * p.current / p.total)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	fmt.Fprintf(p.writer, "\r[%s] %d/%d %s", bar, p.current, p.total, p.unit)
}
