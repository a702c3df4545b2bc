package logging

import (
	"bytes"
	"sync"
)

// LineWriter is an io.Writer that hands every complete line to fn as soon
// as it is written. Carriage returns also terminate a line so that progress
// meters which redraw in place are emitted incrementally; a CRLF pair counts
// as a single terminator. Lines are passed on without their terminator and
// otherwise unchanged, blank ones included.
type LineWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
	fn  func(line string)

	// set when the last terminator was a CR, so a following LF is its pair
	afterCR bool
}

// NewLineWriter creates a LineWriter that calls fn once per line
func NewLineWriter(fn func(line string)) *LineWriter {
	return &LineWriter{fn: fn}
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		data := w.buf.Bytes()
		if w.afterCR && len(data) > 0 {
			w.afterCR = false
			if data[0] == '\n' {
				w.buf.Next(1)
				continue
			}
		}
		i := bytes.IndexAny(data, "\r\n")
		if i < 0 {
			break
		}
		line := string(data[:i])
		w.afterCR = data[i] == '\r'
		w.buf.Next(i + 1)
		w.fn(line)
	}
	return len(p), nil
}

// Flush emits any trailing partial line
func (w *LineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.fn(w.buf.String())
	}
	w.buf.Reset()
	w.afterCR = false
}
