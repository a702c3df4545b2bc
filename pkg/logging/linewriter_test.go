package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineWriter(t *testing.T) {
	var lines []string
	w := NewLineWriter(func(line string) { lines = append(lines, line) })

	_, _ = w.Write([]byte("Counting objects: 1"))
	assert.Empty(t, lines, "partial line must not be emitted")

	_, _ = w.Write([]byte("0%\rCounting objects: 100%\nEnumerating"))
	assert.Equal(t, []string{"Counting objects: 10%", "Counting objects: 100%"}, lines)

	_, _ = w.Write([]byte(" objects\n"))
	assert.Equal(t, "Enumerating objects", lines[len(lines)-1])

	_, _ = w.Write([]byte("tail"))
	w.Flush()
	assert.Equal(t, "tail", lines[len(lines)-1])
}

func TestLineWriter_KeepsLayout(t *testing.T) {
	var lines []string
	w := NewLineWriter(func(line string) { lines = append(lines, line) })

	_, _ = w.Write([]byte("added 12 packages  \n\n  \n"))
	_, _ = w.Write([]byte("\tfound 0 vulnerabilities\n"))
	w.Flush()

	assert.Equal(t, []string{
		"added 12 packages  ",
		"",
		"  ",
		"\tfound 0 vulnerabilities",
	}, lines)
}

func TestLineWriter_CRLF(t *testing.T) {
	var lines []string
	w := NewLineWriter(func(line string) { lines = append(lines, line) })

	_, _ = w.Write([]byte("one\r\ntwo\r"))
	_, _ = w.Write([]byte("\nthree\r\n\r\n"))
	w.Flush()

	assert.Equal(t, []string{"one", "two", "three", ""}, lines)
}
