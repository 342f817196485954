// Package report writes operation results as text sections.
//
// Each result starts with a bracketed operation header and a label line
// naming the combined files, followed by one rendered record per tuple.
// The each operation writes a label line per file instead.
package report

import (
	"fmt"
	"io"

	"github.com/jacoelho/jsonset/internal/flatten"
	"github.com/jacoelho/jsonset/internal/present"
	"github.com/jacoelho/jsonset/internal/setops"
)

// Options control how results are written.
type Options struct {
	Mode present.Mode
	// Summary writes a tuple count per section instead of the tuples.
	Summary bool
}

// Writer renders results to an io.Writer.
type Writer struct {
	writer io.Writer
	opts   Options
}

func New(w io.Writer, opts Options) *Writer {
	return &Writer{
		writer: w,
		opts:   opts,
	}
}

// WriteAll writes results in order and stops at the first error.
func (w *Writer) WriteAll(results []setops.Result) error {
	for _, result := range results {
		if err := w.Write(result); err != nil {
			return err
		}
	}
	return nil
}

// Write writes one result section.
func (w *Writer) Write(result setops.Result) error {
	if _, err := fmt.Fprintf(w.writer, "[%s]\n", result.Operation); err != nil {
		return err
	}

	if result.Operation == setops.Each {
		for _, section := range result.Sections {
			if err := w.writeSection(section.Label, section.Set); err != nil {
				return err
			}
		}
		return nil
	}

	for _, section := range result.Sections {
		if err := w.writeSection(result.Label, section.Set); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeSection(label string, set flatten.Set) error {
	if _, err := fmt.Fprintln(w.writer, label); err != nil {
		return err
	}

	if w.opts.Summary {
		_, err := fmt.Fprintln(w.writer, countLine(set.Len()))
		return err
	}

	for _, tuple := range set.Tuples() {
		line, err := present.Render(tuple, w.opts.Mode)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w.writer, line); err != nil {
			return err
		}
	}
	return nil
}

func countLine(n int) string {
	word := "tuples"
	if n == 1 {
		word = "tuple"
	}
	return fmt.Sprintf("%d %s", n, word)
}
