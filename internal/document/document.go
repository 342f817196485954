// Package document loads input files and flattens them once.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/jsonset/internal/flatten"
	"github.com/jacoelho/jsonset/internal/jsonvalue"
	"github.com/jacoelho/jsonset/internal/setops"
)

var (
	ErrSelectNoMatch = errors.New("select expression matched nothing")
	ErrInvalidSelect = errors.New("invalid select expression")
)

// Document is a loaded input: its source name and its flattened set.
type Document struct {
	Name string
	Set  flatten.Set
}

// Input returns the document as an operand for setops.
func (d Document) Input() setops.Input {
	return setops.Input{Label: d.Name, Set: d.Set}
}

// Inputs converts documents to setops operands, keeping order.
func Inputs(docs []Document) []setops.Input {
	inputs := make([]setops.Input, len(docs))
	for i, doc := range docs {
		inputs[i] = doc.Input()
	}
	return inputs
}

// Options configure a Loader.
type Options struct {
	Flatten flatten.Options
	// Select is an optional JSONPath expression. When set, the first node it
	// matches in each document is compared instead of the whole document.
	Select string
}

// Loader reads, decodes and flattens documents.
type Loader struct {
	opts     Options
	selector *jsonpath.Path
	logger   *slog.Logger
	readFile func(name string) ([]byte, error)
}

// NewLoader validates opts and returns a Loader. A nil logger discards logs.
func NewLoader(opts Options, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	l := &Loader{
		opts:     opts,
		logger:   logger,
		readFile: os.ReadFile,
	}

	if opts.Select != "" {
		path, err := compileSelect(opts.Select)
		if err != nil {
			return nil, err
		}
		l.selector = path
	}

	return l, nil
}

// ValidateSelect reports whether expr is a valid JSONPath expression.
func ValidateSelect(expr string) error {
	_, err := compileSelect(expr)
	return err
}

func compileSelect(expr string) (*jsonpath.Path, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelect, expr, err)
	}
	return path, nil
}

// FormatFor picks the decoder from the file extension.
func FormatFor(name string) jsonvalue.Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return jsonvalue.FormatYAML
	default:
		return jsonvalue.FormatJSON
	}
}

// Load reads and flattens a single file.
func (l *Loader) Load(name string) (Document, error) {
	data, err := l.readFile(name)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", name, err)
	}

	return l.Parse(name, data)
}

// Parse flattens data that was read from name.
func (l *Loader) Parse(name string, data []byte) (Document, error) {
	format := FormatFor(name)

	raw, err := jsonvalue.Decode(data, format)
	if err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", name, err)
	}

	if l.selector != nil {
		matches := l.selector.Select(raw)
		if len(matches) == 0 {
			return Document{}, fmt.Errorf("%s: %w: %s", name, ErrSelectNoMatch, l.opts.Select)
		}
		if len(matches) > 1 {
			l.logger.Debug("select matched several nodes, using the first",
				slog.String("file", name), slog.Int("matches", len(matches)))
		}
		raw = matches[0]
	}

	value, err := jsonvalue.FromAny(raw)
	if err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", name, err)
	}

	set, err := flatten.Flatten(value, l.opts.Flatten)
	if err != nil {
		return Document{}, fmt.Errorf("flatten %s: %w", name, err)
	}

	l.logger.Debug("loaded document",
		slog.String("file", name),
		slog.String("format", format.String()),
		slog.Int("tuples", set.Len()))

	return Document{Name: name, Set: set}, nil
}

// LoadAll loads every file in order and stops at the first failure, so no
// operation ever runs on a partial input list.
func (l *Loader) LoadAll(ctx context.Context, names []string) ([]Document, error) {
	docs := make([]Document, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := l.Load(name)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
