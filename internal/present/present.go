// Package present turns tuples into display records and renders them.
package present

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jsonset/internal/flatten"
	"github.com/jacoelho/jsonset/internal/jsonvalue"
)

const pathSeparator = "/"

var ErrUnknownFormat = errors.New("unknown output format")

// Mode selects how a Record is rendered.
type Mode int

const (
	// Compact renders one JSON object per line.
	Compact Mode = iota
	// Pretty renders indented JSON with sorted keys.
	Pretty
	// YAML renders each record as a YAML sequence item.
	YAML
)

func (m Mode) String() string {
	switch m {
	case Pretty:
		return "pretty"
	case YAML:
		return "yaml"
	default:
		return "compact"
	}
}

// Formats lists the accepted values of ModeFor's format argument.
var Formats = []string{"json", "yaml"}

// ModeFor picks the render mode from the pretty switch and the output format.
func ModeFor(pretty bool, format string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		if pretty {
			return Pretty, nil
		}
		return Compact, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return Compact, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}

// Record is the display form of a tuple. Fields are declared in key order.
type Record struct {
	NamePath string `json:"name_path" yaml:"name_path"`
	TreePath string `json:"tree_path" yaml:"tree_path"`
	Type     string `json:"type" yaml:"type"`
	Value    any    `json:"value" yaml:"value"`
}

// FromTuple builds the display record of t. The root segment renders as the
// leading separator, so a member "y" of the root has name path "/y".
func FromTuple(t flatten.Tuple) Record {
	path := t.Path()
	names := make([]string, len(path))
	kinds := make([]string, len(path))
	for i, seg := range path {
		if seg.Kind == flatten.Root {
			continue
		}
		names[i] = seg.Key.String()
		kinds[i] = seg.Kind.String()
	}

	return Record{
		NamePath: strings.Join(names, pathSeparator),
		TreePath: strings.Join(kinds, pathSeparator),
		Type:     t.Kind().String(),
		Value:    t.Payload(),
	}
}

// Render formats t in the given mode, without a trailing newline.
func Render(t flatten.Tuple, mode Mode) (string, error) {
	return RenderRecord(FromTuple(t), mode)
}

func RenderRecord(r Record, mode Mode) (string, error) {
	switch mode {
	case Pretty:
		return encodeJSON(r, "  ")
	case YAML:
		return encodeYAML(r)
	default:
		return encodeJSON(r, "")
	}
}

func encodeJSON(r Record, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("encode record %s: %w", r.NamePath, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func encodeYAML(r Record) (string, error) {
	if n, ok := r.Value.(jsonvalue.NumberLiteral); ok {
		r.Value = yamlNumber(n)
	}

	payload, err := yaml.Marshal([]Record{r})
	if err != nil {
		return "", fmt.Errorf("encode YAML record %s: %w", r.NamePath, err)
	}
	return strings.TrimSuffix(string(payload), "\n"), nil
}

// yamlNumber converts a number literal to a native number so the YAML
// encoder writes it unquoted.
func yamlNumber(n jsonvalue.NumberLiteral) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
